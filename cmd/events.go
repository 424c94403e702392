package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spotlite/internal/catalog"
	"github.com/desertthunder/spotlite/internal/formatter"
	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/navigation"
	"github.com/desertthunder/spotlite/internal/shared"
	"github.com/desertthunder/spotlite/internal/tasks"
	"github.com/urfave/cli/v3"
)

// filterFromFlags reads --search, --genre and --location, canonicalising the
// choices against the configured catalog options.
func (r *Runner) filterFromFlags(cmd *cli.Command) catalog.FilterState {
	return catalog.FilterState{
		SearchTerm: cmd.String("search"),
		Genre:      catalog.Canonical(cmd.String("genre"), r.config.Catalog.Genres),
		Location:   catalog.Canonical(cmd.String("location"), r.config.Catalog.Locations),
	}
}

// loadCatalog fetches the collection, printing the notification on failure.
func (r *Runner) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	cat := catalog.New(r.events, shared.WithLogger(r.logger, "component", "catalog"))
	if err := cat.Refresh(ctx); err != nil {
		return nil, r.notify("fetch events", err)
	}
	return cat, nil
}

// EventsList prints the events matching the filter flags.
func (r *Runner) EventsList(ctx context.Context, cmd *cli.Command) error {
	cat, err := r.loadCatalog(ctx)
	if err != nil {
		return err
	}
	cat.SetFilter(r.filterFromFlags(cmd))
	visible := cat.Visible()

	if cmd.Bool("json") {
		return r.writeJSON(visible, cmd.Bool("pretty"))
	}

	var data []byte
	switch format := strings.ToLower(cmd.String("format")); format {
	case "", "table":
		if len(visible) == 0 {
			return r.writePlain("No events match the current filters.\n")
		}
		return r.writePlain("%s\n", formatter.EventTable(visible))
	case "md", "markdown":
		data, err = formatter.ExportToMarkdown("Events", visible, nil)
	case "csv":
		data, err = formatter.ExportToCSV(visible)
	case "txt", "text":
		data, err = formatter.ExportToText(visible)
	default:
		return fmt.Errorf("%w: unsupported format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

// lookupEvent fetches the catalog and finds the event named by --id.
func (r *Runner) lookupEvent(ctx context.Context, cmd *cli.Command) (models.Event, error) {
	id := strings.TrimSpace(cmd.String("id"))
	if id == "" {
		return models.Event{}, fmt.Errorf("%w: --id is required", shared.ErrMissingArgument)
	}

	cat, err := r.loadCatalog(ctx)
	if err != nil {
		return models.Event{}, err
	}
	event, ok := cat.Lookup(id)
	if !ok {
		return models.Event{}, fmt.Errorf("%w: %s", shared.ErrEventNotFound, id)
	}
	return event, nil
}

// EventsShow prints one event, optionally opening its details page.
func (r *Runner) EventsShow(ctx context.Context, cmd *cli.Command) error {
	event, err := r.lookupEvent(ctx, cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(event, cmd.Bool("pretty"))
	}
	r.writePlain("%s\n", formatter.EventDetails(event))

	if cmd.Bool("open") {
		return r.navigator.Navigate(ctx, navigation.TargetDetails, event)
	}
	return nil
}

// EventsBuy navigates to the payment page for the event.
func (r *Runner) EventsBuy(ctx context.Context, cmd *cli.Command) error {
	event, err := r.lookupEvent(ctx, cmd)
	if err != nil {
		return err
	}

	nav := r.navigator
	if cmd.Bool("print") {
		nav = navigation.NewWriterNavigator(r.output)
	}

	r.logger.Debug("navigating to payment", "event", event.ID)
	if err := nav.Navigate(ctx, navigation.TargetPayment, event); err != nil {
		return fmt.Errorf("failed to open payment page: %w", err)
	}
	if !cmd.Bool("print") {
		r.writePlain("✓ Opened payment for %s (%s)\n", event.Name, formatter.FormatPrice(event.Price))
	}
	return nil
}

// EventsExport writes the filtered catalog to a directory.
func (r *Runner) EventsExport(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.ExportOpts{
		Formats:    cmd.StringSlice("format"),
		OutputDir:  cmd.String("output"),
		Title:      cmd.String("title"),
		Images:     cmd.Bool("images"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	}

	exporter := tasks.NewExporter(r.httpClient, shared.WithLogger(r.logger, "component", "export"))
	progress := make(chan tasks.ProgressUpdate, 32)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progress {
			if update.Total > 1 {
				r.writePlain("[%s %d/%d] %s\n", update.Phase, update.Step, update.Total, update.Message)
			} else {
				r.writePlain("[%s] %s\n", update.Phase, update.Message)
			}
		}
	}()

	result, err := tasks.ExportCatalog(ctx, progress, r.events, r.filterFromFlags(cmd), exporter, opts)
	close(progress)
	<-done

	if err != nil {
		if result == nil {
			return r.notify("export", err)
		}
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlainln("✓ Exported %d events to %s", result.EventCount, result.OutputDirectory)
	for _, file := range result.Files {
		r.writePlain("  %s\n", file)
	}
	if cmd.Bool("images") {
		r.writePlain("Images: %d downloaded, %d failed\n", result.ImagesDownloaded, result.ImagesFailed)
	}
	return nil
}
