package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spotlite/internal/catalog"
	"github.com/desertthunder/spotlite/internal/shared"
	"github.com/desertthunder/spotlite/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive catalog browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.events == nil {
		return fmt.Errorf("%w: event client not initialized", shared.ErrMissingConfig)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	cat := catalog.New(r.events, shared.WithLogger(fileLogger, "component", "catalog"))
	model := ui.NewModel(ctx, cat, r.navigator, r.config.Catalog.Genres, r.config.Catalog.Locations)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
