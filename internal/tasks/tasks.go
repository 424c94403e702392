package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotlite/internal/catalog"
	"github.com/desertthunder/spotlite/internal/formatter"
	"github.com/desertthunder/spotlite/internal/models"
	"github.com/desertthunder/spotlite/internal/services"
	"github.com/desertthunder/spotlite/internal/shared"
	"golang.org/x/time/rate"
)

const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "txt"
	FormatJSON     = "json"

	defaultWorkers = 5
	maxWorkers     = 10
	defaultRate    = 5.0
	manifestName   = "export_manifest.json"
	imagesDir      = "images"
)

// Formats lists every supported export format in write order.
var Formats = []string{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// ExportOpts contains configuration for an export.
type ExportOpts struct {
	Formats    []string // Subset of [Formats] (default: all)
	OutputDir  string   // Output directory (default: events_export_{epoch})
	Title      string   // Markdown heading (default: "Events")
	Images     bool     // Download each event's cover image
	NumWorkers int      // Concurrent image downloads (default: 5, max: 10)
	RateLimit  float64  // Image downloads per second (default: 5)
}

// ImageResult is the outcome of one cover image download.
type ImageResult struct {
	EventID   string `json:"eventId"`
	EventName string `json:"eventName"`
	URL       string `json:"url"`
	Path      string `json:"path,omitempty"`
	Error     error  `json:"-"`
	ErrorText string `json:"error,omitempty"`
}

// ExportResult summarises an export.
type ExportResult struct {
	OutputDirectory  string        `json:"outputDirectory"`
	EventCount       int           `json:"eventCount"`
	Files            []string      `json:"files"`
	Images           []ImageResult `json:"images,omitempty"`
	ImagesDownloaded int           `json:"imagesDownloaded"`
	ImagesFailed     int           `json:"imagesFailed"`
	ManifestPath     string        `json:"-"`
	ExportedAt       time.Time     `json:"exportedAt"`
}

// Exporter writes event collections to disk.
type Exporter struct {
	client *http.Client
	logger *log.Logger
}

// NewExporter creates an exporter that downloads images with client.
func NewExporter(client *http.Client, logger *log.Logger) *Exporter {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Exporter{client: client, logger: logger}
}

func (o *ExportOpts) normalize() error {
	if o.OutputDir == "" {
		o.OutputDir = fmt.Sprintf("events_export_%d", time.Now().Unix())
	}
	if o.Title == "" {
		o.Title = "Events"
	}
	if o.NumWorkers <= 0 {
		o.NumWorkers = defaultWorkers
	}
	if o.NumWorkers > maxWorkers {
		o.NumWorkers = maxWorkers
	}
	if o.RateLimit <= 0 {
		o.RateLimit = defaultRate
	}
	if len(o.Formats) == 0 {
		o.Formats = Formats
	}
	for i, f := range o.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "md" {
			f = FormatMarkdown
		}
		if f == "text" {
			f = FormatText
		}
		switch f {
		case FormatCSV, FormatMarkdown, FormatText, FormatJSON:
			o.Formats[i] = f
		default:
			return fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidArgument, f)
		}
	}
	return nil
}

// Export writes events to opts.OutputDir.
//
// Image failures are reported in the result; only filesystem errors abort.
func (x *Exporter) Export(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	events models.EventCollection,
	opts ExportOpts,
) (*ExportResult, error) {
	opts.Formats = append([]string(nil), opts.Formats...)
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		OutputDirectory: opts.OutputDir,
		EventCount:      len(events),
		Files:           []string{},
		ExportedAt:      time.Now().UTC(),
	}

	localImages := map[string]string{}
	if opts.Images {
		images, err := x.downloadImages(ctx, prog, events, opts)
		if err != nil {
			return result, err
		}
		for _, img := range images {
			if img.Error != nil {
				result.ImagesFailed++
				continue
			}
			result.ImagesDownloaded++
			rel, _ := filepath.Rel(opts.OutputDir, img.Path)
			localImages[img.EventID] = filepath.ToSlash(rel)
		}
		result.Images = images
	}

	for i, format := range opts.Formats {
		path, err := x.writeFormat(format, events, opts, localImages)
		if err != nil {
			return result, err
		}
		result.Files = append(result.Files, path)
		sendProgress(prog, fileWrittenUpdate(i+1, len(opts.Formats), path))
	}

	manifestPath := filepath.Join(opts.OutputDir, manifestName)
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return result, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	sendProgress(prog, manifestUpdate(manifestPath))

	x.logger.Info("export complete", "dir", opts.OutputDir, "events", len(events), "files", len(result.Files))
	return result, nil
}

func (x *Exporter) writeFormat(format string, events models.EventCollection, opts ExportOpts, images map[string]string) (string, error) {
	var (
		data []byte
		name string
		err  error
	)

	switch format {
	case FormatCSV:
		name = "events.csv"
		data, err = formatter.ExportToCSV(events)
	case FormatMarkdown:
		name = "README.md"
		data, err = formatter.ExportToMarkdown(opts.Title, events, images)
	case FormatText:
		name = "events.txt"
		data, err = formatter.ExportToText(events)
	default:
		name = "events.json"
		data, err = json.MarshalIndent(events, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("%s export failed: %w", format, err)
	}

	path := filepath.Join(opts.OutputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%s write failed: %w", format, err)
	}
	return path, nil
}

type imageJob struct {
	event models.Event
	url   string
}

// downloadImages fetches cover images through a worker pool. Results are sorted
// by the events' input order.
func (x *Exporter) downloadImages(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	events models.EventCollection,
	opts ExportOpts,
) ([]ImageResult, error) {
	jobsList := make([]imageJob, 0, len(events))
	order := make(map[string]int, len(events))
	for i, e := range events {
		if url := e.CoverImage(); url != "" {
			jobsList = append(jobsList, imageJob{event: e, url: url})
			order[e.ID] = i
		}
	}
	if len(jobsList) == 0 {
		return nil, nil
	}

	dir := filepath.Join(opts.OutputDir, imagesDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan imageJob, len(jobsList))
	results := make(chan ImageResult, len(jobsList))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go x.imageWorker(ctx, &wg, limiter, dir, jobs, results)
	}

	for _, j := range jobsList {
		jobs <- j
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]ImageResult, 0, len(jobsList))
	for res := range results {
		out = append(out, res)
		if res.Error != nil {
			sendProgress(prog, imageFailedUpdate(len(out), len(jobsList), res))
		} else {
			sendProgress(prog, imageDownloadedUpdate(len(out), len(jobsList), res))
		}
	}

	sort.SliceStable(out, func(a, b int) bool { return order[out[a].EventID] < order[out[b].EventID] })

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// imageWorker downloads images from the jobs channel.
func (x *Exporter) imageWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	dir string,
	jobs <-chan imageJob,
	results chan<- ImageResult,
) {
	defer wg.Done()

	for job := range jobs {
		res := ImageResult{EventID: job.event.ID, EventName: job.event.Name, URL: job.url}

		if err := limiter.Wait(ctx); err != nil {
			res.Error = err
			res.ErrorText = err.Error()
			results <- res
			continue
		}

		data, err := formatter.DownloadImage(ctx, x.client, job.url)
		if err == nil {
			path := filepath.Join(dir, imageFilename(job.event.ID, job.url))
			if err = os.WriteFile(path, data, 0644); err == nil {
				res.Path = path
			}
		}
		if err != nil {
			x.logger.Warn("image download failed", "event", job.event.ID, "error", err)
			res.Error = err
			res.ErrorText = err.Error()
		}
		results <- res
	}
}

func imageFilename(id, url string) string {
	base := unsafeFilenameChars.ReplaceAllString(id, "_")
	if base == "" {
		base = "event"
	}
	return base + formatter.ImageExtension(url)
}

// ExportCatalog fetches the full catalog, filters it and exports what is visible.
func ExportCatalog(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	lister services.EventLister,
	filter catalog.FilterState,
	exporter *Exporter,
	opts ExportOpts,
) (*ExportResult, error) {
	sendProgress(prog, fetchingEventsUpdate())

	events, err := lister.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	visible := catalog.ApplyFilters(events, filter)
	sendProgress(prog, fetchedEventsUpdate(len(events), len(visible)))

	return exporter.Export(ctx, prog, visible, opts)
}
