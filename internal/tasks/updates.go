package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchEvents Phase = iota
	DownloadImages
	WriteFiles
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchEvents:
		return "fetch_events"
	case DownloadImages:
		return "download_images"
	case WriteFiles:
		return "write_files"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func fetchingEventsUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: FetchEvents, Step: 0, Total: 1, Message: "Fetching events..."}
}

func fetchedEventsUpdate(total, visible int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchEvents,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetched %d events (%d match the filter)", total, visible),
	}
}

func imageDownloadedUpdate(step, total int, res ImageResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadImages,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, res.EventName),
		Data:    res,
	}
}

func imageFailedUpdate(step, total int, res ImageResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadImages,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.EventName, res.Error),
		Data:    res,
	}
}

func fileWrittenUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Wrote %s", step, total, path),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{Phase: WriteManifest, Step: 1, Total: 1, Message: "Wrote manifest " + path}
}
