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
	FetchLibrary Phase = iota
	SamplePosters
	WriteColors
)

func (p Phase) String() string {
	switch p {
	case FetchLibrary:
		return "fetch_library"
	case SamplePosters:
		return "sample_posters"
	case WriteColors:
		return "write_colors"
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

func fetchLibraryUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLibrary,
		Step:    1,
		Total:   1,
		Message: "Fetching library...",
	}
}

func foundCandidatesUpdate(candidates, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SamplePosters,
		Step:    0,
		Total:   candidates,
		Message: fmt.Sprintf("Sampling %d of %d posters...", candidates, total),
	}
}

func tintedUpdate(step, total int, res MovieTintResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteColors,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s %s", step, total, res.Title, res.Color),
		Data:    res,
	}
}

func sampledUpdate(step, total int, res MovieTintResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SamplePosters,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s (dry run)", step, total, res.Title, res.Color),
		Data:    res,
	}
}

func tintFailedUpdate(step, total int, res MovieTintResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SamplePosters,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Title, res.Error),
		Data:    res,
	}
}
