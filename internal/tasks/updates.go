package tasks

import (
	"fmt"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/models"
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
	FetchFilms Phase = iota
	FetchCart
	FetchBookmarks
	FetchGenre
	ExportGenre
)

func (p Phase) String() string {
	switch p {
	case FetchFilms:
		return "fetch_films"
	case FetchCart:
		return "fetch_cart"
	case FetchBookmarks:
		return "fetch_bookmarks"
	case FetchGenre:
		return "fetch_genre"
	case ExportGenre:
		return "export_genre"
	default:
		return ""
	}
}

func fetchingFilmsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchFilms,
		Step:    1,
		Total:   1,
		Message: "Fetching film listing...",
	}
}

func filmsLoadedUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchFilms,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loaded %d films", count),
		Data:    count,
	}
}

func refreshingUpdate(phase Phase, kind models.CollectionKind) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Refreshing %s...", kind),
	}
}

func refreshFailedUpdate(phase Phase, kind models.CollectionKind, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Refresh of %s failed, keeping cached copy: %v", kind, err),
	}
}

func fetchingGenreUpdate(step, total int, genre string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchGenre,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching genre: %s...", step, total, genre),
	}
}

func exportCompletedUpdate(step, total int, genre string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportGenre,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, genre, filesCount),
	}
}

func exportFailedUpdate(step, total int, genre string, errMsg string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportGenre,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %s", step, total, genre, errMsg),
	}
}
