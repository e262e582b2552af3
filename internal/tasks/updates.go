package tasks

import (
	"fmt"

	"github.com/desertthunder/artistdb/internal/models"
)

// ProgressUpdate represents a progress event during an export run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	ResolveArtist Phase = iota
	FetchArtist
	FetchTracks
	CheckDuplicates
	AppendBatch
)

func (p Phase) String() string {
	switch p {
	case ResolveArtist:
		return "resolve"
	case FetchArtist:
		return "fetch_artist"
	case FetchTracks:
		return "fetch_tracks"
	case CheckDuplicates:
		return "check_duplicates"
	case AppendBatch:
		return "append"
	default:
		return ""
	}
}

func resolveArtistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveArtist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Resolving %s...", step, total, name),
	}
}

func fetchArtistUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchArtist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching artist %s...", step, total, id),
	}
}

func fetchTracksUpdate(step, total int, profile *models.ArtistProfile) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching top tracks for %s...", step, total, profile.Name),
		Data:    profile,
	}
}

func artistFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveArtist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func checkDuplicatesUpdate(rows int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CheckDuplicates,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Checking %d rows against stored snapshots...", rows),
	}
}

func appendRowsUpdate(rows int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AppendBatch,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Appending %d rows...", rows),
	}
}
