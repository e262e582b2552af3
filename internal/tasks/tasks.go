// package tasks implements the artist snapshot export pipeline and the most-recent snapshot queries.
//
// Operations emit progress updates via channels for non-blocking status reporting to the CLI layer.
package tasks

import (
	"context"

	"github.com/desertthunder/artistdb/internal/models"
)

// MaxTopTracks caps the number of rows returned by [QueryService.MostRecentTopTracks].
const MaxTopTracks = 10

// SnapshotStore is the storage the export pipeline writes to.
//
// Implemented by [repositories.SnapshotRepository].
type SnapshotStore interface {
	RowExists(ctx context.Context, artistID, queryDate, songName string) (bool, error)
	AppendRows(ctx context.Context, rows []models.ArtistSnapshot) error
}

// SnapshotReader is the storage the query service reads from.
//
// Implemented by [repositories.SnapshotRepository].
type SnapshotReader interface {
	MostRecentArtist(ctx context.Context, key string) (*models.ArtistRecord, error)
	MostRecentTracks(ctx context.Context, key string, limit int) ([]models.TrackRecord, error)
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
		// Channel full, skip this update
	}
}
