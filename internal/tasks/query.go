package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/artistdb/internal/models"
	"github.com/desertthunder/artistdb/internal/shared"
)

// QueryService answers "most recent" questions about stored snapshots.
type QueryService struct {
	store SnapshotReader
}

// NewQueryService creates a QueryService reading from store.
func NewQueryService(store SnapshotReader) *QueryService {
	return &QueryService{store: store}
}

// MostRecentSnapshot returns the newest artist-level snapshot whose ID or exact name equals key.
func (q *QueryService) MostRecentSnapshot(ctx context.Context, key string) (*models.ArtistRecord, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("%w: artist key is blank", shared.ErrInvalidArgument)
	}
	return q.store.MostRecentArtist(ctx, key)
}

// MostRecentTopTracks returns up to [MaxTopTracks] track rows for key, newest query date first.
func (q *QueryService) MostRecentTopTracks(ctx context.Context, key string) ([]models.TrackRecord, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("%w: artist key is blank", shared.ErrInvalidArgument)
	}

	tracks, err := q.store.MostRecentTracks(ctx, key, MaxTopTracks)
	if err != nil {
		return nil, err
	}
	if len(tracks) > MaxTopTracks {
		tracks = tracks[:MaxTopTracks]
	}
	return tracks, nil
}
