// package models defines the data model for artist snapshots
package models

import (
	"fmt"
	"strings"
	"time"
)

// ArtistProfile is the artist-level metadata fetched from the catalog.
type ArtistProfile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Followers  int    `json:"followers"`
	Popularity int    `json:"popularity"`
}

// TopTrack is one of an artist's top tracks with the album fields we keep.
type TopTrack struct {
	Name             string `json:"name"`
	Popularity       int    `json:"popularity"`
	ReleaseDate      string `json:"release_date"`
	AlbumName        string `json:"album_name"`
	AlbumTotalTracks int    `json:"album_total_tracks"`
}

// ArtistSnapshot is one stored row: an artist profile joined with a single track on a given query date.
type ArtistSnapshot struct {
	ArtistID         string `json:"artist_id"`
	QueryDate        string `json:"query_date"`
	ArtistName       string `json:"artist_name"`
	Followers        int    `json:"followers"`
	ArtistPopularity int    `json:"artist_popularity"`
	SongName         string `json:"song_name"`
	SongPopularity   int    `json:"song_popularity"`
	ReleaseDate      string `json:"release_date"`
	AlbumName        string `json:"album_name"`
	TotalTracks      int    `json:"total_tracks"`
}

// SnapshotKey is the natural uniqueness triple of an [ArtistSnapshot].
type SnapshotKey struct {
	ArtistID  string
	QueryDate string
	SongName  string
}

// Key returns the row's natural key.
func (s ArtistSnapshot) Key() SnapshotKey {
	return SnapshotKey{ArtistID: s.ArtistID, QueryDate: s.QueryDate, SongName: s.SongName}
}

// Validate checks the fields the store declares NOT NULL.
func (s ArtistSnapshot) Validate() error {
	var missing []string
	if s.ArtistID == "" {
		missing = append(missing, "artist_id")
	}
	if s.QueryDate == "" {
		missing = append(missing, "query_date")
	}
	if s.ArtistName == "" {
		missing = append(missing, "artist_name")
	}
	if s.SongName == "" {
		missing = append(missing, "song_name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("snapshot missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// ArtistRecord holds the artist-level columns of a stored snapshot.
type ArtistRecord struct {
	ArtistID         string `json:"artist_id"`
	QueryDate        string `json:"query_date"`
	ArtistName       string `json:"artist_name"`
	Followers        int    `json:"followers"`
	ArtistPopularity int    `json:"artist_popularity"`
}

// TrackRecord holds the track-level columns of a stored snapshot.
type TrackRecord struct {
	ArtistID       string `json:"artist_id"`
	QueryDate      string `json:"query_date"`
	SongName       string `json:"song_name"`
	SongPopularity int    `json:"song_popularity"`
	ReleaseDate    string `json:"release_date"`
	AlbumName      string `json:"album_name"`
	TotalTracks    int    `json:"total_tracks"`
}

// ArtistFailure records an artist skipped during an export run with failure isolation enabled.
type ArtistFailure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// ExportResult summarizes one export run.
type ExportResult struct {
	RunID      string          `json:"run_id"`
	Artists    int             `json:"artists"` // distinct artists in the batch
	Rows       int             `json:"rows"`
	Failures   []ArtistFailure `json:"failures,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	DurationMS int64           `json:"duration_ms"`
}
