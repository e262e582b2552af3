package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/artistdb/internal/models"
	"github.com/desertthunder/artistdb/internal/shared"
)

// SnapshotRepository reads and appends rows of the artists_data table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Close releases the underlying connection.
func (r *SnapshotRepository) Close() error {
	return r.db.Close()
}

// EnsureSchema applies pending migrations. Safe to call repeatedly.
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	return shared.RunMigrations(ctx, r.db)
}

// RowExists reports whether a row with the given natural key is already stored.
func (r *SnapshotRepository) RowExists(ctx context.Context, artistID, queryDate, songName string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM artists_data
			WHERE artist_id = ? AND query_date = ? AND song_name = ?
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, artistID, queryDate, songName).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: failed to check existing row: %v", shared.ErrStorage, err)
	}
	return exists, nil
}

// AppendRows inserts every row in one transaction. Any failure rolls back the whole batch.
func (r *SnapshotRepository) AppendRows(ctx context.Context, rows []models.ArtistSnapshot) error {
	if len(rows) == 0 {
		return nil
	}

	for i, row := range rows {
		if err := row.Validate(); err != nil {
			return fmt.Errorf("%w: row %d: %v", shared.ErrStorage, i, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", shared.ErrStorage, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO artists_data (
			artist_id, query_date, artist_name, followers, artist_popularity,
			song_name, song_popularity, release_date, album_name, total_tracks
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: failed to prepare insert: %v", shared.ErrStorage, err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.ExecContext(ctx,
			row.ArtistID,
			row.QueryDate,
			row.ArtistName,
			row.Followers,
			row.ArtistPopularity,
			row.SongName,
			row.SongPopularity,
			row.ReleaseDate,
			row.AlbumName,
			row.TotalTracks,
		)
		if err != nil {
			return fmt.Errorf("%w: failed to insert row for %s: %v", shared.ErrStorage, row.ArtistID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit rows: %v", shared.ErrStorage, err)
	}

	return nil
}

// MostRecentArtist returns the artist columns of the newest row whose artist_id or artist_name equals key.
func (r *SnapshotRepository) MostRecentArtist(ctx context.Context, key string) (*models.ArtistRecord, error) {
	query := `
		SELECT artist_id, query_date, artist_name, followers, artist_popularity
		FROM artists_data
		WHERE artist_id = ? OR artist_name = ?
		ORDER BY query_date DESC, id ASC
		LIMIT 1
	`

	var rec models.ArtistRecord
	err := r.db.QueryRowContext(ctx, query, key, key).Scan(
		&rec.ArtistID,
		&rec.QueryDate,
		&rec.ArtistName,
		&rec.Followers,
		&rec.ArtistPopularity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no snapshot for %q", shared.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query artist: %v", shared.ErrStorage, err)
	}

	return &rec, nil
}

// MostRecentTracks returns up to limit track rows for key, newest first.
func (r *SnapshotRepository) MostRecentTracks(ctx context.Context, key string, limit int) ([]models.TrackRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", shared.ErrInvalidArgument, limit)
	}

	query := `
		SELECT artist_id, query_date, song_name, song_popularity, release_date, album_name, total_tracks
		FROM artists_data
		WHERE artist_id = ? OR artist_name = ?
		ORDER BY query_date DESC, id ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, key, key, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query tracks: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	var tracks []models.TrackRecord
	for rows.Next() {
		rec, err := r.scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate tracks: %v", shared.ErrStorage, err)
	}

	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: no tracks for %q", shared.ErrNotFound, key)
	}

	return tracks, nil
}

// Count returns the number of stored rows.
func (r *SnapshotRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM artists_data").Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: failed to count rows: %v", shared.ErrStorage, err)
	}
	return count, nil
}

func (r *SnapshotRepository) scanTrack(rows *sql.Rows) (*models.TrackRecord, error) {
	var rec models.TrackRecord
	err := rows.Scan(
		&rec.ArtistID,
		&rec.QueryDate,
		&rec.SongName,
		&rec.SongPopularity,
		&rec.ReleaseDate,
		&rec.AlbumName,
		&rec.TotalTracks,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan track: %v", shared.ErrStorage, err)
	}
	return &rec, nil
}
