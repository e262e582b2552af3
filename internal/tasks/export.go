package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/artistdb/internal/models"
	"github.com/desertthunder/artistdb/internal/services"
	"github.com/desertthunder/artistdb/internal/shared"
)

// ExportOpts configures an [Exporter].
type ExportOpts struct {
	Country         string                // Market for top tracks; defaults to [services.DefaultCountry]
	IsolateFailures bool                  // Skip failing artists instead of aborting the run
	Progress        chan<- ProgressUpdate // Optional, never blocks
	Logger          *log.Logger
	Now             func() time.Time
}

// Exporter fetches artist snapshots from a [services.Catalog] and appends them to a [SnapshotStore].
type Exporter struct {
	catalog services.Catalog
	store   SnapshotStore
	opts    ExportOpts
	logger  *log.Logger
}

// NewExporter creates an Exporter with the provided catalog, store, and options.
func NewExporter(catalog services.Catalog, store SnapshotStore, opts ExportOpts) *Exporter {
	if opts.Country == "" {
		opts.Country = services.DefaultCountry
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	return &Exporter{catalog: catalog, store: store, opts: opts, logger: logger}
}

// Collect fetches every named artist and returns the candidate batch.
//
// Without failure isolation the first failing artist aborts collection. With it, failing
// artists are logged and returned as failures. Authentication errors always abort.
// Names resolving to an artist already collected in this run are skipped.
func (e *Exporter) Collect(ctx context.Context, names []string) ([]models.ArtistSnapshot, []models.ArtistFailure, error) {
	var (
		batch    []models.ArtistSnapshot
		failures []models.ArtistFailure
	)

	queryDate := QueryDate(e.opts.Now())
	collected := make(map[string]string)
	total := len(names)
	for i, name := range names {
		step := i + 1

		rows, err := e.collectArtist(ctx, step, total, name, queryDate, collected)
		if err != nil {
			if !e.opts.IsolateFailures || ctx.Err() != nil || errors.Is(err, shared.ErrAuth) {
				return nil, nil, fmt.Errorf("artist %q: %w", name, err)
			}

			e.logger.Warn("skipping artist", "name", name, "error", err)
			sendProgress(e.opts.Progress, artistFailedUpdate(step, total, name, err))
			failures = append(failures, models.ArtistFailure{Name: name, Error: err.Error()})
			continue
		}

		batch = append(batch, rows...)
	}

	return batch, failures, nil
}

// collectArtist fetches one artist. collected maps artist IDs already fetched this run to the
// name that fetched them.
func (e *Exporter) collectArtist(ctx context.Context, step, total int, name, queryDate string, collected map[string]string) ([]models.ArtistSnapshot, error) {
	sendProgress(e.opts.Progress, resolveArtistUpdate(step, total, name))
	id, err := e.catalog.ResolveArtistID(ctx, name)
	if err != nil {
		return nil, err
	}
	if first, ok := collected[id]; ok {
		e.logger.Warn("artist already collected", "name", name, "id", id, "as", first)
		return nil, nil
	}

	sendProgress(e.opts.Progress, fetchArtistUpdate(step, total, id))
	profile, err := e.catalog.ArtistProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	sendProgress(e.opts.Progress, fetchTracksUpdate(step, total, profile))
	tracks, err := e.catalog.TopTracks(ctx, id, e.opts.Country)
	if err != nil {
		return nil, err
	}

	rows := BuildRows(*profile, tracks, queryDate)
	collected[id] = name

	e.logger.Debug("collected artist", "name", profile.Name, "id", profile.ID, "rows", len(rows), "date", queryDate)
	return rows, nil
}

func countArtists(batch []models.ArtistSnapshot) int {
	ids := make(map[string]struct{})
	for _, row := range batch {
		ids[row.ArtistID] = struct{}{}
	}
	return len(ids)
}

// countExisting returns how many rows of batch are already stored.
func (e *Exporter) countExisting(ctx context.Context, batch []models.ArtistSnapshot) (int, error) {
	existing := 0
	for _, row := range batch {
		exists, err := e.store.RowExists(ctx, row.ArtistID, row.QueryDate, row.SongName)
		if err != nil {
			return 0, err
		}
		if exists {
			existing++
		}
	}
	return existing, nil
}

// Run exports snapshots for names.
//
// The batch is written with a single append, or not at all: if any candidate row already
// exists the run fails with [*shared.DuplicateDataError] and nothing is written.
func (e *Exporter) Run(ctx context.Context, names []string) (*models.ExportResult, error) {
	started := e.opts.Now()
	runID := shared.GenerateID()
	logger := shared.WithLogger(e.logger, "run", runID)

	logger.Info("starting export", "artists", len(names), "catalog", e.catalog.Name())

	if err := e.catalog.Authenticate(ctx); err != nil {
		return nil, err
	}

	batch, failures, err := e.Collect(ctx, names)
	if err != nil {
		return nil, err
	}

	result := &models.ExportResult{
		RunID:     runID,
		Artists:   countArtists(batch),
		Failures:  failures,
		StartedAt: started,
	}

	if len(batch) == 0 {
		logger.Info("nothing to write")
		result.DurationMS = e.opts.Now().Sub(started).Milliseconds()
		return result, nil
	}

	sendProgress(e.opts.Progress, checkDuplicatesUpdate(len(batch)))
	existing, err := e.countExisting(ctx, batch)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		logger.Warn("rejecting batch", "rows", len(batch), "existing", existing)
		return nil, &shared.DuplicateDataError{Count: existing}
	}

	sendProgress(e.opts.Progress, appendRowsUpdate(len(batch)))
	if err := e.store.AppendRows(ctx, batch); err != nil {
		return nil, err
	}

	result.Rows = len(batch)
	result.DurationMS = e.opts.Now().Sub(started).Milliseconds()

	logger.Info("export complete", "rows", result.Rows, "failures", len(failures))
	return result, nil
}
