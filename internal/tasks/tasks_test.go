package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/desertthunder/artistdb/internal/models"
	"github.com/desertthunder/artistdb/internal/repositories"
	"github.com/desertthunder/artistdb/internal/shared"
	tu "github.com/desertthunder/artistdb/internal/testing"
)

func fixedClock(day string) func() time.Time {
	t, err := time.Parse(QueryDateLayout, day)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func setupRepo(t *testing.T) *repositories.SnapshotRepository {
	t.Helper()

	db, err := shared.NewDatabase(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	repo := repositories.NewSnapshotRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestBuildRows(t *testing.T) {
	profile := models.ArtistProfile{ID: "a1", Name: "Artist A", Followers: 42, Popularity: 77}
	tracks := []models.TopTrack{
		{Name: "One", Popularity: 90, ReleaseDate: "2020-01-01", AlbumName: "First", AlbumTotalTracks: 11},
		{Name: "Two", Popularity: 80, ReleaseDate: "2021", AlbumName: "Second", AlbumTotalTracks: 9},
	}

	rows := BuildRows(profile, tracks, "2024-05-01")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	for i, row := range rows {
		if row.ArtistID != "a1" || row.ArtistName != "Artist A" || row.Followers != 42 || row.ArtistPopularity != 77 {
			t.Errorf("row %d: artist columns not copied: %+v", i, row)
		}
		if row.QueryDate != "2024-05-01" {
			t.Errorf("row %d: expected shared query date, got %s", i, row.QueryDate)
		}
	}

	if rows[1].SongName != "Two" || rows[1].ReleaseDate != "2021" || rows[1].AlbumName != "Second" || rows[1].TotalTracks != 9 {
		t.Errorf("track columns not copied: %+v", rows[1])
	}

	t.Run("No Tracks", func(t *testing.T) {
		if rows := BuildRows(profile, nil, "2024-05-01"); len(rows) != 0 {
			t.Errorf("expected no rows, got %d", len(rows))
		}
	})
}

func TestQueryDate(t *testing.T) {
	ts := time.Date(2024, time.February, 3, 23, 59, 0, 0, time.UTC)
	if got := QueryDate(ts); got != "2024-02-03" {
		t.Errorf("QueryDate() = %s, want 2024-02-03", got)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{ResolveArtist, "resolve"},
		{FetchArtist, "fetch_artist"},
		{FetchTracks, "fetch_tracks"},
		{CheckDuplicates, "check_duplicates"},
		{AppendBatch, "append"},
		{Phase(99), ""},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestExporter(t *testing.T) {
	ctx := context.Background()

	t.Run("N Artists By K Tracks", func(t *testing.T) {
		catalog := &tu.MockCatalog{Artists: map[string]tu.MockArtist{
			"Artist A": tu.NewMockArtist("a1", "Artist A", 3),
			"Artist B": tu.NewMockArtist("b1", "Artist B", 3),
			"Artist C": tu.NewMockArtist("c1", "Artist C", 3),
		}}
		store := &tu.MockStore{}

		exporter := NewExporter(catalog, store, ExportOpts{Now: fixedClock("2024-05-01")})
		result, err := exporter.Run(ctx, []string{"Artist A", "Artist B", "Artist C"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.Rows != 9 || len(store.Appended) != 9 {
			t.Errorf("expected 9 rows, result %d, appended %d", result.Rows, len(store.Appended))
		}
		if store.AppendCalls != 1 {
			t.Errorf("expected exactly one append, got %d", store.AppendCalls)
		}
		if catalog.AuthenticateCalls() != 1 {
			t.Errorf("expected one authentication, got %d", catalog.AuthenticateCalls())
		}
		if result.RunID == "" {
			t.Error("expected run ID")
		}
		if result.Artists != 3 {
			t.Errorf("expected 3 artists, got %d", result.Artists)
		}
	})

	t.Run("Default Country", func(t *testing.T) {
		catalog := &tu.MockCatalog{Artists: map[string]tu.MockArtist{"Artist A": tu.NewMockArtist("a1", "Artist A", 1)}}
		if _, err := NewExporter(catalog, &tu.MockStore{}, ExportOpts{}).Run(ctx, []string{"Artist A"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := catalog.Countries(); len(got) != 1 || got[0] != "BR" {
			t.Errorf("expected country BR, got %v", got)
		}
	})

	t.Run("Duplicates Reject Whole Batch", func(t *testing.T) {
		catalog := &tu.MockCatalog{Artists: map[string]tu.MockArtist{
			"Artist A": tu.NewMockArtist("a1", "Artist A", 2),
			"Artist B": tu.NewMockArtist("b1", "Artist B", 2),
		}}
		store := &tu.MockStore{Existing: map[models.SnapshotKey]bool{
			{ArtistID: "b1", QueryDate: "2024-05-01", SongName: "Artist B Song 2"}: true,
		}}

		_, err := NewExporter(catalog, store, ExportOpts{Now: fixedClock("2024-05-01")}).
			Run(ctx, []string{"Artist A", "Artist B"})

		var dup *shared.DuplicateDataError
		if !errors.As(err, &dup) {
			t.Fatalf("expected DuplicateDataError, got %v", err)
		}
		if dup.Count != 1 {
			t.Errorf("expected count 1, got %d", dup.Count)
		}
		if store.AppendCalls != 0 {
			t.Errorf("expected no append, got %d", store.AppendCalls)
		}
	})

	t.Run("Empty Batch Writes Nothing", func(t *testing.T) {
		catalog := &tu.MockCatalog{Artists: map[string]tu.MockArtist{"Artist A": tu.NewMockArtist("a1", "Artist A", 0)}}
		store := &tu.MockStore{}

		result, err := NewExporter(catalog, store, ExportOpts{}).Run(ctx, []string{"Artist A"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if store.AppendCalls != 0 || result.Rows != 0 {
			t.Errorf("expected nothing written, appends %d rows %d", store.AppendCalls, result.Rows)
		}

		result, err = NewExporter(catalog, store, ExportOpts{}).Run(ctx, nil)
		if err != nil || result.Rows != 0 || store.AppendCalls != 0 {
			t.Errorf("expected empty run to write nothing, got %+v, %v", result, err)
		}
	})

	t.Run("Artist Failure Aborts By Default", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			Artists: map[string]tu.MockArtist{"Artist A": tu.NewMockArtist("a1", "Artist A", 2)},
			Errors:  map[string]error{"Broken": fmt.Errorf("%w: status 503", shared.ErrTransport)},
		}
		store := &tu.MockStore{}

		_, err := NewExporter(catalog, store, ExportOpts{}).Run(ctx, []string{"Artist A", "Broken"})
		if !errors.Is(err, shared.ErrTransport) {
			t.Fatalf("expected ErrTransport, got %v", err)
		}
		if store.AppendCalls != 0 {
			t.Errorf("expected no append, got %d", store.AppendCalls)
		}
	})

	t.Run("Unknown Artist Aborts By Default", func(t *testing.T) {
		catalog := &tu.MockCatalog{Artists: map[string]tu.MockArtist{}}
		_, err := NewExporter(catalog, &tu.MockStore{}, ExportOpts{}).Run(ctx, []string{"Nobody"})
		if !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Isolate Failures", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			Artists: map[string]tu.MockArtist{
				"Artist A": tu.NewMockArtist("a1", "Artist A", 2),
				"Artist C": tu.NewMockArtist("c1", "Artist C", 1),
			},
			Errors: map[string]error{"Broken": fmt.Errorf("%w: status 503", shared.ErrTransport)},
		}
		store := &tu.MockStore{}
		progress := make(chan ProgressUpdate, 64)

		result, err := NewExporter(catalog, store, ExportOpts{IsolateFailures: true, Progress: progress}).
			Run(ctx, []string{"Artist A", "Broken", "Artist C"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Rows != 3 {
			t.Errorf("expected 3 rows, got %d", result.Rows)
		}
		if len(result.Failures) != 1 || result.Failures[0].Name != "Broken" {
			t.Errorf("expected Broken to be reported, got %+v", result.Failures)
		}
		if result.Artists != 2 {
			t.Errorf("expected 2 exported artists, got %d", result.Artists)
		}

		close(progress)
		phases := map[Phase]bool{}
		for u := range progress {
			phases[u.Phase] = true
		}
		for _, p := range []Phase{ResolveArtist, FetchArtist, FetchTracks, CheckDuplicates, AppendBatch} {
			if !phases[p] {
				t.Errorf("expected a %s progress update", p)
			}
		}
	})

	t.Run("Isolate Failures Auth Is Fatal", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			Artists: map[string]tu.MockArtist{
				"Artist A": tu.NewMockArtist("a1", "Artist A", 2),
				"Artist B": tu.NewMockArtist("b1", "Artist B", 2),
				"Artist C": tu.NewMockArtist("c1", "Artist C", 2),
			},
			ProfileErrors: map[string]error{"b1": fmt.Errorf("%w: artist: status 401", shared.ErrAuth)},
		}
		store := &tu.MockStore{}

		result, err := NewExporter(catalog, store, ExportOpts{IsolateFailures: true}).
			Run(ctx, []string{"Artist A", "Artist B", "Artist C"})
		if !errors.Is(err, shared.ErrAuth) {
			t.Fatalf("expected ErrAuth, got %v (result %+v)", err, result)
		}
		if store.AppendCalls != 0 {
			t.Errorf("expected no append, got %d", store.AppendCalls)
		}
		if catalog.ProfileCalls() != 2 {
			t.Errorf("expected collection to stop at Artist B, got %d profile calls", catalog.ProfileCalls())
		}
	})

	t.Run("Repeated Artist Collected Once", func(t *testing.T) {
		artist := tu.NewMockArtist("a1", "Artist A", 2)
		catalog := &tu.MockCatalog{Artists: map[string]tu.MockArtist{
			"Artist A": artist,
			"artist a": artist,
			"Artist B": tu.NewMockArtist("b1", "Artist B", 1),
		}}
		store := &tu.MockStore{}

		result, err := NewExporter(catalog, store, ExportOpts{Now: fixedClock("2024-05-01")}).
			Run(ctx, []string{"Artist A", "Artist B", "Artist A", "artist a"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Rows != 3 || len(store.Appended) != 3 {
			t.Errorf("expected 3 rows, result %d, appended %d", result.Rows, len(store.Appended))
		}
		if result.Artists != 2 {
			t.Errorf("expected 2 distinct artists, got %d", result.Artists)
		}
		if catalog.ProfileCalls() != 2 {
			t.Errorf("expected each artist fetched once, got %d profile calls", catalog.ProfileCalls())
		}

		seen := map[models.SnapshotKey]bool{}
		for _, row := range store.Appended {
			if seen[row.Key()] {
				t.Errorf("row %+v appended twice", row.Key())
			}
			seen[row.Key()] = true
		}
	})

	t.Run("Repeated Artist Against Database", func(t *testing.T) {
		repo := setupRepo(t)
		catalog := &tu.MockCatalog{Artists: map[string]tu.MockArtist{"Artist A": tu.NewMockArtist("a1", "Artist A", 2)}}

		if _, err := NewExporter(catalog, repo, ExportOpts{Now: fixedClock("2024-05-01")}).
			Run(ctx, []string{"Artist A", "Artist A"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if count, _ := repo.Count(ctx); count != 2 {
			t.Errorf("expected 2 stored rows, got %d", count)
		}
	})

	t.Run("Duration Reported", func(t *testing.T) {
		catalog := &tu.MockCatalog{Artists: map[string]tu.MockArtist{"Artist A": tu.NewMockArtist("a1", "Artist A", 1)}}
		start := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
		calls := 0
		clock := func() time.Time {
			calls++
			return start.Add(time.Duration(calls-1) * 750 * time.Millisecond)
		}

		result, err := NewExporter(catalog, &tu.MockStore{}, ExportOpts{Now: clock}).Run(ctx, []string{"Artist A"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.DurationMS != 1500 {
			t.Errorf("expected 1500ms, got %d", result.DurationMS)
		}
	})

	t.Run("Authentication Failure", func(t *testing.T) {
		catalog := &tu.MockCatalog{AuthenticateErr: fmt.Errorf("%w: bad secret", shared.ErrAuth)}
		store := &tu.MockStore{}

		_, err := NewExporter(catalog, store, ExportOpts{IsolateFailures: true}).Run(ctx, []string{"Artist A"})
		if !errors.Is(err, shared.ErrAuth) {
			t.Fatalf("expected ErrAuth, got %v", err)
		}
		if store.AppendCalls != 0 {
			t.Error("expected no append")
		}
	})

	t.Run("Store Errors Propagate", func(t *testing.T) {
		catalog := &tu.MockCatalog{Artists: map[string]tu.MockArtist{"Artist A": tu.NewMockArtist("a1", "Artist A", 1)}}

		_, err := NewExporter(catalog, &tu.MockStore{ExistsErr: shared.ErrStorage}, ExportOpts{}).Run(ctx, []string{"Artist A"})
		if !errors.Is(err, shared.ErrStorage) {
			t.Errorf("expected ErrStorage from RowExists, got %v", err)
		}

		_, err = NewExporter(catalog, &tu.MockStore{AppendErr: shared.ErrStorage}, ExportOpts{}).Run(ctx, []string{"Artist A"})
		if !errors.Is(err, shared.ErrStorage) {
			t.Errorf("expected ErrStorage from AppendRows, got %v", err)
		}
	})

	t.Run("Progress Never Blocks", func(t *testing.T) {
		catalog := &tu.MockCatalog{Artists: map[string]tu.MockArtist{"Artist A": tu.NewMockArtist("a1", "Artist A", 2)}}
		progress := make(chan ProgressUpdate)

		if _, err := NewExporter(catalog, &tu.MockStore{}, ExportOpts{Progress: progress}).Run(ctx, []string{"Artist A"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Rerun Same Day Against Database", func(t *testing.T) {
		repo := setupRepo(t)
		catalog := &tu.MockCatalog{Artists: map[string]tu.MockArtist{"Artist A": tu.NewMockArtist("a1", "Artist A", 2)}}
		opts := ExportOpts{Now: fixedClock("2024-05-01")}

		result, err := NewExporter(catalog, repo, opts).Run(ctx, []string{"Artist A"})
		if err != nil {
			t.Fatalf("first run: %v", err)
		}
		if result.Rows != 2 {
			t.Errorf("expected 2 rows, got %d", result.Rows)
		}

		_, err = NewExporter(catalog, repo, opts).Run(ctx, []string{"Artist A"})
		var dup *shared.DuplicateDataError
		if !errors.As(err, &dup) || dup.Count != 2 {
			t.Fatalf("expected DuplicateDataError{Count: 2}, got %v", err)
		}

		if count, _ := repo.Count(ctx); count != 2 {
			t.Errorf("expected 2 stored rows, got %d", count)
		}

		result, err = NewExporter(catalog, repo, ExportOpts{Now: fixedClock("2024-05-02")}).Run(ctx, []string{"Artist A"})
		if err != nil {
			t.Fatalf("next day run: %v", err)
		}
		if count, _ := repo.Count(ctx); count != 4 {
			t.Errorf("expected 4 stored rows after next-day run, got %d", count)
		}
	})
}

func TestQueryService(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) *repositories.SnapshotRepository {
		t.Helper()
		repo := setupRepo(t)
		catalog := &tu.MockCatalog{Artists: map[string]tu.MockArtist{
			"Artist A": tu.NewMockArtist("a1", "Artist A", 12),
			"Artist B": tu.NewMockArtist("b1", "Artist B", 2),
		}}
		for _, day := range []string{"2024-05-01", "2024-05-02"} {
			if _, err := NewExporter(catalog, repo, ExportOpts{Now: fixedClock(day)}).Run(ctx, []string{"Artist A", "Artist B"}); err != nil {
				t.Fatalf("seed %s: %v", day, err)
			}
		}
		return repo
	}

	t.Run("MostRecentSnapshot", func(t *testing.T) {
		q := NewQueryService(seed(t))

		byID, err := q.MostRecentSnapshot(ctx, "a1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		byName, err := q.MostRecentSnapshot(ctx, "Artist A")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *byID != *byName {
			t.Errorf("ID and name should resolve to the same snapshot: %+v vs %+v", byID, byName)
		}
		if byID.QueryDate != "2024-05-02" {
			t.Errorf("expected most recent date, got %s", byID.QueryDate)
		}
	})

	t.Run("MostRecentTopTracks", func(t *testing.T) {
		q := NewQueryService(seed(t))

		tracks, err := q.MostRecentTopTracks(ctx, "Artist A")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tracks) != MaxTopTracks {
			t.Fatalf("expected %d tracks, got %d", MaxTopTracks, len(tracks))
		}
		for i, tr := range tracks {
			if tr.QueryDate != "2024-05-02" {
				t.Errorf("track %d: expected newest date, got %s", i, tr.QueryDate)
			}
		}
		if tracks[0].SongName != "Artist A Song 1" {
			t.Errorf("expected insertion order, got %s first", tracks[0].SongName)
		}

		byID, err := q.MostRecentTopTracks(ctx, "a1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := range tracks {
			if tracks[i] != byID[i] {
				t.Errorf("track %d differs between name and ID lookup", i)
			}
		}
	})

	t.Run("Short Newest Snapshot Spans Dates", func(t *testing.T) {
		q := NewQueryService(seed(t))

		tracks, err := q.MostRecentTopTracks(ctx, "b1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tracks) != 4 {
			t.Fatalf("expected 4 tracks, got %d", len(tracks))
		}
		if tracks[0].QueryDate != "2024-05-02" || tracks[3].QueryDate != "2024-05-01" {
			t.Errorf("expected newest first, got %s .. %s", tracks[0].QueryDate, tracks[3].QueryDate)
		}
	})

	t.Run("Errors", func(t *testing.T) {
		q := NewQueryService(setupRepo(t))

		tests := []struct {
			name string
			key  string
			want error
		}{
			{"Unknown", "Nobody", shared.ErrNotFound},
			{"Blank", "   ", shared.ErrInvalidArgument},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := q.MostRecentSnapshot(ctx, tt.key); !errors.Is(err, tt.want) {
					t.Errorf("MostRecentSnapshot: expected %v, got %v", tt.want, err)
				}
				if _, err := q.MostRecentTopTracks(ctx, tt.key); !errors.Is(err, tt.want) {
					t.Errorf("MostRecentTopTracks: expected %v, got %v", tt.want, err)
				}
			})
		}
	})
}
