// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/artistdb/internal/models"
	"github.com/desertthunder/artistdb/internal/shared"
)

// MockArtist is the catalog data a [MockCatalog] serves for one artist name.
type MockArtist struct {
	Profile models.ArtistProfile
	Tracks  []models.TopTrack
}

// MockCatalog is a test double for [services.Catalog]
//
// Names missing from Artists resolve to [shared.ErrNotFound]. Errors keyed by name are returned from ResolveArtistID,
// ProfileErrors keyed by artist ID from ArtistProfile.
type MockCatalog struct {
	Artists         map[string]MockArtist
	Errors          map[string]error
	ProfileErrors   map[string]error
	AuthenticateErr error

	mu            sync.Mutex
	authenticated int
	profiles      int
	countries     []string
}

func (m *MockCatalog) Authenticate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authenticated++
	return m.AuthenticateErr
}

func (m *MockCatalog) ResolveArtistID(ctx context.Context, name string) (string, error) {
	if err, ok := m.Errors[name]; ok {
		return "", err
	}
	a, ok := m.Artists[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", shared.ErrNotFound, name)
	}
	return a.Profile.ID, nil
}

func (m *MockCatalog) ArtistProfile(ctx context.Context, artistID string) (*models.ArtistProfile, error) {
	m.mu.Lock()
	m.profiles++
	m.mu.Unlock()

	if err, ok := m.ProfileErrors[artistID]; ok {
		return nil, err
	}
	for _, a := range m.Artists {
		if a.Profile.ID == artistID {
			p := a.Profile
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, artistID)
}

func (m *MockCatalog) TopTracks(ctx context.Context, artistID, country string) ([]models.TopTrack, error) {
	m.mu.Lock()
	m.countries = append(m.countries, country)
	m.mu.Unlock()

	for _, a := range m.Artists {
		if a.Profile.ID == artistID {
			return append([]models.TopTrack(nil), a.Tracks...), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, artistID)
}

func (m *MockCatalog) Name() string { return "mock" }

// AuthenticateCalls returns how many times Authenticate was called.
func (m *MockCatalog) AuthenticateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

// ProfileCalls returns how many times ArtistProfile was called.
func (m *MockCatalog) ProfileCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profiles
}

// Countries returns the country passed to each TopTracks call.
func (m *MockCatalog) Countries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.countries...)
}

// NewMockArtist builds a [MockArtist] with n tracks named "<name> Song 1".."<name> Song n".
func NewMockArtist(id, name string, n int) MockArtist {
	tracks := make([]models.TopTrack, 0, n)
	for i := 1; i <= n; i++ {
		tracks = append(tracks, models.TopTrack{
			Name:             fmt.Sprintf("%s Song %d", name, i),
			Popularity:       100 - i,
			ReleaseDate:      "2021-03-04",
			AlbumName:        name + " Album",
			AlbumTotalTracks: n,
		})
	}
	return MockArtist{
		Profile: models.ArtistProfile{ID: id, Name: name, Followers: 1000, Popularity: 60},
		Tracks:  tracks,
	}
}

// MockStore is an in-memory test double for the export pipeline's snapshot store.
type MockStore struct {
	Existing  map[models.SnapshotKey]bool
	ExistsErr error
	AppendErr error

	AppendCalls int
	Appended    []models.ArtistSnapshot
}

func (m *MockStore) RowExists(ctx context.Context, artistID, queryDate, songName string) (bool, error) {
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	key := models.SnapshotKey{ArtistID: artistID, QueryDate: queryDate, SongName: songName}
	return m.Existing[key], nil
}

func (m *MockStore) AppendRows(ctx context.Context, rows []models.ArtistSnapshot) error {
	m.AppendCalls++
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Appended = append(m.Appended, rows...)
	if m.Existing == nil {
		m.Existing = make(map[models.SnapshotKey]bool)
	}
	for _, r := range rows {
		m.Existing[r.Key()] = true
	}
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// MustWriteFile writes content to path, failing the test on error.
func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
