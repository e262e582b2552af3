// package services defines interface Catalog for fetching artist data from music catalog HTTP APIs
//
// Spotify Web API
package services

import (
	"context"

	"github.com/desertthunder/artistdb/internal/models"
)

// DefaultCountry is the market used for top tracks when none is configured.
const DefaultCountry = "BR"

// Catalog defines the read operations the export pipeline needs from a music catalog.
//
// All calls are synchronous and made once; implementations do not retry.
type Catalog interface {
	// Authenticate exchanges client credentials for a bearer token used by the remaining calls of the run.
	Authenticate(ctx context.Context) error

	// ResolveArtistID returns the catalog ID of the first artist matching name.
	ResolveArtistID(ctx context.Context, name string) (string, error)

	// ArtistProfile retrieves name, followers and popularity for an artist ID.
	ArtistProfile(ctx context.Context, artistID string) (*models.ArtistProfile, error)

	// TopTracks retrieves the artist's top tracks in the given country's market.
	TopTracks(ctx context.Context, artistID, country string) ([]models.TopTrack, error)

	// Name returns the name of the catalog (e.g., "Spotify")
	Name() string
}
