// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/artistdb/internal/models"
	"github.com/desertthunder/artistdb/internal/shared"
	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

type followers struct {
	Total int `json:"total"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Followers  followers `json:"followers"`
	Popularity int       `json:"popularity"`
	Genres     []string  `json:"genres"`
	URI        string    `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
	TotalTracks int    `json:"total_tracks"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Album      SpotifyAlbum `json:"album"`
	Popularity int          `json:"popularity"`
}

type artistPage struct {
	Items []SpotifyArtist `json:"items"`
	Total int             `json:"total"`
}

// SpotifySearchResult is the response of an artist-type search.
type SpotifySearchResult struct {
	Artists artistPage `json:"artists"`
}

// SpotifyTopTracks is the response of the artist top-tracks endpoint.
type SpotifyTopTracks struct {
	Tracks []SpotifyTrack `json:"tracks"`
}

// SpotifyService implements [Catalog] for the Spotify Web API.
//
// Uses the client-credentials grant for authentication and [resty] for requests.
type SpotifyService struct {
	config     *clientcredentials.Config
	token      *oauth2.Token
	httpClient *http.Client
	client     *resty.Client
}

// NewSpotifyService creates a Spotify catalog client from credentials and catalog settings.
//
// Empty URLs fall back to the public Spotify endpoints.
func NewSpotifyService(creds *shared.Credentials, cfg shared.CatalogConfig) (*SpotifyService, error) {
	if creds == nil || creds.ClientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrConfiguration)
	}
	if creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrConfiguration)
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}

	httpClient := &http.Client{Timeout: cfg.Timeout()}

	client := resty.NewWithClient(httpClient).
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout()).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &SpotifyService{
		config: &clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: httpClient,
		client:     client,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Authenticate requests a bearer token with the client-credentials grant.
func (s *SpotifyService) Authenticate(ctx context.Context) error {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := s.config.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: token request: %v", shared.ErrAuth, err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("%w: token response had no access_token", shared.ErrAuth)
	}

	s.token = token
	return nil
}

// get performs an authenticated GET against the Spotify API and decodes a 2xx JSON body into result.
func (s *SpotifyService) get(ctx context.Context, op string, req func(*resty.Request) *resty.Request, endpoint string, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: %s: call Authenticate first", shared.ErrAuth, op)
	}

	r := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.token.AccessToken).
		SetResult(result)
	if req != nil {
		r = req(r)
	}

	resp, err := r.Get(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrTransport, op, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return fmt.Errorf("%w: %s: status %d", shared.ErrAuth, op, code)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s: status %d", shared.ErrNotFound, op, code)
	case code < 200 || code >= 300:
		return fmt.Errorf("%w: %s: spotify API error: status %d", shared.ErrTransport, op, code)
	}

	return nil
}

// ResolveArtistID searches for an artist by name and returns the first match's ID.
func (s *SpotifyService) ResolveArtistID(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: empty artist name", shared.ErrInvalidArgument)
	}

	var result SpotifySearchResult
	err := s.get(ctx, "search", func(r *resty.Request) *resty.Request {
		return r.SetQueryParams(map[string]string{
			"q":     name,
			"type":  "artist",
			"limit": "1",
		})
	}, "/search", &result)
	if err != nil {
		return "", err
	}

	if len(result.Artists.Items) == 0 || result.Artists.Items[0].ID == "" {
		return "", fmt.Errorf("%w: no artist matches %q", shared.ErrNotFound, name)
	}

	return result.Artists.Items[0].ID, nil
}

// ArtistProfile retrieves an artist by ID.
func (s *SpotifyService) ArtistProfile(ctx context.Context, artistID string) (*models.ArtistProfile, error) {
	var artist SpotifyArtist
	err := s.get(ctx, "artist", func(r *resty.Request) *resty.Request {
		return r.SetPathParam("id", artistID)
	}, "/artists/{id}", &artist)
	if err != nil {
		return nil, err
	}

	id := artist.ID
	if id == "" {
		id = artistID
	}

	return &models.ArtistProfile{
		ID:         id,
		Name:       artist.Name,
		Followers:  artist.Followers.Total,
		Popularity: artist.Popularity,
	}, nil
}

// TopTracks retrieves an artist's top tracks for a market, defaulting to [DefaultCountry].
func (s *SpotifyService) TopTracks(ctx context.Context, artistID, country string) ([]models.TopTrack, error) {
	if country == "" {
		country = DefaultCountry
	}

	var response SpotifyTopTracks
	err := s.get(ctx, "top-tracks", func(r *resty.Request) *resty.Request {
		return r.SetPathParam("id", artistID).SetQueryParam("market", country)
	}, "/artists/{id}/top-tracks", &response)
	if err != nil {
		return nil, err
	}

	tracks := make([]models.TopTrack, 0, len(response.Tracks))
	for _, t := range response.Tracks {
		tracks = append(tracks, models.TopTrack{
			Name:             t.Name,
			Popularity:       t.Popularity,
			ReleaseDate:      t.Album.ReleaseDate,
			AlbumName:        t.Album.Name,
			AlbumTotalTracks: t.Album.TotalTracks,
		})
	}

	return tracks, nil
}
