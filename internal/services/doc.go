// Package services defines the [Catalog] interface for music catalog providers and implements it for Spotify.
//
// # Catalog Interface
//
// The export pipeline depends only on [Catalog], so tests substitute a hand-written fake and the
// Spotify client can be pointed at an [net/http/httptest] server through its configured URLs.
//
// # Spotify Implementation
//
// [SpotifyService] authenticates with the OAuth2 client-credentials grant
// ([golang.org/x/oauth2/clientcredentials]) and sends API requests through a [resty.Client]
// configured with an explicit timeout and no retries.
//
// The token is fetched once per run by [SpotifyService.Authenticate] and never refreshed.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAuth] : token request failed, Authenticate() not called, or the API answered 401/403
//   - [shared.ErrTransport] : network failure, timeout, or any other non-2xx status
//   - [shared.ErrNotFound] : search returned no artist, or the API answered 404
//
// # API Mappings
//
//   - GET /search?q={name}&type=artist&limit=1 → first item's ID
//   - GET /artists/{id} → [models.ArtistProfile] (followers.total flattened)
//   - GET /artists/{id}/top-tracks?market={country} → [models.TopTrack] (album name, release date, total tracks flattened)
package services
