// Package models defines the data types shared by the catalog client, the export pipeline and the snapshot store.
//
// The package contains three groups of types:
//
// 1. Catalog DTOs: what the Spotify Web API returns, reduced to the consumed fields
//   - [ArtistProfile] : name, follower count and popularity of one artist
//   - [TopTrack] : one entry of an artist's top tracks with its album data
//
// 2. Persisted rows
//   - [ArtistSnapshot] : one flattened artist/track row, immutable once stored
//
// 3. Read and result types
//   - [ArtistRecord] : artist-level columns of the newest snapshot
//   - [TrackRecord] : track-level columns of a snapshot row
//   - [ExportResult] : outcome of one export run
//
// A snapshot's natural key is (ArtistID, QueryDate, SongName); see [ArtistSnapshot.Key].
package models
