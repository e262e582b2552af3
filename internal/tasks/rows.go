package tasks

import (
	"time"

	"github.com/desertthunder/artistdb/internal/models"
)

// QueryDateLayout is the calendar-day format stored in query_date.
const QueryDateLayout = "2006-01-02"

// QueryDate formats t as the local calendar day of a snapshot.
func QueryDate(t time.Time) string {
	return t.Format(QueryDateLayout)
}

// BuildRows flattens one artist profile and its top tracks into one snapshot row per track.
//
// Every row shares queryDate, which the caller computes once per artist.
func BuildRows(profile models.ArtistProfile, tracks []models.TopTrack, queryDate string) []models.ArtistSnapshot {
	rows := make([]models.ArtistSnapshot, 0, len(tracks))
	for _, t := range tracks {
		rows = append(rows, models.ArtistSnapshot{
			ArtistID:         profile.ID,
			QueryDate:        queryDate,
			ArtistName:       profile.Name,
			Followers:        profile.Followers,
			ArtistPopularity: profile.Popularity,
			SongName:         t.Name,
			SongPopularity:   t.Popularity,
			ReleaseDate:      t.ReleaseDate,
			AlbumName:        t.AlbumName,
			TotalTracks:      t.AlbumTotalTracks,
		})
	}
	return rows
}
