// package formatter renders stored snapshots and export results as CSV, JSON, or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/desertthunder/artistdb/internal/models"
	"github.com/desertthunder/artistdb/internal/ui"
)

// TrackHeaders are the CSV columns written by [TracksToCSV].
var TrackHeaders = []string{"artist_id", "query_date", "song_name", "song_popularity", "release_date", "album_name", "total_tracks"}

// ToJSON marshals v, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

// TracksToCSV converts track rows to CSV with a header row.
func TracksToCSV(tracks []models.TrackRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(TrackHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, tr := range tracks {
		record := []string{
			tr.ArtistID,
			tr.QueryDate,
			tr.SongName,
			strconv.Itoa(tr.SongPopularity),
			tr.ReleaseDate,
			tr.AlbumName,
			strconv.Itoa(tr.TotalTracks),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ArtistToText renders an artist snapshot as labelled lines.
func ArtistToText(rec *models.ArtistRecord) []byte {
	var buf bytes.Buffer

	buf.WriteString(ui.Title(rec.ArtistName) + "\n")
	buf.WriteString(ui.Field("Artist ID", rec.ArtistID) + "\n")
	buf.WriteString(ui.Field("Snapshot date", rec.QueryDate) + "\n")
	buf.WriteString(ui.Field("Followers", strconv.Itoa(rec.Followers)) + "\n")
	buf.WriteString(ui.Field("Popularity", strconv.Itoa(rec.ArtistPopularity)) + "\n")

	return buf.Bytes()
}

// TracksToText renders track rows as a numbered list.
func TracksToText(key string, tracks []models.TrackRecord) []byte {
	var buf bytes.Buffer

	buf.WriteString(ui.Title(fmt.Sprintf("Top tracks for %s", key)) + "\n")
	for i, tr := range tracks {
		album := ""
		if tr.AlbumName != "" {
			album = fmt.Sprintf(" (%s, %s)", tr.AlbumName, tr.ReleaseDate)
		}
		buf.WriteString(fmt.Sprintf("%2d. %s%s [popularity %d] %s\n", i+1, tr.SongName, album, tr.SongPopularity, ui.Help(tr.QueryDate)))
	}

	return buf.Bytes()
}

// ExportResultToText summarizes an export run.
func ExportResultToText(result *models.ExportResult) []byte {
	var buf bytes.Buffer

	if result.Rows == 0 {
		buf.WriteString(ui.Warning("Nothing to write: no rows were collected.") + "\n")
	} else {
		buf.WriteString(ui.Success(fmt.Sprintf("✓ Appended %d rows for %d artists", result.Rows, result.Artists)) + "\n")
	}
	buf.WriteString(ui.Field("Run", result.RunID) + "\n")

	if len(result.Failures) > 0 {
		buf.WriteString(ui.Warning(fmt.Sprintf("Skipped %d artists:", len(result.Failures))) + "\n")
		for _, f := range result.Failures {
			buf.WriteString(fmt.Sprintf("  ✗ %s: %s\n", f.Name, f.Error))
		}
	}

	return buf.Bytes()
}
