// Package tasks exports artist snapshots from a music catalog into the snapshot store and answers
// "most recent" queries against it.
//
// # Export
//
// [Exporter.Run] processes a list of artist names in two phases:
//
//  1. Collect: authenticate once, then for each name resolve the artist ID, fetch the profile and
//     top tracks, and flatten them with [BuildRows]. Every row of one artist shares one query date.
//  2. Commit: check each candidate row against the store. If any already exists the whole batch is
//     rejected with [shared.DuplicateDataError]; otherwise the batch is appended in one call.
//
// A failure for one artist aborts the run unless [ExportOpts.IsolateFailures] is set, in which case
// the artist is skipped and reported in [models.ExportResult.Failures].
//
// # Queries
//
// [QueryService] returns the newest snapshot and up to [MaxTopTracks] track rows for an artist key,
// which matches either the stored artist ID or the exact artist name.
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data.
// Updates use select with default to prevent blocking.
package tasks
