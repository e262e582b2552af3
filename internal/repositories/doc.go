// Package repositories implements SQLite persistence for artist snapshots.
//
// Key Implementations:
//   - [SnapshotRepository] : append-only store for the artists_data table
//   - [Gateway] : opens one connection per top-level operation and ensures the schema
//
// Rows are appended and never updated or deleted. [SnapshotRepository.AppendRows] inserts a batch in a
// single transaction with a prepared statement, so a failed insert leaves nothing behind.
//
// Reads match an artist key against both artist_id and artist_name and order by query_date descending,
// breaking ties by insertion order (id ascending).
//
// All failures wrap [shared.ErrStorage]; reads that match nothing return [shared.ErrNotFound].
package repositories
