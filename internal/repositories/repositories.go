// package repositories provides persistence for artist snapshots.
package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/artistdb/internal/shared"
)

// Gateway opens the snapshot store at Path.
//
// Each top-level operation (a CLI command or an HTTP request) opens its own connection and closes it when done.
type Gateway struct {
	Path string
}

// NewGateway creates a [Gateway] for the database file at path.
func NewGateway(path string) *Gateway {
	return &Gateway{Path: path}
}

// Open connects to the database, creating its parent directory when needed, and ensures the schema exists.
//
// The caller must Close the returned repository.
func (g *Gateway) Open(ctx context.Context) (*SnapshotRepository, error) {
	db, err := shared.NewDatabase(ctx, g.Path)
	if err != nil {
		return nil, err
	}

	repo := NewSnapshotRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

// String returns the database location for display.
func (g *Gateway) String() string {
	return fmt.Sprintf("sqlite3://%s", g.Path)
}
