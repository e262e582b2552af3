package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/artistdb/internal/formatter"
	"github.com/desertthunder/artistdb/internal/shared"
	"github.com/desertthunder/artistdb/internal/tasks"
	"github.com/desertthunder/artistdb/internal/ui"
	"github.com/urfave/cli/v3"
)

// Artist prints the most recent snapshot whose artist ID or name equals the key argument.
// JSON output is an object keyed by the lookup key.
func (r *Runner) Artist(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: artist ID or name is required", shared.ErrMissingArgument)
	}

	repo, err := r.gateway().Open(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	rec, err := tasks.NewQueryService(repo).MostRecentSnapshot(ctx, key)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{key: rec}, true)
	}
	return r.writeBytes(formatter.ArtistToText(rec))
}

// Tracks prints up to ten of the most recent track rows for the key argument.
func (r *Runner) Tracks(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: artist ID or name is required", shared.ErrMissingArgument)
	}
	if cmd.Bool("json") && cmd.Bool("csv") {
		return fmt.Errorf("%w: --json and --csv are mutually exclusive", shared.ErrInvalidArgument)
	}

	repo, err := r.gateway().Open(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	tracks, err := tasks.NewQueryService(repo).MostRecentTopTracks(ctx, key)
	if err != nil {
		return err
	}

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(map[string]any{key: tracks}, true)
	case cmd.Bool("csv"):
		data, err := formatter.TracksToCSV(tracks)
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	default:
		return r.writeBytes(formatter.TracksToText(key, tracks))
	}
}

// Status prints the database location and the number of stored rows.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.gateway().Open(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}

	r.writePlain("%s\n", ui.Title("artistdb status"))
	r.writePlain("%s\n", ui.Field("Config", r.configPath))
	r.writePlain("%s\n", ui.Field("Database", r.config.Database.Path))
	r.writePlain("%s\n", ui.Field("Rows", fmt.Sprintf("%d", count)))
	return nil
}
