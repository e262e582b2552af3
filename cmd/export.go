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

// Export loads the artist name list, fetches every artist, and appends the batch unless any row already exists.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	namesPath := cmd.String("names")
	if namesPath == "" {
		namesPath = r.config.Export.NamesPath
	}

	names, err := shared.LoadArtistNames(namesPath)
	if err != nil {
		r.logger.Error("failed to load artist names", "path", namesPath, "error", err)
		return err
	}
	r.logger.Debug("loaded artist names", "path", namesPath, "count", len(names))

	country := cmd.String("country")
	if country == "" {
		country = r.config.Catalog.Country
	}

	catalog, err := r.catalog(r.config.Catalog)
	if err != nil {
		return err
	}

	repo, err := r.gateway().Open(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	asJSON := cmd.Bool("json")
	opts := tasks.ExportOpts{
		Country:         country,
		IsolateFailures: cmd.Bool("isolate-failures") || r.config.Export.IsolateFailures,
		Logger:          r.logger,
	}

	stopProgress := func() {}
	if !asJSON {
		progress := make(chan tasks.ProgressUpdate, 32)
		done := ui.PrintProgress(r.progress, progress)
		opts.Progress = progress
		stopProgress = func() {
			close(progress)
			<-done
		}
	}

	result, err := tasks.NewExporter(catalog, repo, opts).Run(ctx, names)
	stopProgress()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if asJSON {
		return r.writeJSON(result, true)
	}
	return r.writeBytes(formatter.ExportResultToText(result))
}
