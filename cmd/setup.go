package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/artistdb/internal/shared"
	"github.com/desertthunder/artistdb/internal/ui"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file when missing, then opens the database and applies migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(r.configPath); os.IsNotExist(err) {
		r.logger.Info("config file not found, creating from template", "path", r.configPath)
		if err := shared.CreateConfigFile(r.configPath); err != nil {
			return err
		}
		if r.config, err = shared.LoadConfig(r.configPath); err != nil {
			return err
		}
		r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Created %s", r.configPath)))
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)

	repo, err := r.gateway().Open(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}

	r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Database ready at %s (%d rows)", r.config.Database.Path, count)))
	r.writePlain("%s\n", ui.Help("Set CLIENT_ID and CLIENT_SECRET in the environment or .env, then run 'artistdb export'."))
	return nil
}
