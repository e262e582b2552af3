package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/artistdb/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the read-only query API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		cfg.Port = int(port)
	}

	gw := r.gateway()
	open := func(ctx context.Context) (server.SnapshotSource, error) {
		repo, err := gw.Open(ctx)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}

	if err := server.Serve(ctx, cfg.Addr(), server.NewAPIRouter(open, r.logger), r.logger); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
