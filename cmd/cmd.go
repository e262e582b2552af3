// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// globalFlags are accepted by every command.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
}

// setupCommand creates the config file and initializes the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml if missing and initialize the database",
		Action: r.Setup,
	}
}

// exportCommand fetches snapshots for every artist in the name list.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Fetch artist profiles and top tracks and append today's snapshot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "names",
				Aliases: []string{"n"},
				Usage:   "Path to the artist name list (.json or .yaml), defaults to export.names_path",
			},
			&cli.BoolFlag{
				Name:  "isolate-failures",
				Usage: "Skip artists that fail instead of aborting the run",
			},
			&cli.StringFlag{
				Name:  "country",
				Usage: "Market for top tracks, defaults to catalog.country",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the run summary as JSON",
			},
		},
		Action: r.Export,
	}
}

// artistCommand prints the most recent snapshot of an artist.
func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "artist",
		Usage: "Show the most recent snapshot for an artist ID or name",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "key"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Artist,
	}
}

// tracksCommand prints up to ten of an artist's most recent track rows.
func tracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tracks",
		Usage: "Show the most recent top tracks for an artist ID or name",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "key"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "csv",
				Usage: "Output CSV",
			},
		},
		Action: r.Tracks,
	}
}

// statusCommand reports the database location and row count.
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show database path and number of stored rows",
		Action: r.Status,
	}
}

// serveCommand starts the read-only HTTP query API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the most recent snapshots over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host, defaults to server.host",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port, defaults to server.port",
			},
		},
		Action: r.Serve,
	}
}
