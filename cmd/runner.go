package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/artistdb/internal/formatter"
	"github.com/desertthunder/artistdb/internal/repositories"
	"github.com/desertthunder/artistdb/internal/services"
	"github.com/desertthunder/artistdb/internal/shared"
	"github.com/desertthunder/artistdb/internal/ui"
	"github.com/urfave/cli/v3"
)

// CatalogFactory builds the catalog client for an export run.
type CatalogFactory func(cfg shared.CatalogConfig) (services.Catalog, error)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	progress   io.Writer
	catalog    CatalogFactory
	started    time.Time
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A nil Config is loaded from the --config flag when a command starts.
type RunnerOpts struct {
	Config   *shared.Config
	Logger   *log.Logger
	Output   io.Writer
	Progress io.Writer
	Catalog  CatalogFactory
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Progress == nil {
		opts.Progress = os.Stderr
	}
	if opts.Catalog == nil {
		opts.Catalog = spotifyCatalog
	}

	return &Runner{
		config:   opts.Config,
		logger:   opts.Logger,
		output:   opts.Output,
		progress: opts.Progress,
		catalog:  opts.Catalog,
	}
}

// spotifyCatalog reads credentials from the environment and builds a Spotify client.
func spotifyCatalog(cfg shared.CatalogConfig) (services.Catalog, error) {
	creds, err := shared.LoadCredentials()
	if err != nil {
		return nil, err
	}
	return services.NewSpotifyService(creds, cfg)
}

// App builds the root command.
func (r *Runner) App() *cli.Command {
	return &cli.Command{
		Name:     "artistdb",
		Usage:    "Snapshot Spotify artist popularity and top tracks into SQLite",
		Version:  "0.1.0",
		Flags:    globalFlags(),
		Before:   r.before,
		After:    r.after,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, exportCommand, artistCommand, tracksCommand, statusCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// before applies global flags: log level and configuration.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.started = time.Now()

	if cmd.Bool("debug") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	r.configPath = cmd.String("config")
	if r.config != nil {
		return ctx, nil
	}

	config, err := shared.ResolveConfig(r.configPath)
	if err != nil {
		return ctx, err
	}
	r.config = config
	r.logger.Debug("configuration loaded", "path", r.configPath, "database", config.Database.Path)

	return ctx, nil
}

// after prints the runtime footer.
func (r *Runner) after(ctx context.Context, cmd *cli.Command) error {
	if r.started.IsZero() {
		return nil
	}
	r.logger.Info(ui.Help("finished"), "elapsed", time.Since(r.started).Round(time.Millisecond))
	return nil
}

func (r *Runner) gateway() *repositories.Gateway {
	return repositories.NewGateway(r.config.Database.Path)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := formatter.ToJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
