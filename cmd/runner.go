package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotlite/internal/navigation"
	"github.com/desertthunder/spotlite/internal/repositories"
	"github.com/desertthunder/spotlite/internal/services"
	"github.com/desertthunder/spotlite/internal/session"
	"github.com/desertthunder/spotlite/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	api        *services.APIService
	auth       services.Authenticator
	events     services.EventLister
	store      *session.Store
	db         *sql.DB
	navigator  navigation.Navigator
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	// set once the session store and clients are wired, either by NewRunner or by prepare
	ready bool
}

// RunnerOpts contains configuration options for creating a Runner.
//
// When Store is set the Runner is considered wired and the root command skips
// loading config.toml and opening the database.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        *services.APIService
	Auth       services.Authenticator
	Events     services.EventLister
	Store      *session.Store
	Navigator  navigation.Navigator
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		api:        opts.API,
		auth:       opts.Auth,
		events:     opts.Events,
		store:      opts.Store,
		navigator:  opts.Navigator,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	if r.store != nil {
		r.wire()
		r.ready = true
	}
	return r
}

// command builds the root command.
func (r *Runner) command() *cli.Command {
	return &cli.Command{
		Name:    "spotlite",
		Usage:   "Browse, filter and book EventSpotLite events from the terminal",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   defaultConfigPath,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.prepare,
		After:    r.close,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, eventsCommand, tuiCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// prepare loads configuration and opens the session store before any action runs.
//
// A missing config file means defaults; an unusable database falls back to an
// in-memory session with a warning so read-only commands keep working.
func (r *Runner) prepare(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	if r.ready {
		return ctx, nil
	}

	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}
	if _, err := os.Stat(r.configPath); err == nil {
		config, err := shared.LoadConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
	} else {
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
	}
	r.config.ApplyEnv()

	if timeout := r.config.API.Timeout(); timeout > 0 && r.httpClient == http.DefaultClient {
		r.httpClient = &http.Client{Timeout: timeout}
	}

	r.store = session.NewStore(session.NewMemoryStorage())
	if db, err := shared.OpenDatabase(r.config.Database); err != nil {
		r.logger.Warn("session storage unavailable, session will not persist", "error", err)
	} else {
		r.db = db
		r.store = session.NewStore(repositories.NewCredentialRepository(db))
	}
	if err := r.store.Init(); err != nil {
		r.logger.Warn("failed to restore session", "error", err)
	}

	r.wire()
	r.ready = true
	return ctx, nil
}

// wire builds any client not supplied through [RunnerOpts].
func (r *Runner) wire() {
	if r.api == nil {
		r.api = services.NewAPIService(
			r.config.API.BaseURL,
			r.httpClient,
			services.WithRateLimit(r.config.API.RequestsPerSecond),
			services.WithLogger(shared.WithLogger(r.logger, "component", "api")),
		)
	}
	if r.auth == nil {
		r.auth = services.NewAuthClient(r.api)
	}
	if r.events == nil {
		r.events = services.NewEventService(r.api, r.store)
	}
	if r.navigator == nil {
		r.navigator = navigation.NewBrowserNavigator(r.config.API.WebURL)
	}
}

func (r *Runner) close(ctx context.Context, cmd *cli.Command) error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// SetLogger replaces the logger used by the runner.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// notify prints the user-facing message for err and returns err wrapped for the exit status.
func (r *Runner) notify(action string, err error) error {
	r.writePlain("✗ %s\n", services.Describe(err))
	return fmt.Errorf("%s: %w", action, err)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
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

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
