// Package cli provides the patrol command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/patrol/config"
	"github.com/katalvlaran/patrol/logging"
	"github.com/katalvlaran/patrol/patrol"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	input      string
	workers    int
	stepLimit  int
	logLevel   string
	logFormat  string
}

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	flags  globalOptions
	cfg    config.Config
	logger *bolt.Logger
	runID  string
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "patrol",
		Short: "Simulate a patrolling guard on a tile map",
		Long: `patrol reads a tile map ('.' floor, '#' obstacle, '^' guard) and follows
the guard as it walks forward, turning right at obstacles, until it leaves
the map.

Part 1 counts the distinct cells the guard visits. Part 2 counts the cells
where one extra obstacle would trap the guard in a loop.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
	}

	pf := app.root.PersistentFlags()
	pf.StringVarP(&app.flags.configPath, "config", "c", "", "Path to YAML configuration file")
	pf.StringVarP(&app.flags.input, "input", "i", "", "Puzzle input file (overrides config)")
	pf.IntVar(&app.flags.workers, "workers", 0, "Obstruction-search workers, 0 = GOMAXPROCS (overrides config)")
	pf.IntVar(&app.flags.stepLimit, "step-limit", 0, "Simulation step ceiling, 0 = width*height*4 (overrides config)")
	pf.StringVar(&app.flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
	pf.StringVar(&app.flags.logFormat, "log-format", "", "Log format: console or json (overrides config)")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newSolveCmd(),
		app.newVisitedCmd(),
		app.newLoopsCmd(),
		app.newRenderCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// Logger returns the logger resolved from the run's configuration and
// flags, or the process-wide default when setup has not run.
func (a *App) Logger() *bolt.Logger {
	if a.logger == nil {
		return logging.Get()
	}
	return a.logger
}

// setup resolves configuration and builds the run's logger.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("input") {
		cfg.Input = a.flags.input
	}
	if f.Changed("workers") {
		cfg.Workers = a.flags.workers
	}
	if f.Changed("step-limit") {
		cfg.StepLimit = a.flags.stepLimit
	}
	if f.Changed("log-level") {
		cfg.Log.Level = a.flags.logLevel
	}
	if f.Changed("log-format") {
		cfg.Log.Format = a.flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lc := cfg.Logging()
	lc.Output = a.stderr
	a.cfg = cfg
	a.logger = logging.New(lc)
	a.runID = uuid.NewString()
	return nil
}

// patrolOptions maps the resolved configuration onto patrol options.
func (a *App) patrolOptions(ctx context.Context) []patrol.Option {
	return []patrol.Option{
		patrol.WithContext(ctx),
		patrol.WithWorkers(a.cfg.Workers),
		patrol.WithStepLimit(a.cfg.StepLimit),
		patrol.WithLogger(a.logger),
	}
}

// event starts a log line tagged with this run's ID.
func (a *App) event(e *bolt.Event) *logging.LogEvent {
	return logging.NewEvent(e).Add(logging.RunID(a.runID), logging.Component("cli"))
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "patrol version %s\n", Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}
