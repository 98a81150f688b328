package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/aussiebroadwan/worklane/pkg/slogx"
	"github.com/aussiebroadwan/worklane/pkg/worklane"
	"github.com/spf13/pflag"
)

// ErrNotSignedIn is returned by commands that need a session when the
// session check finds none.
var ErrNotSignedIn = errors.New("not signed in, run 'worklane login' first")

// App holds the process-level dependencies of one CLI invocation.
type App struct {
	Version string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Getenv defaults to os.Getenv.
	Getenv func(string) string

	// HTTPClient overrides the client built from the configured timeout.
	HTTPClient *http.Client
}

// Env is what a command runs against.
type Env struct {
	Config  Config
	Client  *worklane.Client
	Logger  *slog.Logger
	Version string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type globalFlags struct {
	config           string
	baseURL          string
	store            string
	storePath        string
	redisURL         string
	logLevel         string
	proactiveRefresh bool
}

func (g *globalFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&g.config, "config", "", "path to the YAML config file (default $WORKLANE_CONFIG or ~/.config/worklane/config.yaml)")
	fs.StringVar(&g.baseURL, "base-url", "", "backend origin, e.g. http://localhost:8000")
	fs.StringVar(&g.store, "store", "", "credential store: file, sqlite, redis or memory")
	fs.StringVar(&g.storePath, "store-path", "", "credentials file or database path")
	fs.StringVar(&g.redisURL, "redis-url", "", "redis URL for the redis store")
	fs.StringVar(&g.logLevel, "log-level", "", "debug, info, warn or error")
	fs.BoolVar(&g.proactiveRefresh, "proactive-refresh", false, "refresh an expired access token before sending requests")
}

func (g *globalFlags) apply(fs *pflag.FlagSet, cfg *Config) {
	if fs.Changed("base-url") {
		cfg.BaseURL = g.baseURL
	}
	if fs.Changed("store") {
		cfg.Store.Kind = g.store
	}
	if fs.Changed("store-path") {
		cfg.Store.Path = g.storePath
	}
	if fs.Changed("redis-url") {
		cfg.Store.RedisURL = g.redisURL
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	if fs.Changed("proactive-refresh") {
		cfg.ProactiveRefresh = g.proactiveRefresh
	}
}

// Run parses args (without the program name) and executes one command.
func (a *App) Run(ctx context.Context, args []string) error {
	getenv := a.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	var flags globalFlags
	global := pflag.NewFlagSet("worklane", pflag.ContinueOnError)
	global.SetOutput(io.Discard)
	global.SetInterspersed(false)
	flags.register(global)

	commands := Commands()

	if err := global.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(a.Stdout, global, commands)
			return nil
		}
		return fmt.Errorf("%w\n\nRun 'worklane --help' for usage", err)
	}

	rest := global.Args()
	if len(rest) == 0 {
		printUsage(a.Stderr, global, commands)
		return &ExitError{Code: 2}
	}

	cmd := findCommand(commands, rest[0])
	if cmd == nil {
		return fmt.Errorf("unknown command %q\n\nRun 'worklane --help' for usage", rest[0])
	}

	fs := cmd.flagSet()
	if err := fs.Parse(rest[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printCommandUsage(a.Stdout, cmd)
			return nil
		}
		return fmt.Errorf("%s: %w\n\nRun 'worklane %s --help' for usage", cmd.Name, err, cmd.Name)
	}

	env := &Env{
		Version: a.Version,
		Stdin:   a.Stdin,
		Stdout:  a.Stdout,
		Stderr:  a.Stderr,
	}
	if cmd.Bare {
		return cmd.Run(ctx, env, fs, fs.Args())
	}

	cfg, err := LoadConfig(flags.config, getenv)
	if err != nil {
		return err
	}
	flags.apply(global, &cfg)
	if err := cfg.Complete(getenv); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	env.Config = cfg

	env.Logger = slogx.New(slogx.Config{
		Service: "worklane",
		Version: a.Version,
		Env:     "cli",
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  a.Stderr,
	})

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("opening %s credential store: %w", cfg.Store.Kind, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			env.Logger.Warn("failed to close credential store", "err", err)
		}
	}()

	env.Client = worklane.New(cfg.BaseURL, store, a.clientOptions(cfg, env.Logger)...)

	if cmd.Session {
		if err := requireSession(ctx, env); err != nil {
			return err
		}
	}

	return cmd.Run(ctx, env, fs, fs.Args())
}

func (a *App) clientOptions(cfg Config, logger *slog.Logger) []worklane.Option {
	hc := a.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []worklane.Option{
		worklane.WithHTTPClient(hc),
		worklane.WithLogger(logger),
	}
	if cfg.ProactiveRefresh {
		opts = append(opts, worklane.WithProactiveRefresh())
	}
	return opts
}

// requireSession is the CLI's route guard: protected commands only reach the
// backend once the bootstrap check has found a usable session.
func requireSession(ctx context.Context, env *Env) error {
	gate := worklane.NewSessionGate(env.Client, worklane.WithObserver(func(s worklane.State) {
		env.Logger.DebugContext(ctx, "session state", "loading", s.Loading, "status", s.Status.String())
	}))

	if !gate.Check(ctx).Authenticated() {
		return ErrNotSignedIn
	}
	return nil
}
