// Package commands implements the llmstxt subcommands.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/llmstxt/internal/config"
	"git.home.luguber.info/inful/llmstxt/internal/events"
	"git.home.luguber.info/inful/llmstxt/internal/foundation/errors"
	"git.home.luguber.info/inful/llmstxt/internal/lifecycle"
	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

// LogLevelEnv overrides the configured log level.
const LogLevelEnv = "LLMSTXT_LOG_LEVEL"

// Global is shared state bound into every command.
type Global struct {
	Stdout io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"llmstxt.yaml" env:"LLMSTXT_CONFIG"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Generate llms.txt artifacts into the output directory"`
	Serve ServeCmd `cmd:"" help:"Serve artifacts on demand with optional watch and poll reassembly"`
	Index IndexCmd `cmd:"" help:"Print the generated llms.txt index"`
	Pages PagesCmd `cmd:"" help:"List generated artifacts"`
	Init  InitCmd  `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	setupLogging(c.Verbose, "", config.LogFormatText)
	return nil
}

// setupLogging installs the default slog logger on stderr. Verbose wins over
// LLMSTXT_LOG_LEVEL, which wins over the configured level.
func setupLogging(verbose bool, configured config.LogLevel, format config.LogFormat) {
	level := configured.SlogLevel()
	if env := os.Getenv(LogLevelEnv); env != "" {
		level = config.NormalizeLogLevel(env).SlogLevel()
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadConfig reads and resolves the configuration. A missing file at the
// default path falls back to defaults.
func loadConfig(root *CLI) (*config.Resolved, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		if !errors.HasCategory(err, errors.CategoryNotFound) || root.Config != config.DefaultPath {
			return nil, err
		}
		slog.Debug("No configuration file found, using defaults", logfields.Path(root.Config))
		cfg = config.Default()
	}

	res, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	setupLogging(root.Verbose, res.LogLevel, res.LogFormat)
	for _, w := range res.Warnings {
		slog.Warn("Configuration value normalized", slog.String("detail", w))
	}
	return res, nil
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// newPublisher connects to NATS when configured, retrying failed publishes.
// Connection failures only disable event publishing.
func newPublisher(res *config.Resolved) events.Publisher {
	if res.Events.URL == "" {
		return events.NoopPublisher{}
	}
	pub, err := events.NewNATSPublisher(res.Events)
	if err != nil {
		slog.Warn("Event publishing disabled", logfields.URL(res.Events.URL), logfields.Error(err))
		return events.NoopPublisher{}
	}
	return events.NewRetryingPublisher(pub, res.EventsRetry, slog.Default())
}

// newPlugin builds a lifecycle plugin bound to the resolved site.
func newPlugin(res *config.Resolved, options ...lifecycle.Option) *lifecycle.Plugin {
	options = append([]lifecycle.Option{
		lifecycle.WithLogger(slog.Default()),
		lifecycle.WithExcerpt(res.Excerpt),
	}, options...)
	p := lifecycle.New(res.Options, options...)
	p.ConfigResolved(res.Site)
	return p
}
