package commands

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/llmstxt/internal/config"
	"git.home.luguber.info/inful/llmstxt/internal/lifecycle"
	"git.home.luguber.info/inful/llmstxt/internal/logfields"
	"git.home.luguber.info/inful/llmstxt/internal/metrics"
	"git.home.luguber.info/inful/llmstxt/internal/server/httpserver"
	"git.home.luguber.info/inful/llmstxt/internal/watch"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr   string        `name:"addr" help:"Listen address (overrides server.addr)"`
	Src    string        `name:"src" help:"Documentation source directory (overrides site.src_dir)"`
	Static string        `name:"static" help:"Directory served for non-artifact requests (defaults to site.out_dir)"`
	Watch  bool          `name:"watch" help:"Reassemble when markdown files change"`
	Poll   time.Duration `name:"poll" help:"Poll the source tree at this interval (overrides server.poll_interval)"`
}

func (s *ServeCmd) apply(res *config.Resolved) {
	if s.Addr != "" {
		res.Addr = s.Addr
	}
	if s.Src != "" {
		res.Site.SrcDir = s.Src
	}
	if s.Watch {
		res.Options.Watch = true
	}
	if s.Poll > 0 {
		res.PollInterval = s.Poll
	}
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()

	res, err := loadConfig(root)
	if err != nil {
		return err
	}
	s.apply(res)
	return serve(ctx, res, s.Static)
}

func serve(ctx context.Context, res *config.Resolved, staticDir string) error {
	logger := slog.Default()

	var (
		recorder       metrics.Recorder = metrics.NoopRecorder{}
		metricsHandler http.Handler
	)
	if res.MetricsEnabled {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		metricsHandler = metrics.HTTPHandler(reg)
	}

	pub := newPublisher(res)
	defer func() { _ = pub.Close() }()

	plugin := newPlugin(res,
		lifecycle.WithRecorder(recorder),
		lifecycle.WithPublisher(pub))
	if err := plugin.BuildStart(ctx); err != nil {
		// Requests retry the assembly.
		logger.Warn("Initial assembly failed", logfields.Error(err))
	}

	if staticDir == "" {
		staticDir = res.Site.OutDir
	}
	srv := httpserver.New(httpserver.Options{
		Addr:           res.Addr,
		StaticDir:      staticDir,
		Source:         plugin,
		Recorder:       recorder,
		Logger:         logger,
		MetricsHandler: metricsHandler,
		MetricsPath:    res.MetricsPath,
		Middleware:     plugin.ConfigureServer,
	})

	var poller *watch.Poller
	if res.PollInterval > 0 {
		p, err := watch.NewPoller(res.PollInterval, plugin.Poll, logger)
		if err != nil {
			return err
		}
		poller = p
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })

	if res.Options.Watch {
		w := watch.NewWatcher(res.Site.SrcDir, plugin.WatchChange,
			watch.WithFilter(lifecycle.IsWatchedFile),
			watch.WithLogger(logger))
		g.Go(func() error { return w.Run(gctx) })
	}
	if poller != nil {
		g.Go(func() error { return poller.Run(gctx) })
	}

	logger.Info("Serving llms.txt artifacts",
		slog.String("addr", res.Addr),
		logfields.Path(res.Site.SrcDir),
		slog.Bool("watch", res.Options.Watch),
		slog.Duration("poll_interval", res.PollInterval))
	return g.Wait()
}
