// Package lifecycle wires the llms pipeline into the site build and dev
// server lifecycle: startup assembly, watched-file reassembly, the dev
// server middleware and build-end file emission.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"git.home.luguber.info/inful/llmstxt/internal/docs"
	"git.home.luguber.info/inful/llmstxt/internal/events"
	derrors "git.home.luguber.info/inful/llmstxt/internal/foundation/errors"
	"git.home.luguber.info/inful/llmstxt/internal/llms"
	"git.home.luguber.info/inful/llmstxt/internal/logfields"
	"git.home.luguber.info/inful/llmstxt/internal/metrics"
	"git.home.luguber.info/inful/llmstxt/internal/output"
	"git.home.luguber.info/inful/llmstxt/internal/server/handlers"
	"git.home.luguber.info/inful/llmstxt/internal/site"
)

// Rebuild reasons reported to metrics and events.
const (
	ReasonStartup = "startup"
	ReasonWatch   = "watch"
	ReasonPoll    = "poll"
	ReasonRequest = "request"
	ReasonBuild   = "build"
)

// Plugin is the lifecycle orchestrator. Hooks are safe to call from multiple goroutines.
type Plugin struct {
	opts      llms.Options
	excerpt   bool
	recorder  metrics.Recorder
	publisher events.Publisher
	logger    *slog.Logger
	session   *Session

	mu         sync.RWMutex
	site       *site.Config
	sourceHash string
}

// Option customizes a Plugin.
type Option func(*Plugin)

func WithRecorder(r metrics.Recorder) Option {
	return func(p *Plugin) {
		if r != nil {
			p.recorder = r
		}
	}
}

func WithPublisher(pub events.Publisher) Option {
	return func(p *Plugin) {
		if pub != nil {
			p.publisher = pub
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Plugin) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithExcerpt renders page excerpts during discovery.
func WithExcerpt(enabled bool) Option {
	return func(p *Plugin) { p.excerpt = enabled }
}

// New creates a plugin for opts. It does nothing until ConfigResolved is called.
func New(opts llms.Options, options ...Option) *Plugin {
	p := &Plugin{
		opts:      opts,
		recorder:  metrics.NoopRecorder{},
		publisher: events.NoopPublisher{},
		logger:    slog.Default(),
	}
	for _, o := range options {
		o(p)
	}
	p.session = NewSession(p.compute)
	return p
}

// ErrNotConfigured is returned when a hook needing the site runs before ConfigResolved.
var ErrNotConfigured = errors.New("site configuration not resolved")

// ConfigResolved captures the site configuration and chains the build-end
// hook after any hook already installed. Later calls are ignored.
func (p *Plugin) ConfigResolved(cfg *site.Config) {
	if cfg == nil {
		return
	}
	p.mu.Lock()
	if p.site != nil {
		p.mu.Unlock()
		return
	}
	p.site = cfg
	p.mu.Unlock()

	cfg.ChainBuildEnd(p.buildEnd)
}

// Site returns the resolved site configuration, or nil.
func (p *Plugin) Site() *site.Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.site
}

// BuildStart assembles once. Repeated calls reuse the cached result.
func (p *Plugin) BuildStart(ctx context.Context) error {
	if p.Site() == nil {
		return nil
	}
	_, err := p.session.GetOrCompute(ctx, ReasonStartup)
	return err
}

// WatchChange reassembles after a .md or .txt file changed, when watching is enabled.
func (p *Plugin) WatchChange(ctx context.Context, path string) error {
	if p.Site() == nil || !p.opts.Watch {
		return nil
	}
	if !IsWatchedFile(path) {
		return nil
	}
	p.logger.Debug("Watched file changed", logfields.Component(), logfields.Path(path))
	_, err := p.session.Recompute(ctx, ReasonWatch)
	return err
}

// IsWatchedFile reports whether a change to path triggers reassembly.
func IsWatchedFile(path string) bool {
	return strings.HasSuffix(path, ".md") || strings.HasSuffix(path, ".txt")
}

// ConfigureServer returns the dev server middleware serving artifacts in front of next.
func (p *Plugin) ConfigureServer(next http.Handler) http.Handler {
	return handlers.NewArtifactHandlers(p, p.recorder, p.logger).Middleware(next)
}

// Artifacts returns the current artifacts, assembling them when nothing is cached.
func (p *Plugin) Artifacts(ctx context.Context) ([]llms.Artifact, error) {
	if p.Site() == nil {
		return nil, derrors.WrapError(ErrNotConfigured, derrors.CategoryRuntime, "llms artifacts unavailable").Build()
	}
	return p.session.GetOrCompute(ctx, ReasonRequest)
}

// Invalidate drops the cached artifacts.
func (p *Plugin) Invalidate() {
	p.session.Invalidate()
}

// Poll reloads the page source and reassembles only when its content hash changed.
// It reports whether a reassembly ran.
func (p *Plugin) Poll(ctx context.Context) (bool, error) {
	cfg := p.Site()
	if cfg == nil {
		return false, nil
	}
	pages, err := p.loadPages(ctx, cfg)
	if err != nil {
		return false, err
	}
	hash := docs.ComputeSourceHash(pages)

	p.mu.RLock()
	unchanged := hash == p.sourceHash
	p.mu.RUnlock()
	if _, cached := p.session.Cached(); unchanged && cached {
		return false, nil
	}

	if _, err := p.session.Recompute(ctx, ReasonPoll); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Plugin) loader(cfg *site.Config) (*docs.Loader, error) {
	return docs.NewDirLoader(cfg.SrcDir, docs.LoaderConfig{
		Ignore:    p.opts.Ignore,
		CleanURLs: cfg.UserConfig.CleanURLs,
		Excerpt:   p.excerpt,
	})
}

func (p *Plugin) loadPages(ctx context.Context, cfg *site.Config) ([]llms.Page, error) {
	start := time.Now()
	l, err := p.loader(cfg)
	if err != nil {
		return nil, err
	}
	pages, err := l.Load(ctx)
	p.recorder.ObserveStageDuration("load", time.Since(start))
	return pages, err
}

// compute is the Session's assembly pass.
// The rebuild event is published from Committed, outside the session lock.
func (p *Plugin) compute(ctx context.Context, reason string) (Pass, error) {
	cfg := p.Site()
	if cfg == nil {
		return Pass{}, derrors.WrapError(ErrNotConfigured, derrors.CategoryRuntime, "llms artifacts unavailable").Build()
	}
	start := time.Now()
	p.recorder.IncRebuild(reason)

	pages, err := p.loadPages(ctx, cfg)
	if err != nil {
		p.recordFailure(ctx, start)
		return Pass{}, err
	}

	assembleStart := time.Now()
	artifacts, err := llms.Build(ctx, pages, cfg, p.opts)
	p.recorder.ObserveStageDuration("assemble", time.Since(assembleStart))
	if err != nil {
		p.recordFailure(ctx, start)
		return Pass{}, err
	}

	hash := docs.ComputeSourceHash(pages)
	p.mu.Lock()
	p.sourceHash = hash
	p.mu.Unlock()

	cfg.SetThemeValue(llms.ThemeConfigKey, llms.ClientData(artifacts))
	p.recordSuccess(artifacts, start)

	p.logger.Debug("llms artifacts assembled",
		logfields.Component(),
		logfields.Reason(reason),
		logfields.Count(len(artifacts)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return Pass{
		Artifacts: artifacts,
		Committed: func() { p.publish(ctx, reason, len(pages), artifacts, hash) },
	}, nil
}

func (p *Plugin) recordFailure(ctx context.Context, start time.Time) {
	p.recorder.ObserveAssemblyDuration(time.Since(start))
	if ctx.Err() != nil {
		p.recorder.IncAssemblyOutcome(metrics.OutcomeCanceled)
		return
	}
	p.recorder.IncAssemblyOutcome(metrics.OutcomeFailed)
}

func (p *Plugin) recordSuccess(artifacts []llms.Artifact, start time.Time) {
	p.recorder.ObserveAssemblyDuration(time.Since(start))
	p.recorder.IncAssemblyOutcome(metrics.OutcomeSuccess)

	counts := map[string]int{"index": 0, "page": 0, "full": 0}
	for _, a := range artifacts {
		switch a.Path {
		case llms.IndexPath:
			counts["index"]++
		case llms.FullPath:
			counts["full"]++
		default:
			counts["page"]++
		}
	}
	for kind, n := range counts {
		p.recorder.SetArtifactCount(kind, n)
	}
}

// publish reports the pass to the event publisher. Failures only log.
func (p *Plugin) publish(ctx context.Context, reason string, pages int, artifacts []llms.Artifact, hash string) {
	paths := make([]string, len(artifacts))
	for i, a := range artifacts {
		paths[i] = a.Path
	}
	err := p.publisher.Publish(ctx, events.ArtifactsRebuilt{
		Reason:     reason,
		Pages:      pages,
		Artifacts:  len(artifacts),
		Paths:      paths,
		SourceHash: hash,
		Timestamp:  time.Now().UTC(),
	})
	if err != nil {
		p.logger.Warn("Failed to publish rebuild event",
			logfields.Component(),
			logfields.Reason(reason),
			logfields.Error(err))
	}
}

// buildEnd writes every artifact below the output directory.
func (p *Plugin) buildEnd(ctx context.Context, cfg *site.Config) error {
	artifacts, err := p.session.GetOrCompute(ctx, ReasonBuild)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := output.Write(ctx, cfg.OutDir, artifacts); err != nil {
		return err
	}
	p.recorder.ObserveStageDuration("write", time.Since(start))

	p.logger.Info("LLM routes built successfully",
		logfields.Component(),
		logfields.Count(len(artifacts)),
		logfields.OutDir(cfg.OutDir))
	return nil
}
