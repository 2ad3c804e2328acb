package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/llmstxt/internal/events"
	"git.home.luguber.info/inful/llmstxt/internal/foundation/errors"
	"git.home.luguber.info/inful/llmstxt/internal/llms"
	"git.home.luguber.info/inful/llmstxt/internal/retry"
	"git.home.luguber.info/inful/llmstxt/internal/site"
)

const (
	defaultSrcDir      = "docs"
	defaultAddr        = ":5173"
	defaultMetricsPath = "/metrics"
	defaultNATSTimeout = 5 * time.Second
)

// Resolved is the canonical form of a Config.
type Resolved struct {
	Options llms.Options
	Site    *site.Config
	Excerpt bool

	Addr         string
	PollInterval time.Duration

	LogLevel  LogLevel
	LogFormat LogFormat

	MetricsEnabled bool
	MetricsPath    string

	// Events is used only when Events.URL is set.
	Events      events.NATSConfig
	EventsRetry retry.Policy

	// Warnings lists values that were coerced instead of rejected.
	Warnings []string
}

// Resolve applies defaults, resolves polymorphic options and compiles transform rules.
func (c *Config) Resolve() (*Resolved, error) {
	res := &Resolved{Options: llms.DefaultOptions()}

	if err := c.resolveLLMs(res); err != nil {
		return nil, err
	}
	if err := c.resolveSite(res); err != nil {
		return nil, err
	}
	if err := c.resolveServer(res); err != nil {
		return nil, err
	}
	c.resolveLogging(res)

	res.MetricsEnabled = c.Metrics.Enabled
	res.MetricsPath = c.Metrics.Path
	if res.MetricsPath == "" {
		res.MetricsPath = defaultMetricsPath
	}
	if !strings.HasPrefix(res.MetricsPath, "/") {
		res.MetricsPath = "/" + res.MetricsPath
	}

	return res, c.resolveEvents(res)
}

func (c *Config) resolveLLMs(res *Resolved) error {
	opts := &res.Options
	l := c.LLMs

	if strings.TrimSpace(l.Hostname) != "" {
		opts.Hostname = strings.TrimSpace(l.Hostname)
	}
	opts.Ignore = append([]string(nil), l.Ignore...)
	if l.LlmsFullFile != nil {
		opts.LlmsFullFile = *l.LlmsFullFile
	}
	if l.MDFiles != nil {
		opts.MDFiles = *l.MDFiles
	}
	if l.DynamicRoutes != nil {
		opts.DynamicRoutes = *l.DynamicRoutes
	}
	if l.Watch != nil {
		opts.Watch = *l.Watch
	}

	if l.LlmsFile != nil {
		opts.LlmsFile.Enabled = l.LlmsFile.Enabled
		mode, err := llms.ParseIndexTOC(l.LlmsFile.IndexTOC)
		if err != nil {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("unknown llms.llms_file.index_toc '%v', defaulting to %s", l.LlmsFile.IndexTOC, llms.TOCBoth))
			mode = llms.TOCBoth
		}
		opts.LlmsFile.IndexTOC = mode
	}

	rules := make([]llms.Rule, 0, len(l.Transforms))
	for i, t := range l.Transforms {
		mode, err := llms.ParseIndexTOC(t.TOC)
		if err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "invalid transform rule").
				WithContext("index", i).
				Fatal().
				Build()
		}
		rules = append(rules, llms.Rule{
			Paths:            t.Paths,
			StripFrontmatter: t.StripFrontmatter,
			Prepend:          t.Prepend,
			Append:           t.Append,
			TOC:              mode,
		})
	}
	fn, err := llms.CompileRules(rules)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid transform rule").Fatal().Build()
	}
	opts.Transform = fn
	return nil
}

func (c *Config) resolveSite(res *Resolved) error {
	s := c.Site
	src := s.SrcDir
	if src == "" {
		src = defaultSrcDir
	}
	out := s.OutDir
	if out == "" {
		out = filepath.Join(src, ".vitepress", "dist")
	}

	routes := append([]llms.DynamicRoute(nil), s.DynamicRoutes...)
	if s.DynamicRoutesFile != "" {
		fromFile, err := LoadDynamicRoutes(s.DynamicRoutesFile)
		if err != nil {
			return err
		}
		routes = append(routes, fromFile...)
	}

	res.Excerpt = s.Excerpt
	res.Site = &site.Config{
		SrcDir: src,
		OutDir: out,
		UserConfig: site.UserConfig{
			Description: s.Description,
			CleanURLs:   s.CleanURLs,
		},
		Routes: routes,
	}
	return nil
}

// LoadDynamicRoutes reads a YAML list of dynamic routes. The file is not env-expanded;
// route content is kept exactly as written.
func LoadDynamicRoutes(path string) ([]llms.DynamicRoute, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read dynamic routes file").
			WithContext("path", path).
			Fatal().
			Build()
	}
	var routes []llms.DynamicRoute
	if err := yaml.Unmarshal(data, &routes); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse dynamic routes file").
			WithContext("path", path).
			Fatal().
			Build()
	}
	return routes, nil
}

func (c *Config) resolveServer(res *Resolved) error {
	res.Addr = c.Server.Addr
	if res.Addr == "" {
		res.Addr = defaultAddr
	}
	if c.Server.PollInterval == "" {
		return nil
	}
	d, err := time.ParseDuration(c.Server.PollInterval)
	if err != nil || d <= 0 {
		if err == nil {
			err = fmt.Errorf("must be positive, got %s", d)
		}
		return errors.WrapError(err, errors.CategoryConfig, "invalid server.poll_interval").
			WithContext("value", c.Server.PollInterval).
			Fatal().
			Build()
	}
	res.PollInterval = d
	return nil
}

func (c *Config) resolveLogging(res *Resolved) {
	var w string
	res.LogLevel, w = logLevelNormalizer.Coerce("logging.level", c.Logging.Level)
	if w != "" {
		res.Warnings = append(res.Warnings, w)
	}
	res.LogFormat, w = logFormatNormalizer.Coerce("logging.format", c.Logging.Format)
	if w != "" {
		res.Warnings = append(res.Warnings, w)
	}
}

func (c *Config) resolveEvents(res *Resolved) error {
	e := c.Events
	res.Events = events.NATSConfig{
		URL:       strings.TrimSpace(e.NATSURL),
		Subject:   e.Subject,
		JetStream: e.JetStream,
		Timeout:   defaultNATSTimeout,
	}
	if res.Events.Subject == "" {
		res.Events.Subject = events.DefaultSubject
	}
	if e.Timeout != "" {
		d, err := parseDuration("events.timeout", e.Timeout)
		if err != nil {
			return err
		}
		res.Events.Timeout = d
	}

	res.EventsRetry = retry.DefaultPolicy()
	if e.Retry == nil {
		return nil
	}
	r := e.Retry
	var mode retry.BackoffMode
	if r.Backoff != "" {
		m, err := retry.ParseBackoffMode(r.Backoff)
		if err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "invalid events.retry.backoff").Fatal().Build()
		}
		mode = m
	}
	var initial, maxDelay time.Duration
	var err error
	if r.Initial != "" {
		if initial, err = parseDuration("events.retry.initial", r.Initial); err != nil {
			return err
		}
	}
	if r.Max != "" {
		if maxDelay, err = parseDuration("events.retry.max", r.Max); err != nil {
			return err
		}
	}
	maxRetries := -1
	if r.MaxRetries != nil {
		if *r.MaxRetries < 0 {
			return errors.ConfigError("events.retry.max_retries cannot be negative").
				WithContext("value", *r.MaxRetries).
				Fatal().
				Build()
		}
		maxRetries = *r.MaxRetries
	}
	res.EventsRetry = retry.NewPolicy(mode, initial, maxDelay, maxRetries)
	return nil
}

func parseDuration(field, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryConfig, "invalid "+field).
			WithContext("value", raw).
			Fatal().
			Build()
	}
	return d, nil
}
