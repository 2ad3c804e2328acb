package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/llmstxt/internal/config"
	"git.home.luguber.info/inful/llmstxt/internal/lifecycle"
	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Src      string `name:"src" help:"Documentation source directory (overrides site.src_dir)"`
	Out      string `short:"o" name:"out" help:"Output directory (overrides site.out_dir)"`
	Hostname string `name:"hostname" help:"Hostname prefixed to generated links"`
}

// apply copies flag overrides onto the resolved configuration.
func (b *BuildCmd) apply(res *config.Resolved) {
	if b.Src != "" {
		res.Site.SrcDir = b.Src
		if b.Out == "" {
			res.Site.OutDir = filepath.Join(b.Src, ".vitepress", "dist")
		}
	}
	if b.Out != "" {
		res.Site.OutDir = b.Out
	}
	if b.Hostname != "" {
		res.Options.Hostname = b.Hostname
	}
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()

	res, err := loadConfig(root)
	if err != nil {
		return err
	}
	b.apply(res)

	pub := newPublisher(res)
	defer func() { _ = pub.Close() }()

	start := time.Now()
	plugin := newPlugin(res, lifecycle.WithPublisher(pub))
	if err := plugin.BuildStart(ctx); err != nil {
		return err
	}
	if err := res.Site.RunBuildEnd(ctx); err != nil {
		return err
	}

	artifacts, err := plugin.Artifacts(ctx)
	if err != nil {
		return err
	}
	slog.Debug("Build finished",
		logfields.OutDir(res.Site.OutDir),
		logfields.Count(len(artifacts)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))

	_, err = fmt.Fprintf(g.out(), "Wrote %d artifacts to %s\n", len(artifacts), res.Site.OutDir)
	return err
}
