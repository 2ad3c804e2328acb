package commands

import (
	"context"
	"io"

	"git.home.luguber.info/inful/llmstxt/internal/config"
	"git.home.luguber.info/inful/llmstxt/internal/foundation/errors"
	"git.home.luguber.info/inful/llmstxt/internal/llms"
)

// IndexCmd implements the 'index' command.
type IndexCmd struct {
	Src string `name:"src" help:"Documentation source directory (overrides site.src_dir)"`
}

func (i *IndexCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()

	res, err := loadConfig(root)
	if err != nil {
		return err
	}
	if i.Src != "" {
		res.Site.SrcDir = i.Src
	}
	return printIndex(ctx, g.out(), res)
}

func printIndex(ctx context.Context, w io.Writer, res *config.Resolved) error {
	artifacts, err := newPlugin(res).Artifacts(ctx)
	if err != nil {
		return err
	}
	idx := llms.Find(artifacts, llms.IndexPath)
	if idx < 0 {
		return errors.NotFoundError("llms.txt generation is disabled").
			WithContext("path", llms.IndexPath).
			Build()
	}
	_, err = io.WriteString(w, artifacts[idx].Content)
	return err
}
