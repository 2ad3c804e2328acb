package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"git.home.luguber.info/inful/llmstxt/internal/config"
)

// PagesCmd implements the 'pages' command.
type PagesCmd struct {
	Src  string `name:"src" help:"Documentation source directory (overrides site.src_dir)"`
	JSON bool   `name:"json" help:"Print JSON instead of a table"`
}

// pageRow is one listed artifact.
type pageRow struct {
	Path   string `json:"path"`
	URL    string `json:"url"`
	LLMURL string `json:"llmUrl"`
	Title  string `json:"title"`

	Excerpt string `json:"excerpt,omitempty"`
}

func (p *PagesCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signalContext()
	defer cancel()

	res, err := loadConfig(root)
	if err != nil {
		return err
	}
	if p.Src != "" {
		res.Site.SrcDir = p.Src
	}
	return listPages(ctx, g.out(), res, p.JSON)
}

func listPages(ctx context.Context, w io.Writer, res *config.Resolved, asJSON bool) error {
	artifacts, err := newPlugin(res).Artifacts(ctx)
	if err != nil {
		return err
	}

	rows := make([]pageRow, len(artifacts))
	for i, a := range artifacts {
		rows[i] = pageRow{Path: a.Path, URL: a.URL, LLMURL: a.LLMURL, Title: a.Title, Excerpt: a.Excerpt}
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PATH\tURL\tTITLE")
	for _, r := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Path, r.URL, r.Title)
	}
	return tw.Flush()
}
