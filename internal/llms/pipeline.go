package llms

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/llmstxt/internal/frontmatter"
	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

// Build runs the whole pipeline over pages loaded by the page source:
// dynamic routes, assembly, index patching and the transform hook.
func Build(ctx context.Context, pages []Page, host Host, opts Options) ([]Artifact, error) {
	if host == nil {
		host = StaticHost{}
	}
	start := time.Now()

	resolved := ResolveDynamicRoutes(pages, host.DynamicRoutes(), opts.DynamicRoutes)
	asm := Assemble(resolved, opts)
	SetIndex(asm.Artifacts, asm.Records, opts, host.Description())

	artifacts := asm.Artifacts
	// With per-page artifacts emitted, the TOC follows the live list so
	// replacements made by earlier transform calls show up in it.
	tocSource := func() []Artifact {
		if opts.MDFiles {
			return artifacts
		}
		return asm.Records
	}
	utils := TransformUtils{
		GetIndexTOC: func(mode IndexTOC) string {
			return GetIndex(tocSource(), TOCConfig{
				Mode:        mode,
				MDFiles:     opts.MDFiles,
				Description: host.Description(),
				Nested:      hasIndexTitle(artifacts),
			})
		},
		RemoveFrontmatter: frontmatter.Remove,
	}

	out, err := RunTransform(ctx, artifacts, opts.Transform, host, utils)
	if err != nil {
		return nil, err
	}

	slog.Debug("Assembled llms artifacts",
		logfields.Count(len(out)),
		slog.Int("pages", len(resolved)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return out, nil
}
