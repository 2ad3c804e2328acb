package llms

import (
	"context"
	"fmt"

	"github.com/gobwas/glob"
)

// Rule is a declarative transform applied to artifacts whose path matches one of Paths.
// An empty Paths matches every artifact.
type Rule struct {
	Paths            []string
	StripFrontmatter bool
	Prepend          string
	Append           string
	// TOC appends a table of contents in the given mode.
	TOC IndexTOC
}

type compiledRule struct {
	Rule
	globs []glob.Glob
}

func (r compiledRule) matches(path string) bool {
	if len(r.globs) == 0 {
		return true
	}
	for _, g := range r.globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// CompileRules turns rules into a single TransformFunc applying every matching rule in order.
// It returns nil when rules is empty.
func CompileRules(rules []Rule) (TransformFunc, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		cr := compiledRule{Rule: r}
		for _, pattern := range r.Paths {
			g, err := glob.Compile(pattern, '/')
			if err != nil {
				return nil, fmt.Errorf("transform rule %d: invalid path glob %q: %w", i, pattern, err)
			}
			cr.globs = append(cr.globs, g)
		}
		compiled = append(compiled, cr)
	}

	return func(_ context.Context, in TransformInput) (*Artifact, error) {
		page := in.Page
		changed := false
		for _, r := range compiled {
			if !r.matches(page.Path) {
				continue
			}
			changed = true
			if r.StripFrontmatter {
				page.Content = in.Utils.RemoveFrontmatter(page.Content)
			}
			if r.TOC.Enabled() && in.Utils.GetIndexTOC != nil {
				if toc := in.Utils.GetIndexTOC(r.TOC); toc != "" {
					page.Content += "\n\n" + toc
				}
			}
			page.Content = r.Prepend + page.Content + r.Append
		}
		if !changed {
			return nil, nil
		}
		return &page, nil
	}, nil
}
