package llms

import (
	"slices"
	"sort"
	"strings"

	"git.home.luguber.info/inful/llmstxt/internal/frontmatter"
)

// SortDescending orders pages by URL, highest first, byte-wise.
func SortDescending(pages []Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].URL > pages[j].URL
	})
}

// ResolveDynamicRoutes materializes one synthetic page per route definition whose
// template page exists. Template pages that were used are dropped from the result.
// The returned slice is a new list sorted descending by URL.
func ResolveDynamicRoutes(pages []Page, routes []DynamicRoute, enabled bool) []Page {
	out := slices.Clone(pages)
	if !enabled || len(routes) == 0 {
		SortDescending(out)
		return out
	}

	var consumed []string
	for _, def := range routes {
		route := MarkdownPathToRoute(def.Route)
		idx := slices.IndexFunc(out, func(p Page) bool {
			return strings.TrimSuffix(p.URL, ".html") == route
		})
		if idx < 0 || out[idx].Src == "" {
			continue
		}

		consumed = append(consumed, out[idx].URL)
		out = append(out, Page{
			URL:         MarkdownPathToRoute(def.Path),
			Src:         expandOrWarn(out[idx].Src, def),
			Frontmatter: frontmatter.NewFields(),
		})
	}

	if len(consumed) > 0 {
		out = slices.DeleteFunc(out, func(p Page) bool {
			return slices.Contains(consumed, p.URL)
		})
	}
	SortDescending(out)
	return out
}
