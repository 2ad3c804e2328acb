// Package llms assembles llms.txt artifacts from loaded markdown pages.
//
// The pipeline is pure: pages and options go in, an ordered artifact list comes
// out. Dynamic routes are materialized first, then every page is rewritten with
// absolute URL frontmatter, the index table of contents is patched in and the
// optional transform hook gets the final word.
package llms

import (
	"git.home.luguber.info/inful/llmstxt/internal/frontmatter"
)

// Fixed artifact paths.
const (
	IndexPath = "/llms.txt"
	FullPath  = "/llms-full.txt"
)

// Page is one discovered markdown document.
type Page struct {
	// URL is the site relative route, possibly ending in .html.
	URL         string
	Src         string
	Frontmatter *frontmatter.Fields
	Excerpt     string
}

// DynamicRoute materializes a page at Path from the template page at Route.
type DynamicRoute struct {
	Route   string         `yaml:"route" json:"route"`
	Path    string         `yaml:"path" json:"path"`
	Params  map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
	Content string         `yaml:"content,omitempty" json:"content,omitempty"`
}

// Artifact is one emitted output unit: the index, a per-page mirror or the full-content file.
type Artifact struct {
	Path        string              `json:"path"`
	URL         string              `json:"url"`
	LLMURL      string              `json:"llmUrl"`
	Title       string              `json:"title"`
	Frontmatter *frontmatter.Fields `json:"frontmatter"`
	Content     string              `json:"content"`
	// Excerpt is the page's rendered HTML excerpt, when the page source produced one.
	Excerpt string `json:"excerpt,omitempty"`
}

// IsText reports whether the artifact is one of the .txt singletons.
func (a Artifact) IsText() bool {
	return len(a.Path) >= 4 && a.Path[len(a.Path)-4:] == ".txt"
}

// Host is the read-only view of the site configuration the pipeline needs.
type Host interface {
	Description() string
	DynamicRoutes() []DynamicRoute
}

// StaticHost is a Host backed by plain values.
type StaticHost struct {
	SiteDescription string
	Routes          []DynamicRoute
}

func (h StaticHost) Description() string           { return h.SiteDescription }
func (h StaticHost) DynamicRoutes() []DynamicRoute { return h.Routes }

// LlmsFile is the canonical shape of the llms_file option.
type LlmsFile struct {
	Enabled  bool
	IndexTOC IndexTOC
}

// Options configures one pipeline run. Use DefaultOptions as the starting point.
type Options struct {
	Hostname      string
	Ignore        []string
	LlmsFile      LlmsFile
	LlmsFullFile  bool
	MDFiles       bool
	DynamicRoutes bool
	Watch         bool
	Transform     TransformFunc
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Hostname:      "/",
		LlmsFile:      LlmsFile{Enabled: true, IndexTOC: TOCBoth},
		LlmsFullFile:  true,
		MDFiles:       true,
		DynamicRoutes: true,
	}
}
