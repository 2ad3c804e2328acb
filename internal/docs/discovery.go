package docs

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/gobwas/glob"

	derrors "git.home.luguber.info/inful/llmstxt/internal/docs/errors"
	"git.home.luguber.info/inful/llmstxt/internal/foundation/errors"
	"git.home.luguber.info/inful/llmstxt/internal/frontmatter"
	"git.home.luguber.info/inful/llmstxt/internal/llms"
	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

// DefaultPattern selects every markdown file below the source root.
const DefaultPattern = "**/*.md"

// alwaysIgnored directories are never walked, whatever the ignore list says.
var alwaysIgnored = map[string]bool{
	"node_modules": true,
	"dist":         true,
}

// LoaderConfig configures page discovery.
type LoaderConfig struct {
	// Pattern is matched against the slash path relative to the root, with a leading "/".
	Pattern string
	// Ignore globs are matched against the relative path, both bare and with a leading "/".
	Ignore    []string
	CleanURLs bool
	// Excerpt renders the text above the first "---" separator of each body to HTML.
	Excerpt bool
}

// Loader turns a markdown source tree into pages.
type Loader struct {
	fs        fs.FS
	pattern   glob.Glob
	ignore    []glob.Glob
	cleanURLs bool
	excerpt   bool
}

// NewLoader compiles the discovery and ignore patterns for fsys.
func NewLoader(fsys fs.FS, cfg LoaderConfig) (*Loader, error) {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, errors.WrapError(fmt.Errorf("%w: %w", derrors.ErrInvalidPattern, err), errors.CategoryConfig, "invalid discovery pattern").
			WithContext("pattern", pattern).
			Build()
	}

	l := &Loader{fs: fsys, pattern: g, cleanURLs: cfg.CleanURLs, excerpt: cfg.Excerpt}
	for _, p := range cfg.Ignore {
		ig, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.WrapError(fmt.Errorf("%w: %w", derrors.ErrInvalidPattern, err), errors.CategoryConfig, "invalid ignore pattern").
				WithContext("pattern", p).
				Build()
		}
		l.ignore = append(l.ignore, ig)
	}
	return l, nil
}

// NewDirLoader is NewLoader over an OS directory.
func NewDirLoader(dir string, cfg LoaderConfig) (*Loader, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("%s is not a directory", dir)
		}
		return nil, errors.WrapError(fmt.Errorf("%w: %w", derrors.ErrSourceDirNotFound, err), errors.CategoryDiscovery, "source directory not found").
			WithContext("dir", dir).
			Fatal().
			Build()
	}
	return NewLoader(os.DirFS(dir), cfg)
}

func (l *Loader) ignored(rel string) bool {
	for _, g := range l.ignore {
		if g.Match(rel) || g.Match("/"+rel) {
			return true
		}
	}
	return false
}

// Load discovers every matching markdown file and returns pages sorted by URL, descending.
// Any read or parse failure aborts the load.
func (l *Loader) Load(ctx context.Context) ([]llms.Page, error) {
	var pages []llms.Page

	walkErr := fs.WalkDir(l.fs, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if p == "." {
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, ".") || alwaysIgnored[name] || l.ignored(p) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !l.pattern.Match("/"+p) || l.ignored(p) {
			return nil
		}

		page, err := l.loadPage(p)
		if err != nil {
			return err
		}
		pages = append(pages, page)
		slog.Debug("Discovered page", logfields.File(p), logfields.URL(page.URL))
		return nil
	})

	if walkErr != nil {
		if errors.IsClassified(walkErr) {
			return nil, walkErr
		}
		return nil, errors.WrapError(fmt.Errorf("%w: %w", derrors.ErrDocsDirWalkFailed, walkErr), errors.CategoryDiscovery, "page discovery failed").
			Fatal().
			Build()
	}

	llms.SortDescending(pages)
	slog.Debug("Total pages discovered", logfields.Count(len(pages)))
	return pages, nil
}

func (l *Loader) loadPage(rel string) (llms.Page, error) {
	src, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return llms.Page{}, errors.WrapError(fmt.Errorf("%w: %w", derrors.ErrFileReadFailed, err), errors.CategoryDiscovery, "failed to read page").
			WithContext("file", rel).
			Fatal().
			Build()
	}

	fields, body, err := frontmatter.Parse(src)
	if err != nil {
		return llms.Page{}, errors.WrapError(fmt.Errorf("%w: %w", derrors.ErrFrontmatterInvalid, err), errors.CategoryDiscovery, "failed to parse frontmatter").
			WithContext("file", rel).
			Fatal().
			Build()
	}

	page := llms.Page{
		URL:         RouteURL(rel, l.cleanURLs),
		Src:         string(src),
		Frontmatter: fields,
	}
	if l.excerpt {
		if page.Excerpt, err = RenderExcerpt(body); err != nil {
			slog.Warn("Failed to render excerpt", logfields.Component(), logfields.File(rel), logfields.Error(err))
		}
	}
	return page, nil
}

// RouteURL maps a source file path relative to the root to its site route:
// "index.md" is "/", "guide/index.md" is "/guide/" and "guide/a.md" is
// "/guide/a" with clean URLs or "/guide/a.html" without.
func RouteURL(rel string, cleanURLs bool) string {
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	stem := strings.TrimSuffix(rel, ".md")

	switch {
	case stem == "index":
		return "/"
	case strings.HasSuffix(stem, "/index"):
		return "/" + strings.TrimSuffix(stem, "index")
	case cleanURLs:
		return "/" + stem
	default:
		return "/" + stem + ".html"
	}
}
