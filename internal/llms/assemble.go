package llms

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/llmstxt/internal/frontmatter"
)

// Frontmatter keys derived for every artifact.
const (
	KeyURL     = "URL"
	KeyLLMSURL = "LLMS_URL"
)

// Assembly is the unindexed output of Assemble.
type Assembly struct {
	// Artifacts is the ordered output list: index, per-page mirrors, full-content file.
	Artifacts []Artifact
	// Records holds one entry per page in ascending URL order, whether or not
	// per-page artifacts are emitted. The index TOC links are built from it.
	Records []Artifact
}

// Assemble converts pages, ordered descending by URL, into artifacts.
// The index artifact, when enabled, starts with empty content; SetIndex fills it.
func Assemble(pages []Page, opts Options) Assembly {
	ordered := slices.Clone(pages)
	slices.Reverse(ordered)

	records := make([]Artifact, 0, len(ordered))
	bodies := make([]string, 0, len(ordered))
	for _, page := range ordered {
		rec := pageRecord(page, opts.Hostname)
		records = append(records, rec)
		bodies = append(bodies, rec.Content)
	}

	var artifacts []Artifact
	if opts.LlmsFile.Enabled {
		artifacts = append(artifacts, singleton(IndexPath, "", opts.Hostname))
	}
	if opts.MDFiles {
		artifacts = append(artifacts, records...)
	}
	if opts.LlmsFullFile {
		artifacts = append(artifacts, singleton(FullPath, strings.Join(bodies, "\n\n"), opts.Hostname))
	}

	return Assembly{Artifacts: artifacts, Records: records}
}

func pageRecord(page Page, hostname string) Artifact {
	path := ArtifactPath(page.URL)
	url := JoinURL(hostname, page.URL)
	llmURL := JoinURL(hostname, path)

	fm := frontmatter.NewFields()
	fm.Set(KeyURL, url)
	fm.Set(KeyLLMSURL, llmURL)
	for _, key := range page.Frontmatter.Keys() {
		if key == KeyURL || key == KeyLLMSURL {
			continue
		}
		v, _ := page.Frontmatter.Get(key)
		fm.Set(key, v)
	}

	content := frontmatter.Override(page.Src, fm)
	return Artifact{
		Path:        path,
		URL:         url,
		LLMURL:      llmURL,
		Title:       pageTitle(page.Frontmatter, content),
		Frontmatter: fm,
		Content:     content,
		Excerpt:     page.Excerpt,
	}
}

func pageTitle(fm *frontmatter.Fields, content string) string {
	if title := fm.String("title"); title != "" {
		return title
	}
	if title := TitleLine(content); title != "" {
		return title
	}
	return fm.String("layout")
}

func singleton(path, content, hostname string) Artifact {
	url := JoinURL(hostname, path)
	fm := frontmatter.NewFields()
	fm.Set(KeyURL, url)
	fm.Set(KeyLLMSURL, url)
	return Artifact{
		Path:        path,
		URL:         url,
		LLMURL:      url,
		Title:       TitleLine(content),
		Frontmatter: fm,
		Content:     content,
	}
}

// Find returns the index of the artifact with the given path, or -1.
func Find(artifacts []Artifact, path string) int {
	return slices.IndexFunc(artifacts, func(a Artifact) bool { return a.Path == path })
}
