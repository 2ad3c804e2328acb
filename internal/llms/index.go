package llms

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

// TOCConfig controls GetIndex.
type TOCConfig struct {
	Mode        IndexTOC
	MDFiles     bool
	Description string
	// Nested demotes every heading one level. Used once the index already has a title line.
	Nested bool
}

// GetIndex renders the table of contents block for pages. It returns "" when the
// mode is disabled or unknown; failures are logged, never returned.
func GetIndex(pages []Artifact, cfg TOCConfig) string {
	if !cfg.Mode.Enabled() {
		return ""
	}
	res, err := composeIndex(pages, cfg)
	if err != nil {
		slog.Warn("Index composition failed, omitting table of contents",
			logfields.Component(),
			logfields.Error(err))
		return ""
	}
	return res
}

func composeIndex(pages []Artifact, cfg TOCConfig) (string, error) {
	mode := cfg.Mode
	if !cfg.MDFiles && (mode == TOCOnlyLLMs || mode == TOCOnlyLLMsLinks) {
		mode = TOCBoth
	}
	switch mode {
	case TOCBoth, TOCOnlyWeb, TOCOnlyWebLinks, TOCOnlyLLMs, TOCOnlyLLMsLinks:
	default:
		return "", fmt.Errorf("unknown index toc mode %q", string(mode))
	}

	h := "#"
	if cfg.Nested {
		h = "##"
	}

	var web, llm []string
	for _, p := range pages {
		if p.IsText() {
			continue
		}
		web = append(web, fmt.Sprintf("- [%s](%s)", p.Title, p.URL))
		llm = append(llm, fmt.Sprintf("- [%s](%s)", p.Title, p.LLMURL))
	}
	webLinks := strings.Join(web, "\n")
	llmLinks := strings.Join(llm, "\n")

	switch mode {
	case TOCOnlyWebLinks:
		return webLinks, nil
	case TOCOnlyLLMsLinks:
		return llmLinks, nil
	}

	var b strings.Builder
	b.WriteString(h + " Table of contents\n")
	if cfg.Description != "" {
		b.WriteString("\n" + strings.TrimRightFunc(cfg.Description, unicode.IsSpace) + "\n")
	}
	switch mode {
	case TOCOnlyWeb:
		fmt.Fprintf(&b, "\n%s# Web links\n\n%s", h, webLinks)
	case TOCOnlyLLMs:
		fmt.Fprintf(&b, "\n%s# LLMs links\n\n%s", h, llmLinks)
	default:
		fmt.Fprintf(&b, "\n%s# Web links\n\n%s", h, webLinks)
		if cfg.MDFiles {
			fmt.Fprintf(&b, "\n\n%s# LLMs links\n\n%s", h, llmLinks)
		}
	}
	return b.String(), nil
}

// hasIndexTitle reports whether the index artifact in artifacts already carries a title line.
func hasIndexTitle(artifacts []Artifact) bool {
	i := Find(artifacts, IndexPath)
	return i >= 0 && TitleLine(artifacts[i].Content) != ""
}

// SetIndex appends the table of contents built from records to the index artifact
// in place. The index takes its title from the patched content when it has none.
func SetIndex(artifacts []Artifact, records []Artifact, opts Options, description string) {
	i := Find(artifacts, IndexPath)
	if i < 0 {
		return
	}
	index := &artifacts[i]
	toc := GetIndex(records, TOCConfig{
		Mode:        opts.LlmsFile.IndexTOC,
		MDFiles:     opts.MDFiles,
		Description: description,
		Nested:      TitleLine(index.Content) != "",
	})
	index.Content = strings.TrimSpace(index.Content + "\n" + toc)
	if index.Title == "" {
		index.Title = TitleLine(index.Content)
	}
}
