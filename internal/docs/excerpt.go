package docs

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
)

var excerptSeparator = regexp.MustCompile(`(?m)^---\r?$`)

var excerptRenderer = goldmark.New()

// RenderExcerpt renders the body text above the first "---" line to HTML.
// A body without a separator has no excerpt.
func RenderExcerpt(body []byte) (string, error) {
	loc := excerptSeparator.FindIndex(body)
	if loc == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := excerptRenderer.Convert(body[:loc[0]], &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
