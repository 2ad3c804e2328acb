package frontmatter

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// Style captures formatting details needed for stable rewriting.
//
// It intentionally focuses on newline/trailing newline shape and does not
// attempt to preserve original YAML formatting.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// leadingBlock matches a leading `---` delimited block plus every newline that follows it.
var leadingBlock = regexp.MustCompile(`(?s)^---\r?\n(?:.*?\r?\n)?---(?:\r?\n|$)(?:\r?\n)*`)

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is false
// and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)

	nl := style.Newline
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, style, nil
	}

	frontmatterStart := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(content[frontmatterStart:], closeLine) {
		bodyStart := frontmatterStart + len(closeLine)
		return []byte{}, content[bodyStart:], true, style, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[frontmatterStart:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line has no trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) && len(content) >= frontmatterStart+len(nl)+3 {
			end := len(content) - len(nl) - 3
			return content[frontmatterStart : end+len(nl)], []byte{}, true, style, nil
		}
		return nil, nil, false, style, ErrMissingClosingDelimiter
	}

	frontmatterEnd := frontmatterStart + idx + len(nl)
	bodyStart := frontmatterStart + idx + len(closeSeq)
	return content[frontmatterStart:frontmatterEnd], content[bodyStart:], true, style, nil
}

// Parse splits content and decodes its frontmatter into ordered Fields.
// Documents without frontmatter yield empty Fields and the full body.
func Parse(content []byte) (*Fields, []byte, error) {
	raw, body, had, _, err := Split(content)
	if err != nil {
		return nil, nil, err
	}
	if !had {
		return NewFields(), body, nil
	}
	fields, err := ParseFields(raw)
	if err != nil {
		return nil, nil, err
	}
	return fields, body, nil
}

// Override replaces any leading frontmatter block of markdown with one
// serialized from fields. Without an existing block the new one is prepended.
// Leading whitespace of the remaining body is dropped.
//
// Override is idempotent for a given fields value.
func Override(markdown string, fields *Fields) string {
	block := "---\n" + Serialize(fields) + "\n---\n\n"
	return block + strings.TrimLeftFunc(Remove(markdown), unicode.IsSpace)
}

// Remove strips a leading frontmatter block (and the blank lines after it).
// Markdown without a leading block is returned unchanged.
func Remove(markdown string) string {
	loc := leadingBlock.FindStringIndex(markdown)
	if loc == nil {
		return markdown
	}
	return markdown[loc[1]:]
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			newline = "\n"
			break
		}
	}

	hasTrailingNewline := len(content) > 0 && (content[len(content)-1] == '\n')

	return Style{
		Newline:            newline,
		HasTrailingNewline: hasTrailingNewline,
	}
}
