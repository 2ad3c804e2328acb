package llms

import (
	"fmt"
	"strconv"

	"git.home.luguber.info/inful/llmstxt/internal/foundation/normalization"
)

// IndexTOC selects which link lists the index table of contents renders.
type IndexTOC string

const (
	TOCNone          IndexTOC = ""
	TOCBoth          IndexTOC = "true"
	TOCOnlyLLMs      IndexTOC = "only-llms"
	TOCOnlyLLMsLinks IndexTOC = "only-llms-links"
	TOCOnlyWeb       IndexTOC = "only-web"
	TOCOnlyWebLinks  IndexTOC = "only-web-links"
)

var tocNormalizer = normalization.New("index_toc", map[string]IndexTOC{
	"true":            TOCBoth,
	"false":           TOCNone,
	"only-llms":       TOCOnlyLLMs,
	"only-llms-links": TOCOnlyLLMsLinks,
	"only-web":        TOCOnlyWeb,
	"only-web-links":  TOCOnlyWebLinks,
}, TOCNone)

// Enabled reports whether a table of contents is rendered at all.
func (t IndexTOC) Enabled() bool { return t != TOCNone }

// ParseIndexTOC accepts a bool or one of the mode names.
func ParseIndexTOC(raw any) (IndexTOC, error) {
	switch v := raw.(type) {
	case nil:
		return TOCNone, nil
	case bool:
		if v {
			return TOCBoth, nil
		}
		return TOCNone, nil
	case IndexTOC:
		return tocNormalizer.Parse(string(v))
	case string:
		return tocNormalizer.Parse(v)
	default:
		return TOCNone, fmt.Errorf("invalid index_toc: unsupported type %T", raw)
	}
}

// MarshalYAML writes the boolean modes back as booleans.
func (t IndexTOC) MarshalYAML() (any, error) {
	switch t {
	case TOCNone:
		return false, nil
	case TOCBoth:
		return true, nil
	default:
		return string(t), nil
	}
}

func (t IndexTOC) String() string {
	if t == TOCNone {
		return strconv.FormatBool(false)
	}
	return string(t)
}
