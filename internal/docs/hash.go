package docs

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"git.home.luguber.info/inful/llmstxt/internal/llms"
)

// ComputeSourceHash returns a deterministic fingerprint of a page set.
// It changes when a page is added, removed, moved or edited.
func ComputeSourceHash(pages []llms.Page) string {
	if len(pages) == 0 {
		h := sha256.Sum256([]byte("empty-page-set"))
		return hex.EncodeToString(h[:])
	}

	sorted := make([]llms.Page, len(pages))
	copy(sorted, pages)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].URL < sorted[j].URL })

	h := sha256.New()
	for _, p := range sorted {
		content := sha256.Sum256([]byte(p.Src))
		h.Write([]byte(p.URL))
		h.Write([]byte{'|'})
		h.Write([]byte(hex.EncodeToString(content[:])))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
