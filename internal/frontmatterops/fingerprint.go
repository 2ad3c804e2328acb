// Package frontmatterops derives content fingerprints from rendered markdown artifacts.
package frontmatterops

import (
	"git.home.luguber.info/inful/llmstxt/internal/frontmatter"
	"github.com/inful/mdfp"
)

// ComputeFingerprint returns the canonical fingerprint of a markdown document.
//
// The frontmatter is re-serialized in canonical form without the fingerprint
// field itself, so equivalent documents hash the same. Documents whose
// frontmatter cannot be parsed are hashed as plain bodies.
func ComputeFingerprint(content string) string {
	fields, body, err := frontmatter.Parse([]byte(content))
	if err != nil {
		return mdfp.CalculateFingerprintFromParts("", content)
	}
	if _, ok := fields.Get(mdfp.FingerprintField); ok {
		fields = fields.Clone()
		fields.Delete(mdfp.FingerprintField)
	}
	return mdfp.CalculateFingerprintFromParts(frontmatter.Serialize(fields), string(body))
}

// ETag formats a fingerprint as a strong HTTP entity tag.
func ETag(content string) string {
	return `"` + ComputeFingerprint(content) + `"`
}
