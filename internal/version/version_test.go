package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString_IncludesAllFields(t *testing.T) {
	old := [3]string{Version, GitCommit, BuildTime}
	t.Cleanup(func() { Version, GitCommit, BuildTime = old[0], old[1], old[2] })

	Version, GitCommit, BuildTime = "v1.2.3", "abc123", "2026-01-01"
	assert.Equal(t, "llmstxt v1.2.3 (commit abc123, built 2026-01-01)", String())
}

func TestDefaults_AreNotEmpty(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, BuildTime)
	assert.NotEmpty(t, GitCommit)
}
