package site

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/llmstxt/internal/llms"
)

var _ llms.Host = (*Config)(nil)

func TestChainBuildEnd_CallsPreviousFirst(t *testing.T) {
	var calls []string
	cfg := &Config{OutDir: "dist"}
	cfg.BuildEnd = func(context.Context, *Config) error {
		calls = append(calls, "theme")
		return nil
	}
	cfg.ChainBuildEnd(func(_ context.Context, c *Config) error {
		calls = append(calls, "llms:"+c.OutDir)
		return nil
	})
	cfg.ChainBuildEnd(func(context.Context, *Config) error {
		calls = append(calls, "sitemap")
		return nil
	})

	require.NoError(t, cfg.RunBuildEnd(context.Background()))
	assert.Equal(t, []string{"theme", "llms:dist", "sitemap"}, calls)
}

func TestChainBuildEnd_PreviousErrorStops(t *testing.T) {
	boom := errors.New("boom")
	cfg := &Config{BuildEnd: func(context.Context, *Config) error { return boom }}
	called := false
	cfg.ChainBuildEnd(func(context.Context, *Config) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, cfg.RunBuildEnd(context.Background()), boom)
	assert.False(t, called)
}

func TestRunBuildEnd_NoHook(t *testing.T) {
	assert.NoError(t, (&Config{}).RunBuildEnd(context.Background()))
}

func TestThemeValues(t *testing.T) {
	cfg := &Config{}
	_, ok := cfg.ThemeValue("llmstxt")
	assert.False(t, ok)

	cfg.SetThemeValue("llmstxt", 1)
	v, ok := cfg.ThemeValue("llmstxt")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	snapshot := cfg.ThemeConfig()
	snapshot["llmstxt"] = 2
	v, _ = cfg.ThemeValue("llmstxt")
	assert.Equal(t, 1, v)
}
