// Package site holds the host documentation site configuration the llms.txt
// lifecycle plugs into.
package site

import (
	"context"
	"maps"
	"sync"

	"git.home.luguber.info/inful/llmstxt/internal/llms"
)

// UserConfig is the user-authored part of the site configuration.
type UserConfig struct {
	Description string
	CleanURLs   bool
}

// BuildEndFunc runs once the site build finished.
type BuildEndFunc func(ctx context.Context, cfg *Config) error

// Config is the resolved site configuration.
type Config struct {
	SrcDir     string
	OutDir     string
	UserConfig UserConfig
	Routes     []llms.DynamicRoute

	// BuildEnd is the extension point plugins chain into with ChainBuildEnd.
	BuildEnd BuildEndFunc

	mu          sync.RWMutex
	themeConfig map[string]any
}

func (c *Config) Description() string                { return c.UserConfig.Description }
func (c *Config) DynamicRoutes() []llms.DynamicRoute { return c.Routes }

// ChainBuildEnd installs fn as the build-end hook. The hook registered before
// it, if any, runs first; its error stops the chain.
func (c *Config) ChainBuildEnd(fn BuildEndFunc) {
	prev := c.BuildEnd
	c.BuildEnd = func(ctx context.Context, cfg *Config) error {
		if prev != nil {
			if err := prev(ctx, cfg); err != nil {
				return err
			}
		}
		return fn(ctx, cfg)
	}
}

// RunBuildEnd invokes the build-end chain.
func (c *Config) RunBuildEnd(ctx context.Context) error {
	if c.BuildEnd == nil {
		return nil
	}
	return c.BuildEnd(ctx, c)
}

// SetThemeValue stores a client-visible theme value.
func (c *Config) SetThemeValue(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.themeConfig == nil {
		c.themeConfig = map[string]any{}
	}
	c.themeConfig[key] = value
}

// ThemeValue reads a client-visible theme value.
func (c *Config) ThemeValue(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.themeConfig[key]
	return v, ok
}

// ThemeConfig returns a copy of the theme state.
func (c *Config) ThemeConfig() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.themeConfig)
}
