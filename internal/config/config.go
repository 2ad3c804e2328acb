// Package config loads the llmstxt YAML configuration and resolves it into
// pipeline options, the site configuration and the serve settings.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/llmstxt/internal/foundation/errors"
	"git.home.luguber.info/inful/llmstxt/internal/llms"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "llmstxt.yaml"

// Config is the raw file shape. Pointer booleans distinguish omitted keys from false.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	LLMs    LLMsConfig    `yaml:"llms"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
	Events  EventsConfig  `yaml:"events,omitempty"`
}

// SiteConfig describes the documentation site.
type SiteConfig struct {
	SrcDir            string              `yaml:"src_dir,omitempty"`
	OutDir            string              `yaml:"out_dir,omitempty"`
	Description       string              `yaml:"description,omitempty"`
	CleanURLs         bool                `yaml:"clean_urls,omitempty"`
	Excerpt           bool                `yaml:"excerpt,omitempty"`
	DynamicRoutes     []llms.DynamicRoute `yaml:"dynamic_routes,omitempty"`
	DynamicRoutesFile string              `yaml:"dynamic_routes_file,omitempty"`
}

// LLMsConfig holds the artifact options.
type LLMsConfig struct {
	Hostname      string          `yaml:"hostname,omitempty"`
	Ignore        []string        `yaml:"ignore,omitempty"`
	LlmsFile      *LlmsFileConfig `yaml:"llms_file,omitempty"`
	LlmsFullFile  *bool           `yaml:"llms_full_file,omitempty"`
	MDFiles       *bool           `yaml:"md_files,omitempty"`
	DynamicRoutes *bool           `yaml:"dynamic_routes,omitempty"`
	Watch         *bool           `yaml:"watch,omitempty"`
	Transforms    []TransformRule `yaml:"transforms,omitempty"`
}

// TransformRule is the file form of llms.Rule. TOC accepts a bool or a mode name.
type TransformRule struct {
	Paths            []string `yaml:"paths"`
	StripFrontmatter bool     `yaml:"strip_frontmatter,omitempty"`
	Prepend          string   `yaml:"prepend,omitempty"`
	Append           string   `yaml:"append,omitempty"`
	TOC              any      `yaml:"toc,omitempty"`
}

type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
	// PollInterval enables periodic reassembly, e.g. "30s". Empty disables polling.
	PollInterval string `yaml:"poll_interval,omitempty"`
}

type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// EventsConfig enables NATS rebuild notifications when NATSURL is set.
type EventsConfig struct {
	NATSURL   string `yaml:"nats_url,omitempty"`
	Subject   string `yaml:"subject,omitempty"`
	JetStream bool   `yaml:"jetstream,omitempty"`
	Timeout   string `yaml:"timeout,omitempty"`

	Retry *RetryConfig `yaml:"retry,omitempty"`
}

// RetryConfig controls publish retries. Omitted fields keep the defaults.
type RetryConfig struct {
	Backoff    string `yaml:"backoff,omitempty"`
	Initial    string `yaml:"initial,omitempty"`
	Max        string `yaml:"max,omitempty"`
	MaxRetries *int   `yaml:"max_retries,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{}
}

// Load reads configPath after loading .env files, expanding ${VAR} references first.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.NotFoundError("configuration file not found").
			WithContext("path", configPath).
			Build()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Fatal().
			Build()
	}
	return Parse(data)
}

// Parse decodes configuration bytes after expanding ${VAR} references.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			Build()
	}
	return &cfg, nil
}
