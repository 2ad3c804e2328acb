package config

import (
	"os"

	"git.home.luguber.info/inful/llmstxt/internal/foundation/errors"
)

const exampleConfig = `# llmstxt configuration. ${VAR} references are expanded from the environment and .env files.
site:
  src_dir: docs
  out_dir: docs/.vitepress/dist
  description: Documentation for my project
  clean_urls: true

llms:
  hostname: https://docs.example.com
  ignore:
    - drafts/**
  llms_file:
    index_toc: only-web
  llms_full_file: true
  md_files: true
  dynamic_routes: true
  watch: true
  transforms:
    - paths: ["/llms.txt"]
      append: "\n\nGenerated by llmstxt."

server:
  addr: ":5173"
  # poll_interval: 30s

logging:
  level: info
  format: text

metrics:
  enabled: false
  path: /metrics

events:
  nats_url: ${LLMSTXT_NATS_URL}
`

// Example returns the configuration file written by Init.
func Example() []byte {
	return []byte(exampleConfig)
}

// Init writes the example configuration to configPath. An existing file is only replaced with force.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	if err := os.WriteFile(configPath, Example(), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Fatal().
			Build()
	}
	return nil
}
