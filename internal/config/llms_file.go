package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LlmsFileConfig is llms_file in either of its forms:
//
//	llms_file: false
//	llms_file: { index_toc: only-web }
type LlmsFileConfig struct {
	Enabled bool
	// IndexTOC is the raw bool or mode name, nil when the mapping omits it.
	IndexTOC any
}

func (l *LlmsFileConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var b bool
		if err := node.Decode(&b); err != nil {
			return fmt.Errorf("llms_file must be a boolean or a mapping: %w", err)
		}
		l.Enabled = b
		l.IndexTOC = b
		return nil
	case yaml.MappingNode:
		var raw struct {
			IndexTOC any `yaml:"index_toc"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		l.Enabled = true
		l.IndexTOC = raw.IndexTOC
		return nil
	default:
		return fmt.Errorf("llms_file must be a boolean or a mapping (line %d)", node.Line)
	}
}

func (l LlmsFileConfig) MarshalYAML() (any, error) {
	if b, ok := l.IndexTOC.(bool); ok && b == l.Enabled {
		return l.Enabled, nil
	}
	if !l.Enabled {
		return false, nil
	}
	return map[string]any{"index_toc": l.IndexTOC}, nil
}
