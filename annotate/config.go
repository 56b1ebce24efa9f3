package annotate

import (
	"fmt"
	"strings"

	"github.com/kbukum/convokit/detect"
	"github.com/kbukum/convokit/turn"
)

// DefaultVocabulary is used when a request names no format.
const DefaultVocabulary = "chat"

// Config configures an annotation service.
type Config struct {
	Turn       turn.Config      `yaml:"turn" mapstructure:"turn"`
	Detect     detect.Config    `yaml:"detect" mapstructure:"detect"`
	Pipeline   PipelineConfig   `yaml:"pipeline" mapstructure:"pipeline"`
	Vocabulary VocabularyConfig `yaml:"vocabulary" mapstructure:"vocabulary"`
}

// PipelineConfig selects the detector pipeline.
type PipelineConfig struct {
	// File is a YAML pipeline definition. When empty, Detectors run as a chain.
	File string `yaml:"file" mapstructure:"file"`
	// Dirs are searched for pipelines named in includes.
	Dirs []string `yaml:"dirs" mapstructure:"dirs"`
	// Detectors is the chain order used without a pipeline file.
	Detectors []string `yaml:"detectors" mapstructure:"detectors"`
}

// VocabularyConfig configures marker presentation.
type VocabularyConfig struct {
	Default string `yaml:"default" mapstructure:"default"`
	// Files maps extra vocabulary names to YAML files.
	Files map[string]string `yaml:"files" mapstructure:"files"`
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	c.Turn.ApplyDefaults()
	c.Detect.ApplyDefaults()
	if c.Pipeline.File == "" && len(c.Pipeline.Detectors) == 0 {
		c.Pipeline.Detectors = detect.DefaultOrder()
	}
	if c.Vocabulary.Default == "" {
		c.Vocabulary.Default = DefaultVocabulary
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Turn.Validate(); err != nil {
		return err
	}
	if err := c.Detect.Validate(); err != nil {
		return err
	}
	if c.Pipeline.File == "" && len(c.Pipeline.Detectors) == 0 {
		return fmt.Errorf("pipeline.file or pipeline.detectors is required")
	}
	for name, path := range c.Vocabulary.Files {
		if strings.TrimSpace(name) == "" || path == "" {
			return fmt.Errorf("vocabulary.files entries need a name and a path (got: %q=%q)", name, path)
		}
	}
	return nil
}
