package config

import (
	"fmt"

	"github.com/kbukum/convokit/annotate"
	"github.com/kbukum/convokit/server"
)

// ServiceName is the default service name and config search key.
const ServiceName = "convokit"

// Config is the convokit application configuration. The annotation
// sections (turn, detect, pipeline, vocabulary) sit at the top level.
type Config struct {
	ServiceConfig   `yaml:",inline" mapstructure:",squash"`
	annotate.Config `yaml:",inline" mapstructure:",squash"`
	Server          server.Config `yaml:"server" mapstructure:"server"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Config.ApplyDefaults()
	c.Server.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Config.Validate(); err != nil {
		return fmt.Errorf("config.annotate: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	return nil
}

// Load reads the application configuration, applies defaults and validates it.
func Load(opts ...LoaderOption) (*Config, error) {
	var cfg Config
	if err := LoadConfig(ServiceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
