// Package config loads and validates service configuration from a YAML
// file plus AUTHSVC_* environment overrides.
package config

import (
	"fmt"

	"github.com/skillsenselab/authservice/internal/logger"
	"github.com/skillsenselab/authservice/internal/observability"
	"github.com/skillsenselab/authservice/internal/password"
	"github.com/skillsenselab/authservice/internal/server"
	"github.com/skillsenselab/authservice/internal/store"
	"github.com/skillsenselab/authservice/internal/token"
)

// Config is the root configuration for the service.
type Config struct {
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Logger        logger.Config        `yaml:"logger" mapstructure:"logger"`
	Token         token.Config         `yaml:"token" mapstructure:"token"`
	Password      password.Config      `yaml:"password" mapstructure:"password"`
	Database      store.Config         `yaml:"database" mapstructure:"database"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults sets sensible defaults on every section.
func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Logger.ApplyDefaults()
	c.Token.ApplyDefaults()
	c.Password.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Token.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
