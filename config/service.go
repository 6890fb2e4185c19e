package config

import (
	"github.com/kbukum/sporeplan/errors"
	"github.com/kbukum/sporeplan/logger"
	"github.com/kbukum/sporeplan/validation"
)

// Environments accepted by ServiceConfig.
var Environments = []string{"development", "staging", "production"}

// ServiceConfig contains the configuration fields every sporeplan binary needs.
// Binaries extend this by embedding it in their own config structs.
//
// Example:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Schedule ScheduleConfig `yaml:"schedule" mapstructure:"schedule"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetServiceConfig returns the base ServiceConfig.
// When embedded in a larger config struct, this method is promoted.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies default values to the base configuration.
// Embedding structs call c.ServiceConfig.ApplyDefaults() first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	// Propagate service name into logging so Init() uses the right tag.
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base configuration fields.
// Embedding structs call c.ServiceConfig.Validate() first.
func (c *ServiceConfig) Validate() error {
	v := validation.New().
		Required("name", c.Name).
		OneOf("environment", c.Environment, Environments)
	if c.Environment == "" {
		v.AddError("environment", "is required")
	}
	v.Merge("logging", c.Logging.Validate())
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Validator is implemented by configs that can default and check themselves.
type Validator interface {
	ApplyDefaults()
	Validate() error
}

// Load runs LoadConfig, then applies defaults and validates cfg.
func Load(serviceName string, cfg Validator, opts ...LoaderOption) error {
	if err := LoadConfig(serviceName, cfg, opts...); err != nil {
		return err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return appErr.WithDetail("config", serviceName)
		}
		return err
	}
	return nil
}
