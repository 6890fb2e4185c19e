package main

import (
	"time"

	"github.com/kbukum/sporeplan/config"
	"github.com/kbukum/sporeplan/observability"
	"github.com/kbukum/sporeplan/planner"
	"github.com/kbukum/sporeplan/schedule"
	"github.com/kbukum/sporeplan/validation"
)

const serviceName = "sporeplan"

// AppConfig is the sporeplan configuration file.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Schedule ScheduleConfig             `yaml:"schedule" mapstructure:"schedule"`
	Recipes  RecipesConfig              `yaml:"recipes" mapstructure:"recipes"`
	Tracing  observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics  observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// ScheduleConfig controls projection.
type ScheduleConfig struct {
	// Policy is linear or critical_path.
	Policy string `yaml:"policy" mapstructure:"policy"`
	// StartOffset is subtracted from now when no start is given.
	StartOffset time.Duration `yaml:"start_offset" mapstructure:"start_offset"`
}

// RecipesConfig controls where recipes are found.
type RecipesConfig struct {
	// Dirs are searched in order before the builtin recipes.
	Dirs []string `yaml:"dirs" mapstructure:"dirs"`
	// Builtin includes the recipes shipped with sporeplan.
	Builtin bool `yaml:"builtin" mapstructure:"builtin"`
}

func configDefaults() map[string]any {
	return map[string]any{
		"name":                  serviceName,
		"logging.level":         "warn",
		"schedule.policy":       schedule.PolicyLinear,
		"schedule.start_offset": planner.DefaultStartOffset.String(),
		"recipes.builtin":       true,
		"tracing.endpoint":      "localhost:4318",
		"tracing.insecure":      true,
		"tracing.sample_rate":   1.0,
		"metrics.endpoint":      "localhost:4318",
		"metrics.insecure":      true,
		"metrics.interval":      "15s",
	}
}

// ApplyDefaults fills service metadata into the telemetry configs.
func (c *AppConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	for _, svc := range []*string{&c.Tracing.ServiceName, &c.Metrics.ServiceName} {
		if *svc == "" {
			*svc = c.Name
		}
	}
	for _, ver := range []*string{&c.Tracing.ServiceVersion, &c.Metrics.ServiceVersion} {
		if *ver == "" {
			*ver = c.Version
		}
	}
	for _, env := range []*string{&c.Tracing.Environment, &c.Metrics.Environment} {
		if *env == "" {
			*env = c.Environment
		}
	}
}

// Validate checks the service fields, then the schedule and telemetry settings.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}

	v := validation.New().
		OneOf("schedule.policy", c.Schedule.Policy, []string{schedule.PolicyLinear, schedule.PolicyCriticalPath}).
		Check(c.Schedule.StartOffset >= 0, "schedule.start_offset", "must not be negative").
		Check(c.Tracing.SampleRate >= 0 && c.Tracing.SampleRate <= 1, "tracing.sample_rate", "must be between 0 and 1")
	if c.Tracing.Enabled {
		v.Required("tracing.endpoint", c.Tracing.Endpoint)
	}
	if c.Metrics.Enabled {
		v.Required("metrics.endpoint", c.Metrics.Endpoint)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
