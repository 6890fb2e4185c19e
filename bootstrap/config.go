package bootstrap

import (
	"github.com/kbukum/sporeplan/config"
)

// Config is what NewApp needs from an application config: service metadata
// for the logger, plus the defaulting and checks that config.Load also runs.
// Embedding config.ServiceConfig provides all three; configs with sections of
// their own override ApplyDefaults and Validate and call the embedded ones
// first.
type Config interface {
	config.Validator
	GetServiceConfig() *config.ServiceConfig
}
