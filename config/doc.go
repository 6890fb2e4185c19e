// Package config loads sporeplan configuration from a YAML file, a .env file
// and the environment.
//
// It uses Viper for file parsing and unmarshaling and godotenv for .env
// files. Environment variables override file values; with an env prefix,
// SPOREPLAN_SCHEDULE_POLICY maps to schedule.policy.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.Load("sporeplan", &cfg, config.WithEnvPrefix("SPOREPLAN"))
package config
