// Package config loads the tracker's settings. Values are layered, each layer
// overriding the last: built-in defaults, configs/base.yaml, the profile's
// yaml file, then APP_ environment variables. Load validates the result.
//
// Domain packages never import config. RulesConfig.ProjectRules hands the
// form rules to the project domain as plain values.
package config

import (
	"time"

	"github.com/jsamuelsen11/project-tracker/internal/domain/project"
)

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Tracker   TrackerConfig   `koanf:"tracker"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	// ShutdownTimeout bounds how long in-flight requests may drain.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TrackerConfig holds project store and form intake settings.
type TrackerConfig struct {
	// IDAttempts bounds id regeneration when a generated id is already held.
	IDAttempts int         `koanf:"id_attempts"`
	Rules      RulesConfig `koanf:"rules"`
}

// RulesConfig holds the project form rules. A zero bound is not enforced.
type RulesConfig struct {
	TitleMinLength       int `koanf:"title_min_length"`
	TitleMaxLength       int `koanf:"title_max_length"`
	DescriptionMinLength int `koanf:"description_min_length"`
	PeopleMin            int `koanf:"people_min"`
	PeopleMax            int `koanf:"people_max"`
}

// ProjectRules converts the configured form rules to project.Rules.
func (r RulesConfig) ProjectRules() project.Rules {
	return project.Rules{
		TitleMinLength:       r.TitleMinLength,
		TitleMaxLength:       r.TitleMaxLength,
		DescriptionMinLength: r.DescriptionMinLength,
		PeopleMin:            r.PeopleMin,
		PeopleMax:            r.PeopleMax,
	}
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
