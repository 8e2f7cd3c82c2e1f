package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Tracker.validate(),
		c.Telemetry.validate(),
	)
}

// oneOf reports an error for key unless got is one of allowed.
func oneOf(key, got string, allowed ...string) error {
	if slices.Contains(allowed, got) {
		return nil
	}
	return fmt.Errorf("%s must be one of: %s; got %q", key, strings.Join(allowed, ", "), got)
}

func (s *ServerConfig) validate() error {
	var errs []error
	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	for key, d := range map[string]int64{
		"read_timeout":     int64(s.ReadTimeout),
		"write_timeout":    int64(s.WriteTimeout),
		"shutdown_timeout": int64(s.ShutdownTimeout),
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("server.%s must be positive", key))
		}
	}
	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	return errors.Join(
		oneOf("log.level", l.Level, "debug", "info", "warn", "error"),
		oneOf("log.format", l.Format, "json", "text"),
	)
}

func (tr *TrackerConfig) validate() error {
	var errs []error
	if tr.IDAttempts < 1 {
		errs = append(errs, fmt.Errorf("tracker.id_attempts must be >= 1, got %d", tr.IDAttempts))
	}

	r := tr.Rules
	for key, v := range map[string]int{
		"title_min_length":       r.TitleMinLength,
		"title_max_length":       r.TitleMaxLength,
		"description_min_length": r.DescriptionMinLength,
		"people_min":             r.PeopleMin,
		"people_max":             r.PeopleMax,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("tracker.rules.%s must not be negative, got %d", key, v))
		}
	}
	// A zero maximum leaves the bound unenforced.
	if r.TitleMaxLength > 0 && r.TitleMaxLength < r.TitleMinLength {
		errs = append(errs, fmt.Errorf("tracker.rules.title_max_length must be >= title_min_length, got %d < %d",
			r.TitleMaxLength, r.TitleMinLength))
	}
	if r.PeopleMax > 0 && r.PeopleMax < r.PeopleMin {
		errs = append(errs, fmt.Errorf("tracker.rules.people_max must be >= people_min, got %d < %d",
			r.PeopleMax, r.PeopleMin))
	}
	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}
	err := oneOf("telemetry.exporter", t.Exporter, "stdout", "otlp")
	if t.Exporter == "otlp" && t.Endpoint == "" {
		err = errors.Join(err, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}
	return err
}
