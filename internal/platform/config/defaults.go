package config

const (
	defaultServerPort = 8080

	defaultIDAttempts           = 8
	defaultTitleMinLength       = 2
	defaultTitleMaxLength       = 30
	defaultDescriptionMinLength = 5
	defaultPeopleMin            = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":             "0.0.0.0",
		"server.port":             defaultServerPort,
		"server.read_timeout":     "5s",
		"server.write_timeout":    "10s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"log.level":  "info",
		"log.format": "json",

		"tracker.id_attempts":                  defaultIDAttempts,
		"tracker.rules.title_min_length":       defaultTitleMinLength,
		"tracker.rules.title_max_length":       defaultTitleMaxLength,
		"tracker.rules.description_min_length": defaultDescriptionMinLength,
		"tracker.rules.people_min":             defaultPeopleMin,
		"tracker.rules.people_max":             0,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "project-tracker",
	}
}
