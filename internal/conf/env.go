package conf

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration overrides from environment variables.
type EnvLoader struct {
	prefix  string            // variable prefix, e.g. "GGREP_"
	mapping map[string]string // env var -> config path
}

// NewEnvLoader creates a loader for the given prefix with the default
// mappings. The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
	}
}

// defaultEnvMapping returns the recognized environment variables.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":   "log.level",
		prefix + "FORMAT":      "output.format",
		prefix + "COLOR":       "output.color",
		prefix + "VALIDATE":    "search.validate",
		prefix + "FILTER":      "hooks.filter",
		prefix + "DEBOUNCE_MS": "watch.debounce_ms",
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// Load reads the mapped environment variables into a configuration map.
// Empty string values count as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for env, path := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			setByPath(config, path, parseValue(val))
		}
	}

	return config, nil
}

// setByPath sets a dotted path like "output.format" in a nested map,
// creating intermediate maps as needed.
func setByPath(config map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := config

	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = value
			return
		}

		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
}

// parseValue converts an environment string into a bool, int, or string.
func parseValue(s string) any {
	lower := strings.ToLower(s)
	if lower == "true" || lower == "yes" || lower == "on" {
		return true
	}
	if lower == "false" || lower == "no" || lower == "off" {
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	return s
}
