package config

import (
	"os"
	"strings"
	"time"
)

// Config holds application configuration. It is loaded once at startup and
// treated as immutable afterwards.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	LoftyBaseURL string
	LoftyAPIKey  string
	LoftyTimeout time.Duration

	AllowedOrigins   []string
	DefaultSource    string
	DefaultTags      []string
	AssigneeID       string
	AssigneeKeyStyle string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		LoftyBaseURL: strings.TrimRight(getEnv("LOFTY_BASE_URL", "https://api.lofty.com/v1.0"), "/"),
		LoftyAPIKey:  strings.TrimSpace(getEnv("LOFTY_API_KEY", "")),
		LoftyTimeout: getEnvAsDuration("LOFTY_TIMEOUT", 10*time.Second),

		AllowedOrigins:   getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		DefaultSource:    getEnv("DEFAULT_LEAD_SOURCE", "Website"),
		DefaultTags:      getEnvAsSlice("DEFAULT_LEAD_TAGS", nil),
		AssigneeID:       strings.TrimSpace(getEnv("LOFTY_ASSIGNEE_ID", "")),
		AssigneeKeyStyle: normalizeKeyStyle(getEnv("LOFTY_ASSIGNEE_KEY_STYLE", "both")),
	}
}

// normalizeKeyStyle validates LOFTY_ASSIGNEE_KEY_STYLE. Unknown values fall
// back to "both", which emits the assignee under both spellings Lofty has
// accepted across API versions.
func normalizeKeyStyle(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "snake":
		return "snake"
	case "camel":
		return "camel"
	default:
		return "both"
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSlice splits a comma-separated environment variable, trimming
// whitespace and dropping empty entries.
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
