package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOFTY_BASE_URL", "")
	t.Setenv("LOFTY_API_KEY", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("DEFAULT_LEAD_SOURCE", "")
	t.Setenv("DEFAULT_LEAD_TAGS", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.LoftyBaseURL != "https://api.lofty.com/v1.0" {
		t.Fatalf("expected default base URL, got %s", cfg.LoftyBaseURL)
	}
	if cfg.LoftyAPIKey != "" {
		t.Fatalf("expected API key empty by default, got %s", cfg.LoftyAPIKey)
	}
	if cfg.LoftyTimeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %s", cfg.LoftyTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard origins by default, got %v", cfg.AllowedOrigins)
	}
	if cfg.DefaultSource != "Website" {
		t.Fatalf("expected default source, got %s", cfg.DefaultSource)
	}
	if cfg.DefaultTags != nil {
		t.Fatalf("expected no default tags, got %v", cfg.DefaultTags)
	}
	if cfg.AssigneeKeyStyle != "both" {
		t.Fatalf("expected both assignee key styles by default, got %s", cfg.AssigneeKeyStyle)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOFTY_BASE_URL", "https://api.example.com/v2/")
	t.Setenv("LOFTY_API_KEY", "secret-key")
	t.Setenv("LOFTY_TIMEOUT", "30s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("DEFAULT_LEAD_SOURCE", "Landing Page")
	t.Setenv("DEFAULT_LEAD_TAGS", "web, buyer")
	t.Setenv("LOFTY_ASSIGNEE_ID", "agent-7")
	t.Setenv("LOFTY_ASSIGNEE_KEY_STYLE", "SNAKE")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.LoftyBaseURL != "https://api.example.com/v2" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.LoftyBaseURL)
	}
	if cfg.LoftyAPIKey != "secret-key" {
		t.Fatalf("expected API key override, got %s", cfg.LoftyAPIKey)
	}
	if cfg.LoftyTimeout != 30*time.Second {
		t.Fatalf("expected timeout override, got %s", cfg.LoftyTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://a.example" || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("expected trimmed origin list, got %v", cfg.AllowedOrigins)
	}
	if len(cfg.DefaultTags) != 2 || cfg.DefaultTags[0] != "web" || cfg.DefaultTags[1] != "buyer" {
		t.Fatalf("expected trimmed tag list, got %v", cfg.DefaultTags)
	}
	if cfg.AssigneeID != "agent-7" {
		t.Fatalf("expected assignee override, got %s", cfg.AssigneeID)
	}
	if cfg.AssigneeKeyStyle != "snake" {
		t.Fatalf("expected snake key style, got %s", cfg.AssigneeKeyStyle)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("LOFTY_TIMEOUT", "soon")
	t.Setenv("LOFTY_ASSIGNEE_KEY_STYLE", "kebab")
	cfg := Load()
	if cfg.LoftyTimeout != 10*time.Second {
		t.Fatalf("expected default timeout for bad value, got %s", cfg.LoftyTimeout)
	}
	if cfg.AssigneeKeyStyle != "both" {
		t.Fatalf("expected both key styles for bad value, got %s", cfg.AssigneeKeyStyle)
	}
}
