package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Port != 4361 {
		t.Errorf("expected default port 4361, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("expected default host localhost, got %s", cfg.Server.Host)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/social-portal.toml")
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadFromFiles_LayeredOverride(t *testing.T) {
	dir := t.TempDir()

	base := filepath.Join(dir, "base.toml")
	if err := os.WriteFile(base, []byte(`
[server]
port = 5000
host = "0.0.0.0"

[providers.linkedin]
client_id = "base-id"
client_secret = "base-secret"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	override := filepath.Join(dir, "override.toml")
	if err := os.WriteFile(override, []byte(`
[server]
port = 6000

[providers.linkedin]
client_id = "override-id"
`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(base, override)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Port != 6000 {
		t.Errorf("expected later file to win port, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected host from base file, got %s", cfg.Server.Host)
	}

	li, ok := cfg.Provider("linkedin")
	if !ok {
		t.Fatal("expected linkedin provider section")
	}
	if li.ClientID != "override-id" {
		t.Errorf("expected override client_id, got %s", li.ClientID)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SOCIAL_SERVER_PORT", "7171")
	t.Setenv("SOCIAL_TWITTER_CLIENT_ID", "env-twitter-id")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Port != 7171 {
		t.Errorf("expected env port override 7171, got %d", cfg.Server.Port)
	}
	tw, _ := cfg.Provider("twitter")
	if tw.ClientID != "env-twitter-id" {
		t.Errorf("expected env twitter client_id, got %q", tw.ClientID)
	}
}

func TestValidate(t *testing.T) {
	cfg := NewDefaultConfig()
	if issues := cfg.Validate(); len(issues) != 0 {
		t.Errorf("expected no issues for defaults, got %v", issues)
	}

	cfg.Server.Port = 0
	cfg.Providers["facebook"] = ProviderConfig{ClientSecret: "secret-without-id"}
	issues := cfg.Validate()
	if len(issues) != 2 {
		t.Errorf("expected 2 issues, got %d: %v", len(issues), issues)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()
	ApplyFlagOverrides(cfg, 9999, "example.com")

	if cfg.Server.Port != 9999 {
		t.Errorf("expected flag port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "example.com" {
		t.Errorf("expected flag host, got %s", cfg.Server.Host)
	}
}
