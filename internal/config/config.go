package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig              `toml:"server"`
	Providers map[string]ProviderConfig `toml:"providers"`
	AI        AIConfig                  `toml:"ai"`
	Logging   LoggingConfig             `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// ProviderConfig holds OAuth client credentials for one social platform.
// Keys of the providers map are "linkedin", "twitter", "facebook", "instagram".
type ProviderConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURL  string `toml:"redirect_url"`
	Scopes       string `toml:"scopes"`
}

// AIConfig contains settings for the content-generation backend.
type AIConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies SOCIAL_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("SOCIAL_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SOCIAL_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if level := os.Getenv("SOCIAL_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if key := os.Getenv("SOCIAL_AI_API_KEY"); key != "" {
		config.AI.APIKey = key
	}

	// Provider credentials: SOCIAL_<PROVIDER>_CLIENT_ID / _CLIENT_SECRET.
	for name, envName := range map[string]string{
		"linkedin":  "LINKEDIN",
		"twitter":   "TWITTER",
		"facebook":  "FACEBOOK",
		"instagram": "INSTAGRAM",
	} {
		pc := config.Providers[name]
		if id := os.Getenv("SOCIAL_" + envName + "_CLIENT_ID"); id != "" {
			pc.ClientID = id
		}
		if secret := os.Getenv("SOCIAL_" + envName + "_CLIENT_SECRET"); secret != "" {
			pc.ClientSecret = secret
		}
		config.Providers[name] = pc
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate returns a list of configuration issues. An empty slice means the
// configuration is usable. Missing provider credentials are not fatal here;
// they surface as first-use errors when the matching operation is invoked.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if c.Server.Host == "" {
		issues = append(issues, "server.host must not be empty")
	}

	for name, pc := range c.Providers {
		if pc.ClientID == "" && pc.ClientSecret != "" {
			issues = append(issues, fmt.Sprintf("providers.%s has client_secret but no client_id", name))
		}
	}

	return issues
}

// Provider returns the credentials for a named provider. The boolean is
// false when no configuration section exists for that provider.
func (c *Config) Provider(name string) (ProviderConfig, bool) {
	pc, ok := c.Providers[name]
	return pc, ok
}
