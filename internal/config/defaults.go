package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4361,
			Host: "localhost",
		},
		Providers: map[string]ProviderConfig{},
		AI: AIConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
