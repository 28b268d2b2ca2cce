package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the config file at path, validates it against the embedded
// schema, and applies defaults. A missing file yields a default config so
// the tool works with nothing but environment variables.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.ApplyDefaults()
		cfg.applyEnvFallbacks()
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := ValidateSettings(v.AllSettings()); err != nil {
		return Config{}, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	cfg.applyEnvFallbacks()
	return cfg, nil
}

// applyEnvFallbacks fills identifiers the config file left out from the
// environment, so a bare .env is enough to get started.
func (c *Config) applyEnvFallbacks() {
	if c.Notion.ClientDatabaseID == "" {
		c.Notion.ClientDatabaseID = os.Getenv("NOTION_DATABASE_ID")
	}
}

// GeminiAPIKey resolves the Gemini API key from the configured env var.
func (c Config) GeminiAPIKey() (string, error) {
	key := os.Getenv(c.Gemini.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("missing Gemini API key: set %s", c.Gemini.APIKeyEnv)
	}
	return key, nil
}

// NotionAPIKey resolves the Notion integration token from the configured env var.
func (c Config) NotionAPIKey() (string, error) {
	key := os.Getenv(c.Notion.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("missing Notion API key: set %s", c.Notion.APIKeyEnv)
	}
	return key, nil
}
