// Package config provides configuration loading and management for brandforge.
package config

// Config is the root configuration.
type Config struct {
	Gemini    GeminiConfig    `json:"gemini"    mapstructure:"gemini"`
	Notion    NotionConfig    `json:"notion"    mapstructure:"notion"`
	Fetcher   FetcherConfig   `json:"fetcher"   mapstructure:"fetcher"`
	Retention RetentionPolicy `json:"retention" mapstructure:"retention"`
}

// GeminiConfig describes the text-generation backend.
type GeminiConfig struct {
	Model     string `json:"model"               mapstructure:"model"`
	APIKeyEnv string `json:"api_key_env"         mapstructure:"api_key_env"`
	Timeout   int    `json:"timeout,omitempty"   mapstructure:"timeout"`
}

// NotionConfig identifies the client-profile database.
type NotionConfig struct {
	APIKeyEnv          string `json:"api_key_env"                    mapstructure:"api_key_env"`
	ClientDatabaseID   string `json:"client_database_id"             mapstructure:"client_database_id"`
	SamplesDatabaseID  string `json:"samples_database_id,omitempty"  mapstructure:"samples_database_id"`
	GuidelinesParentID string `json:"guidelines_parent_id,omitempty" mapstructure:"guidelines_parent_id"`
}

// FetcherConfig tunes website content extraction.
type FetcherConfig struct {
	TimeoutSeconds int `json:"timeout_seconds,omitempty" mapstructure:"timeout_seconds"`
	SectionLimit   int `json:"section_limit,omitempty"   mapstructure:"section_limit"`
}

// RetentionPolicy defines how many old runs to keep.
type RetentionPolicy struct {
	KeepLast int `json:"keep_last,omitempty" mapstructure:"keep_last"`
	KeepDays int `json:"keep_days,omitempty" mapstructure:"keep_days"`
}

const (
	// DefaultModel is used when the config names no Gemini model.
	DefaultModel = "gemini-2.0-flash"
	// DefaultSectionLimit caps extracted website content per section.
	DefaultSectionLimit = 2000
	// DefaultFetchTimeout bounds a single page fetch, in seconds.
	DefaultFetchTimeout = 10
)

// ApplyDefaults fills zero-valued fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Gemini.Model == "" {
		c.Gemini.Model = DefaultModel
	}
	if c.Gemini.APIKeyEnv == "" {
		c.Gemini.APIKeyEnv = "GEMINI_API_KEY"
	}
	if c.Notion.APIKeyEnv == "" {
		c.Notion.APIKeyEnv = "NOTION_API_KEY"
	}
	if c.Fetcher.SectionLimit == 0 {
		c.Fetcher.SectionLimit = DefaultSectionLimit
	}
	if c.Fetcher.TimeoutSeconds == 0 {
		c.Fetcher.TimeoutSeconds = DefaultFetchTimeout
	}
}
