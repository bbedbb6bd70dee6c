package config

// DefaultFilterValuesOverLength is the value-length cutoff applied when a
// caller does not supply one.
const DefaultFilterValuesOverLength = 3000

// Defaults contains system-wide default configurations
type Defaults struct {
	// LLM provider used by assistants that do not name their own
	LLMProvider string `yaml:"llm_provider,omitempty"`

	// Header/cookie values with this many characters or more are never
	// sent to the model
	FilterValuesOverLength int `yaml:"filter_values_over_length,omitempty"`
}

// AssistantConfig tunes one assistant. Zero values inherit from the
// provider and then from the built-in defaults.
type AssistantConfig struct {
	LLMProvider string   `yaml:"llm_provider,omitempty"`
	MaxTokens   int      `yaml:"max_tokens,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
}

// HistoryConfig controls the optional conversation-history store.
// Connection settings come from DB_* environment variables.
type HistoryConfig struct {
	Enabled   bool             `yaml:"enabled"`
	Retention *RetentionConfig `yaml:"retention,omitempty"`
}
