package config

import (
	"sync"
)

// BuiltinConfig holds the configuration used when the config directory
// does not override it.
type BuiltinConfig struct {
	LLMProviders map[string]LLMProviderConfig
	Assistants   map[string]AssistantConfig
	Defaults     Defaults
}

// DefaultMaxTokens bounds each structured reply when neither the assistant
// nor its provider sets max_tokens.
const DefaultMaxTokens = 1024

var (
	builtinConfig     *BuiltinConfig
	builtinConfigOnce sync.Once
)

// GetBuiltinConfig returns the singleton built-in configuration (thread-safe, lazy-initialized)
func GetBuiltinConfig() *BuiltinConfig {
	builtinConfigOnce.Do(initBuiltinConfig)
	return builtinConfig
}

func initBuiltinConfig() {
	builtinConfig = &BuiltinConfig{
		LLMProviders: initBuiltinLLMProviders(),
		Assistants:   initBuiltinAssistants(),
		Defaults: Defaults{
			LLMProvider:            "openai-default",
			FilterValuesOverLength: DefaultFilterValuesOverLength,
		},
	}
}

func initBuiltinLLMProviders() map[string]LLMProviderConfig {
	zero := 0.0
	return map[string]LLMProviderConfig{
		"openai-default": {
			Type:        LLMProviderTypeOpenAI,
			Model:       "gpt-4",
			APIKeyEnv:   "OPENAI_API_KEY",
			BaseURL:     "https://api.openai.com/v1",
			MaxTokens:   DefaultMaxTokens,
			Temperature: &zero,
		},
	}
}

func initBuiltinAssistants() map[string]AssistantConfig {
	return map[string]AssistantConfig{
		AssistantSniffSensitiveInfo: {},
		AssistantCleanSensitiveInfo: {},
	}
}
