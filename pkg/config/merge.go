package config

import (
	"fmt"

	"dario.cat/mergo"
)

// mergeLLMProviders merges built-in and user-defined LLM providers.
// A user-defined provider replaces the built-in one of the same name whole.
func mergeLLMProviders(builtinProviders map[string]LLMProviderConfig, userProviders map[string]LLMProviderConfig) map[string]*LLMProviderConfig {
	result := make(map[string]*LLMProviderConfig)

	for name, provider := range builtinProviders {
		providerCopy := provider
		result[name] = &providerCopy
	}

	for name, userProvider := range userProviders {
		providerCopy := userProvider
		result[name] = &providerCopy
	}

	return result
}

// mergeAssistants overlays user assistant settings field by field on top of
// the built-in entries, so a user file may set only temperature.
func mergeAssistants(builtinAssistants map[string]AssistantConfig, userAssistants map[string]AssistantConfig) (map[string]*AssistantConfig, error) {
	result := make(map[string]*AssistantConfig, len(builtinAssistants))

	for name, assistant := range builtinAssistants {
		assistantCopy := assistant
		result[name] = &assistantCopy
	}

	for name, userAssistant := range userAssistants {
		base, ok := result[name]
		if !ok {
			return nil, NewValidationError("assistant", name, "", fmt.Errorf("%w: unknown assistant", ErrInvalidReference))
		}
		if err := mergo.Merge(base, userAssistant, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge assistant %s: %w", name, err)
		}
	}

	return result, nil
}

// mergeDefaults overlays non-zero user defaults on the built-in defaults.
func mergeDefaults(builtinDefaults Defaults, userDefaults *Defaults) (*Defaults, error) {
	merged := builtinDefaults
	if userDefaults == nil {
		return &merged, nil
	}
	if err := mergo.Merge(&merged, userDefaults, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge defaults: %w", err)
	}
	return &merged, nil
}

// mergeHistory fills unset retention fields from the built-in retention
// defaults. RetentionDays is taken as given since 0 means keep forever.
func mergeHistory(userHistory *HistoryConfig) (*HistoryConfig, error) {
	history := &HistoryConfig{}
	if userHistory != nil {
		*history = *userHistory
	}
	retention := DefaultRetentionConfig()
	if user := history.Retention; user != nil {
		retention.RetentionDays = user.RetentionDays
		if user.CleanupInterval != 0 {
			retention.CleanupInterval = user.CleanupInterval
		}
	}
	history.Retention = retention
	return history, nil
}
