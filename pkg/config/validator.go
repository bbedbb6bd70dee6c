package config

import (
	"fmt"
	"os"
	"strings"
)

// ConfigValidator validates configuration with clear error messages
type ConfigValidator struct {
	cfg *Config
}

// NewValidator creates a validator for the given configuration
func NewValidator(cfg *Config) *ConfigValidator {
	return &ConfigValidator{cfg: cfg}
}

// ValidateAll performs fail-fast validation: providers, then the
// assistants referencing them, then defaults and history.
func (v *ConfigValidator) ValidateAll() error {
	if err := v.validateLLMProviders(); err != nil {
		return fmt.Errorf("LLM provider validation failed: %w", err)
	}

	if err := v.validateAssistants(); err != nil {
		return fmt.Errorf("assistant validation failed: %w", err)
	}

	if err := v.validateDefaults(); err != nil {
		return fmt.Errorf("defaults validation failed: %w", err)
	}

	if err := v.validateHistory(); err != nil {
		return fmt.Errorf("history validation failed: %w", err)
	}

	return nil
}

func (v *ConfigValidator) validateLLMProviders() error {
	for name, provider := range v.cfg.LLMProviderRegistry.GetAll() {
		if !provider.Type.IsValid() {
			return NewValidationError("llm_provider", name, "type", fmt.Errorf("%w: invalid provider type: %s", ErrInvalidValue, provider.Type))
		}

		if provider.Model == "" {
			return NewValidationError("llm_provider", name, "model", ErrMissingRequiredField)
		}

		// openai-compatible servers have no canonical endpoint
		if provider.Type == LLMProviderTypeOpenAICompatible && provider.BaseURL == "" {
			return NewValidationError("llm_provider", name, "base_url", ErrMissingRequiredField)
		}

		if provider.MaxTokens < 0 {
			return NewValidationError("llm_provider", name, "max_tokens", fmt.Errorf("%w: must not be negative", ErrInvalidValue))
		}

		if err := validateTemperature(provider.Temperature); err != nil {
			return NewValidationError("llm_provider", name, "temperature", err)
		}

		if provider.Timeout < 0 {
			return NewValidationError("llm_provider", name, "timeout", fmt.Errorf("%w: must not be negative", ErrInvalidValue))
		}
	}

	return nil
}

func (v *ConfigValidator) validateAssistants() error {
	for _, name := range AssistantNames() {
		assistant, ok := v.cfg.Assistants[name]
		if !ok {
			return NewValidationError("assistant", name, "", ErrAssistantNotFound)
		}

		providerName := assistant.LLMProvider
		if providerName == "" {
			providerName = v.cfg.Defaults.LLMProvider
		}
		provider, err := v.cfg.LLMProviderRegistry.Get(providerName)
		if err != nil {
			return NewValidationError("assistant", name, "llm_provider", fmt.Errorf("%w: %w (known providers: %s)",
				ErrInvalidReference, err, strings.Join(v.cfg.LLMProviderRegistry.Names(), ", ")))
		}

		// Only providers that are actually used must have credentials present
		if provider.APIKeyEnv != "" {
			if value := os.Getenv(provider.APIKeyEnv); value == "" {
				return NewValidationError("llm_provider", providerName, "api_key_env", fmt.Errorf("environment variable %s is not set", provider.APIKeyEnv))
			}
		}

		if assistant.MaxTokens < 0 {
			return NewValidationError("assistant", name, "max_tokens", fmt.Errorf("%w: must not be negative", ErrInvalidValue))
		}

		if err := validateTemperature(assistant.Temperature); err != nil {
			return NewValidationError("assistant", name, "temperature", err)
		}
	}

	return nil
}

func (v *ConfigValidator) validateDefaults() error {
	d := v.cfg.Defaults
	if d.FilterValuesOverLength < 0 {
		return NewValidationError("defaults", "defaults", "filter_values_over_length", fmt.Errorf("%w: must not be negative", ErrInvalidValue))
	}
	return nil
}

func (v *ConfigValidator) validateHistory() error {
	h := v.cfg.History
	if h == nil || h.Retention == nil {
		return nil
	}
	if h.Retention.RetentionDays < 0 {
		return NewValidationError("history", "retention", "retention_days", fmt.Errorf("%w: must not be negative", ErrInvalidValue))
	}
	if h.Retention.CleanupInterval <= 0 {
		return NewValidationError("history", "retention", "cleanup_interval", fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	return nil
}

func validateTemperature(t *float64) error {
	if t == nil {
		return nil
	}
	if *t < 0 || *t > 2 {
		return fmt.Errorf("%w: must be between 0 and 2, got %v", ErrInvalidValue, *t)
	}
	return nil
}
