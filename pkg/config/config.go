package config

import "fmt"

// Config is the umbrella configuration object built once by Initialize and
// threaded through the service.
type Config struct {
	configDir string

	Defaults   *Defaults
	Assistants map[string]*AssistantConfig
	History    *HistoryConfig

	LLMProviderRegistry *LLMProviderRegistry
}

// Stats contains statistics about loaded configuration
type Stats struct {
	LLMProviders   int
	Assistants     int
	HistoryEnabled bool
}

// Stats returns configuration statistics for logging/monitoring
func (c *Config) Stats() Stats {
	s := Stats{Assistants: len(c.Assistants)}
	if c.LLMProviderRegistry != nil {
		s.LLMProviders = c.LLMProviderRegistry.Len()
	}
	if c.History != nil {
		s.HistoryEnabled = c.History.Enabled
	}
	return s
}

// ConfigDir returns the configuration directory path
func (c *Config) ConfigDir() string {
	return c.configDir
}

// GetLLMProvider retrieves an LLM provider configuration by name.
func (c *Config) GetLLMProvider(name string) (*LLMProviderConfig, error) {
	return c.LLMProviderRegistry.Get(name)
}

// ResolvedAssistant is the effective model configuration of one assistant.
type ResolvedAssistant struct {
	Name         string
	ProviderName string
	Provider     *LLMProviderConfig
	MaxTokens    int
	Temperature  *float64
}

// ResolveAssistant merges assistant, provider and system defaults.
// Precedence: assistant > provider > built-in.
func (c *Config) ResolveAssistant(name string) (*ResolvedAssistant, error) {
	ac, ok := c.Assistants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssistantNotFound, name)
	}

	providerName := ac.LLMProvider
	if providerName == "" && c.Defaults != nil {
		providerName = c.Defaults.LLMProvider
	}
	provider, err := c.LLMProviderRegistry.Get(providerName)
	if err != nil {
		return nil, fmt.Errorf("assistant %s: %w", name, err)
	}

	resolved := &ResolvedAssistant{
		Name:         name,
		ProviderName: providerName,
		Provider:     provider,
		MaxTokens:    provider.MaxTokens,
		Temperature:  provider.Temperature,
	}
	if ac.MaxTokens > 0 {
		resolved.MaxTokens = ac.MaxTokens
	}
	if resolved.MaxTokens == 0 {
		resolved.MaxTokens = DefaultMaxTokens
	}
	if ac.Temperature != nil {
		resolved.Temperature = ac.Temperature
	}
	return resolved, nil
}

// FilterValuesOverLength returns the configured default cutoff.
func (c *Config) FilterValuesOverLength() int {
	if c.Defaults != nil && c.Defaults.FilterValuesOverLength > 0 {
		return c.Defaults.FilterValuesOverLength
	}
	return DefaultFilterValuesOverLength
}
