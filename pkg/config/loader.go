package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	anonymizerConfigFile   = "anonymizer.yaml"
	llmProvidersConfigFile = "llm-providers.yaml"
)

// AnonymizerYAMLConfig represents the complete anonymizer.yaml file structure
type AnonymizerYAMLConfig struct {
	Defaults   *Defaults                  `yaml:"defaults"`
	Assistants map[string]AssistantConfig `yaml:"assistants"`
	History    *HistoryConfig             `yaml:"history"`
}

// LLMProvidersYAMLConfig represents the complete llm-providers.yaml file structure
type LLMProvidersYAMLConfig struct {
	LLMProviders map[string]LLMProviderConfig `yaml:"llm_providers"`
}

// Initialize loads, validates, and returns ready-to-use configuration.
//
// Steps performed:
//  1. Load YAML files from configDir (a missing file means built-ins only)
//  2. Expand environment variables
//  3. Parse YAML into structs
//  4. Merge built-in + user-defined configuration
//  5. Build the provider registry
//  6. Validate
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("Initializing configuration")

	cfg, err := load(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	stats := cfg.Stats()
	log.Info("Configuration initialized successfully",
		"llm_providers", stats.LLMProviders,
		"assistants", stats.Assistants,
		"history_enabled", stats.HistoryEnabled)

	return cfg, nil
}

func load(_ context.Context, configDir string) (*Config, error) {
	info, err := os.Stat(configDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configDir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrConfigNotFound, configDir)
	}

	loader := &configLoader{configDir: configDir}

	anonymizerConfig, err := loader.loadAnonymizerYAML()
	if err != nil {
		return nil, NewLoadError(anonymizerConfigFile, err)
	}

	llmProviders, err := loader.loadLLMProvidersYAML()
	if err != nil {
		return nil, NewLoadError(llmProvidersConfigFile, err)
	}

	builtin := GetBuiltinConfig()

	assistants, err := mergeAssistants(builtin.Assistants, anonymizerConfig.Assistants)
	if err != nil {
		return nil, err
	}
	defaults, err := mergeDefaults(builtin.Defaults, anonymizerConfig.Defaults)
	if err != nil {
		return nil, err
	}

	history, err := mergeHistory(anonymizerConfig.History)
	if err != nil {
		return nil, err
	}

	return &Config{
		configDir:           configDir,
		Defaults:            defaults,
		Assistants:          assistants,
		History:             history,
		LLMProviderRegistry: NewLLMProviderRegistry(mergeLLMProviders(builtin.LLMProviders, llmProviders)),
	}, nil
}

func validate(cfg *Config) error {
	return NewValidator(cfg).ValidateAll()
}

type configLoader struct {
	configDir string
}

// loadYAML reads filename into target. It reports false without error when
// the file does not exist.
func (l *configLoader) loadYAML(filename string, target any) (bool, error) {
	path := filepath.Join(l.configDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("Configuration file not present, using built-in values", "path", path)
			return false, nil
		}
		return false, err
	}

	// ExpandEnv passes through original data on template errors and leaves
	// the YAML parser to report them
	data = ExpandEnv(data)

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return true, nil
}

func (l *configLoader) loadAnonymizerYAML() (*AnonymizerYAMLConfig, error) {
	var config AnonymizerYAMLConfig
	config.Assistants = make(map[string]AssistantConfig)

	if _, err := l.loadYAML(anonymizerConfigFile, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (l *configLoader) loadLLMProvidersYAML() (map[string]LLMProviderConfig, error) {
	var config LLMProvidersYAMLConfig
	config.LLMProviders = make(map[string]LLMProviderConfig)

	if _, err := l.loadYAML(llmProvidersConfigFile, &config); err != nil {
		return nil, err
	}
	return config.LLMProviders, nil
}
