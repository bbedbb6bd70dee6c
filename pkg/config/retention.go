package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// RetentionConfig controls how long history-store runs are kept.
type RetentionConfig struct {
	// RetentionDays is how many days to keep assistant runs. 0 keeps them
	// forever.
	RetentionDays int `yaml:"retention_days"`

	// CleanupInterval is how often the cleanup loop runs.
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// DefaultRetentionConfig returns the built-in retention defaults.
func DefaultRetentionConfig() *RetentionConfig {
	return &RetentionConfig{
		RetentionDays:   30,
		CleanupInterval: 12 * time.Hour,
	}
}

// UnmarshalYAML starts from the built-in defaults so keys missing from the
// file keep them while an explicit retention_days: 0 survives decoding.
func (r *RetentionConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain RetentionConfig
	decoded := plain(*DefaultRetentionConfig())
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	*r = RetentionConfig(decoded)
	return nil
}
