package config

import "os"

// ModelConfig describes where the trained classifier artifact lives
type ModelConfig struct {
	// ArtifactPath points at the JSON artifact exported by offline
	// training. Empty means no model is configured and the service
	// falls back to the deterministic mock classifier.
	ArtifactPath string `json:"artifactPath"`

	// MappingsPath optionally overrides the built-in category mapping
	// tables with an external JSON file.
	MappingsPath string `json:"mappingsPath"`
}

// DefaultModelConfig returns the model configuration from the environment
func DefaultModelConfig() *ModelConfig {
	return &ModelConfig{
		ArtifactPath: os.Getenv("MODEL_PATH"),
		MappingsPath: os.Getenv("CATEGORY_MAPPINGS_PATH"),
	}
}

// IsEnabled returns true if a trained model artifact is configured
func (c *ModelConfig) IsEnabled() bool {
	return c.ArtifactPath != ""
}
