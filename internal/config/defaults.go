package config

import "github.com/jeet-integrated/elvproposal/internal/consultant"

// ModelPreset describes the models used with a provider.
type ModelPreset struct {
	Model      string
	ImageModel string
}

// modelPresets maps each provider to its default text and image models.
var modelPresets = map[ProviderType]ModelPreset{
	ProviderGoogle: {Model: "gemini-3-flash-preview", ImageModel: "gemini-2.5-flash-image"},
	ProviderOpenAI: {Model: "gpt-4o-mini", ImageModel: "dall-e-3"},
}

// DefaultConfigFile is the configuration file looked up by default.
const DefaultConfigFile = ".elvproposal.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	preset := GetPreset(ProviderGoogle)
	return &Config{
		Provider:      ProviderGoogle,
		Model:         preset.Model,
		ImageProvider: ProviderGoogle,
		ImageModel:    preset.ImageModel,
		Temperature:   consultant.DefaultTemperature,
		Greeting:      consultant.DefaultGreeting,
		Server: ServerConfig{
			Port:                  8080,
			RequestTimeoutSeconds: 120,
		},
		Log: LogConfig{
			Level: "info",
		},
		Sentry: SentryConfig{
			Environment: "development",
		},
		Navigator: NavigatorConfig{
			ReferenceLine: 100,
		},
	}
}

// GetPreset returns the model preset for the given provider.
// Returns the Google preset if the provider is not known.
func GetPreset(provider ProviderType) ModelPreset {
	if preset, ok := modelPresets[provider]; ok {
		return preset
	}
	return modelPresets[ProviderGoogle]
}
