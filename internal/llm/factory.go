package llm

import (
	"fmt"
	"os"
)

// apiKeyEnvVars lists, per provider, the environment variables checked for a
// key, in order of preference.
var apiKeyEnvVars = map[string][]string{
	"google": {"GOOGLE_API_KEY", "GEMINI_API_KEY", "API_KEY"},
	"openai": {"OPENAI_API_KEY"},
}

// APIKey returns the first non-empty key configured for the provider type.
func APIKey(providerType string) string {
	for _, name := range apiKeyEnvVars[providerType] {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// NewTextProvider creates a text provider for the given provider type and model.
// Supported provider types: "google", "openai". A missing key yields an error
// wrapping ErrMissingCredential.
func NewTextProvider(providerType string, model string) (TextProvider, error) {
	switch providerType {
	case "google":
		apiKey := APIKey(providerType)
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is not set: %w", ErrMissingCredential)
		}
		return NewGoogleProvider(apiKey, model), nil

	case "openai":
		apiKey := APIKey(providerType)
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set: %w", ErrMissingCredential)
		}
		return NewOpenAIProvider(apiKey, model), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}

// NewImageProvider creates an image provider for the given provider type and model.
func NewImageProvider(providerType string, model string) (ImageProvider, error) {
	switch providerType {
	case "google", "openai":
		p, err := NewTextProvider(providerType, model)
		if err != nil {
			return nil, err
		}
		return p.(ImageProvider), nil
	default:
		return nil, fmt.Errorf("unsupported image provider type: %s", providerType)
	}
}
