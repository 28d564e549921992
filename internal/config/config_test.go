package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeet-integrated/elvproposal/internal/consultant"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderGoogle, cfg.Provider)
	assert.Equal(t, "gemini-3-flash-preview", cfg.Model)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.ImageModel)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
	assert.Equal(t, consultant.DefaultGreeting, cfg.Greeting)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.InDelta(t, 100, cfg.Navigator.ReferenceLine, 1e-9)
	require.NoError(t, cfg.Validate())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.elvproposal.yml")

	original := DefaultConfig()
	original.Provider = ProviderOpenAI
	original.Model = "gpt-4o"
	original.ImageModel = "dall-e-3"
	original.ProposalFile = "proposals/tsc.yaml"
	original.Server.Port = 9090
	original.Log.JSON = true
	original.Sentry.DSN = "https://key@example.com/1"

	require.NoError(t, original.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yml")
	require.NoError(t, os.WriteFile(path, []byte("model: gemini-3-pro-preview\nlog:\n  level: debug\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-3-pro-preview", cfg.Model)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ProviderGoogle, cfg.Provider)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadKeepsExplicitZeroTemperature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.yml")
	require.NoError(t, os.WriteFile(path, []byte("temperature: 0.0\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Temperature)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	require.NoError(t, DefaultConfig().Save(path))

	t.Setenv("ELVPROPOSAL_MODEL", "gemini-3-pro-preview")
	t.Setenv("ELVPROPOSAL_SERVER__PORT", "9191")
	t.Setenv("ELVPROPOSAL_LOG__LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-3-pro-preview", cfg.Model)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("provider: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ELVPROPOSAL_TEST_DOTENV=from-file\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("ELVPROPOSAL_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("ELVPROPOSAL_TEST_DOTENV"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"openai", func(c *Config) { c.Provider = ProviderOpenAI }, false},
		{"missing provider", func(c *Config) { c.Provider = "" }, true},
		{"unknown provider", func(c *Config) { c.Provider = "ollama" }, true},
		{"missing model", func(c *Config) { c.Model = "" }, true},
		{"unknown image provider", func(c *Config) { c.ImageProvider = "stability" }, true},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }, true},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"negative timeout", func(c *Config) { c.Server.RequestTimeoutSeconds = -1 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"zero reference line", func(c *Config) { c.Navigator.ReferenceLine = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEffectiveImageProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.ImageProvider = ""
	assert.Equal(t, ProviderOpenAI, cfg.EffectiveImageProvider())

	cfg.ImageProvider = ProviderGoogle
	assert.Equal(t, ProviderGoogle, cfg.EffectiveImageProvider())
}

func TestGetPreset(t *testing.T) {
	assert.Equal(t, "dall-e-3", GetPreset(ProviderOpenAI).ImageModel)
	assert.Equal(t, GetPreset(ProviderGoogle), GetPreset("unknown"))
	assert.Equal(t, "OPENAI_API_KEY", APIKeyEnvVar(ProviderOpenAI))
	assert.Equal(t, "", APIKeyEnvVar("unknown"))
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, validatePort("8080"))
	assert.Error(t, validatePort("http"))
	assert.Error(t, validatePort("70000"))
}
