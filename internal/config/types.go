package config

// ProviderType identifies a model vendor.
type ProviderType string

const (
	ProviderGoogle ProviderType = "google"
	ProviderOpenAI ProviderType = "openai"
)

// Config is the top-level elvproposal configuration, corresponding to .elvproposal.yml.
type Config struct {
	Provider      ProviderType    `yaml:"provider" koanf:"provider"`
	Model         string          `yaml:"model" koanf:"model"`
	ImageProvider ProviderType    `yaml:"image_provider" koanf:"image_provider"`
	ImageModel    string          `yaml:"image_model" koanf:"image_model"`
	Temperature   float64         `yaml:"temperature" koanf:"temperature"`
	ProposalFile  string          `yaml:"proposal_file" koanf:"proposal_file"`
	Greeting      string          `yaml:"greeting" koanf:"greeting"`
	Server        ServerConfig    `yaml:"server" koanf:"server"`
	Log           LogConfig       `yaml:"log" koanf:"log"`
	Sentry        SentryConfig    `yaml:"sentry" koanf:"sentry"`
	Navigator     NavigatorConfig `yaml:"navigator" koanf:"navigator"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port                  int  `yaml:"port" koanf:"port"`
	AllowAllOrigins       bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RequestTimeoutSeconds int  `yaml:"request_timeout_seconds" koanf:"request_timeout_seconds"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
	File  string `yaml:"file" koanf:"file"`
	JSON  bool   `yaml:"json" koanf:"json"`
}

// SentryConfig holds optional error reporting settings. An empty DSN
// disables reporting.
type SentryConfig struct {
	DSN         string `yaml:"dsn" koanf:"dsn"`
	Environment string `yaml:"environment" koanf:"environment"`
}

// NavigatorConfig holds section tracking settings.
type NavigatorConfig struct {
	ReferenceLine float64 `yaml:"reference_line" koanf:"reference_line"`
}
