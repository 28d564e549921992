package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jeet-integrated/elvproposal/internal/config"
	"github.com/jeet-integrated/elvproposal/internal/consultant"
	"github.com/jeet-integrated/elvproposal/internal/llm"
	"github.com/jeet-integrated/elvproposal/internal/logging"
	"github.com/jeet-integrated/elvproposal/internal/proposal"
	"github.com/jeet-integrated/elvproposal/internal/telemetry"
)

// app bundles what every command needs once configuration is loaded.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	doc      *proposal.Document
	shutdown func()
}

// setup loads .env and the config, builds the logger, starts Sentry and loads
// the proposal. console receives log output; the MCP command passes stderr.
func setup(console io.Writer) (*app, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:   level,
		File:    cfg.Log.File,
		JSON:    cfg.Log.JSON,
		Console: console,
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	flush := telemetry.Init(telemetry.Config{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     "elvproposal@" + Version,
	}, logger)

	doc, err := proposal.Load(cfg.ProposalFile)
	if err != nil {
		return nil, fmt.Errorf("loading proposal: %w", err)
	}
	logger.Debug("proposal loaded",
		zap.String("title", doc.Metadata.Title),
		zap.String("digest", proposal.Digest(doc)))

	return &app{
		cfg:    cfg,
		logger: logger,
		doc:    doc,
		shutdown: func() {
			flush()
			_ = logger.Sync()
		},
	}, nil
}

// loadConfig loads the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `elvproposal init` to create a config file", err)
	}
	return cfg, nil
}

// textProvider creates the configured text provider. A missing API key is not
// fatal: the returned provider fails every call, which the consultant turns
// into its unavailable answer.
func (a *app) textProvider() (llm.TextProvider, error) {
	p, err := llm.NewTextProvider(string(a.cfg.Provider), a.cfg.Model)
	if errors.Is(err, llm.ErrMissingCredential) {
		a.logger.Warn("no API key configured, consultant will be unavailable",
			zap.String("provider", string(a.cfg.Provider)),
			zap.String("env", config.APIKeyEnvVar(a.cfg.Provider)))
		return llm.Unavailable(string(a.cfg.Provider), err), nil
	}
	return p, err
}

// imageProvider creates the configured image provider, degrading like
// textProvider when the key is missing.
func (a *app) imageProvider() (llm.ImageProvider, error) {
	kind := a.cfg.EffectiveImageProvider()
	model := a.cfg.ImageModel
	if model == "" {
		model = config.GetPreset(kind).ImageModel
	}
	p, err := llm.NewImageProvider(string(kind), model)
	if errors.Is(err, llm.ErrMissingCredential) {
		a.logger.Warn("no API key configured, diagrams will be unavailable",
			zap.String("provider", string(kind)))
		return llm.Unavailable(string(kind), err), nil
	}
	return p, err
}

// contextSource grounds the consultant on the loaded proposal.
func (a *app) contextSource() consultant.ContextSource {
	serialized := proposal.Serialize(a.doc)
	return func() string { return serialized }
}

// registryOptions assembles what every new session needs.
func (a *app) registryOptions() (consultant.RegistryOptions, error) {
	text, err := a.textProvider()
	if err != nil {
		return consultant.RegistryOptions{}, fmt.Errorf("creating text provider: %w", err)
	}
	image, err := a.imageProvider()
	if err != nil {
		return consultant.RegistryOptions{}, fmt.Errorf("creating image provider: %w", err)
	}
	return consultant.RegistryOptions{
		Text:          text,
		Image:         image,
		Context:       a.contextSource(),
		Sections:      a.doc.SectionIDs(),
		ReferenceLine: a.cfg.Navigator.ReferenceLine,
		Greeting:      a.cfg.Greeting,
		Model:         a.cfg.Model,
		ImageModel:    a.cfg.ImageModel,
		Temperature:   &a.cfg.Temperature,
		Logger:        a.logger,
	}, nil
}

// newSession builds a standalone session for the one-shot CLI commands.
func (a *app) newSession() (*consultant.Session, error) {
	opts, err := a.registryOptions()
	if err != nil {
		return nil, err
	}
	return consultant.NewRegistry(opts).Create(), nil
}

// consoleWriter is the default log sink for interactive commands.
func consoleWriter() io.Writer { return os.Stderr }
