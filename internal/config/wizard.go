package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to elvproposal! Let's configure the proposal desk.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select model provider",
		Items: []string{string(ProviderGoogle), string(ProviderOpenAI)},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)
	cfg.ImageProvider = cfg.Provider
	preset := GetPreset(cfg.Provider)

	// 2. Models.
	modelPrompt := promptui.Prompt{
		Label:   "Text model",
		Default: preset.Model,
	}
	if cfg.Model, err = modelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	imagePrompt := promptui.Prompt{
		Label:   "Image model",
		Default: preset.ImageModel,
	}
	if cfg.ImageModel, err = imagePrompt.Run(); err != nil {
		return nil, fmt.Errorf("image model: %w", err)
	}

	// 3. Proposal file.
	proposalPrompt := promptui.Prompt{
		Label:   "Proposal YAML file (leave blank for the built-in TSC proposal)",
		Default: "",
		Validate: func(s string) error {
			if s == "" {
				return nil
			}
			if _, err := os.Stat(s); err != nil {
				return fmt.Errorf("cannot read %s", s)
			}
			return nil
		},
	}
	if cfg.ProposalFile, err = proposalPrompt.Run(); err != nil {
		return nil, fmt.Errorf("proposal file: %w", err)
	}

	// 4. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Check for API key.
	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment or a .env file before asking questions.\n", envVar)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}
