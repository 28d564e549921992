package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jeet-integrated/elvproposal/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize elvproposal configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose the model provider, models, proposal file and port, and writes .elvproposal.yml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
