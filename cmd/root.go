package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jeet-integrated/elvproposal/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "elvproposal",
	Short: "Interactive desk for the TSC CCTV & ELV upgrade proposal",
	Long: `elvproposal serves the CCTV & ELV systems upgrade proposal for The
Sustainable City together with an AI security consultant that answers
questions grounded strictly on the proposal data, and generates
blueprint-style diagrams on request.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
