package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeet-integrated/elvproposal/internal/proposal"
)

var contextDigest bool

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the grounding context sent to the consultant",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(consoleWriter())
		if err != nil {
			return err
		}
		defer a.shutdown()

		if contextDigest {
			fmt.Fprintln(cmd.OutOrStdout(), proposal.Digest(a.doc))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), proposal.Serialize(a.doc))
		return nil
	},
}

func init() {
	contextCmd.Flags().BoolVar(&contextDigest, "digest", false, "print only the SHA-256 digest of the context")
	rootCmd.AddCommand(contextCmd)
}
