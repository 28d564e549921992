package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeet-integrated/elvproposal/internal/proposal"
)

var drawingsMatch string

var drawingsCmd = &cobra.Command{
	Use:   "drawings",
	Short: "List reference drawings and annexes",
	Long:  `Lists the proposal's reference documents, optionally filtered by a glob over locator or drawing number.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(consoleWriter())
		if err != nil {
			return err
		}
		defer a.shutdown()

		docs, err := proposal.MatchDocuments(a.doc.Documents, drawingsMatch)
		if err != nil {
			return fmt.Errorf("invalid --match pattern: %w", err)
		}
		if len(docs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No documents match.")
			return nil
		}
		for _, d := range docs {
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s (%s)\n", d.DrawingNumber, d.Title, d.Locator)
		}
		return nil
	},
}

func init() {
	drawingsCmd.Flags().StringVarP(&drawingsMatch, "match", "m", "", "glob over locator or drawing number, e.g. drawings/**")
	rootCmd.AddCommand(drawingsCmd)
}
