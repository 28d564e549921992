package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jeet-integrated/elvproposal/internal/proposal"
)

var (
	boqSearch   string
	boqCategory string
	boqJSON     bool
)

var boqCmd = &cobra.Command{
	Use:   "boq",
	Short: "List bill-of-quantities items",
	Long:  `Filters the BOQ by a case-insensitive description search and a category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(consoleWriter())
		if err != nil {
			return err
		}
		defer a.shutdown()

		filter := proposal.BOQFilter{SearchText: boqSearch, Category: boqCategory}.Normalize(a.doc.BOQ)
		if boqCategory != "" && filter.Category != boqCategory {
			return fmt.Errorf("unknown category %q (have: %s)", boqCategory,
				strings.Join(proposal.Categories(a.doc.BOQ), ", "))
		}
		items := filter.Apply(a.doc.BOQ)

		if boqJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		}
		return printBOQ(cmd.OutOrStdout(), items)
	},
}

func init() {
	boqCmd.Flags().StringVarP(&boqSearch, "search", "s", "", "search text matched against item descriptions")
	boqCmd.Flags().StringVarP(&boqCategory, "category", "c", proposal.AllCategories, "category to show")
	boqCmd.Flags().BoolVar(&boqJSON, "json", false, "print items as JSON")
	rootCmd.AddCommand(boqCmd)
}

func printBOQ(out io.Writer, items []proposal.BOQItem) error {
	if len(items) == 0 {
		fmt.Fprintln(out, proposal.EmptyStateMessage)
		return nil
	}
	header := color.New(color.Bold).SprintFunc()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header("CATEGORY\tDESCRIPTION\tUNIT\tQTY"))
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", it.Category, it.Description, it.Unit, it.Quantity)
	}
	return tw.Flush()
}
