package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeet-integrated/elvproposal/internal/progress"
)

var diagramOut string

var diagramCmd = &cobra.Command{
	Use:   "diagram <description>",
	Short: "Generate a blueprint-style technical diagram",
	Long: `Sends the description, with the blueprint style suffix, to the image model
and writes the first returned image to --out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(consoleWriter())
		if err != nil {
			return err
		}
		defer a.shutdown()

		sess, err := a.newSession()
		if err != nil {
			return err
		}

		rep := progress.NewReporter()
		rep.Start("Generating diagram")
		img, err := sess.Synthesizer.Synthesize(context.Background(), strings.Join(args, " "))
		rep.Finish()
		if err != nil {
			return err
		}
		if img == nil {
			return fmt.Errorf("the image model returned no diagram")
		}

		if err := os.WriteFile(diagramOut, img.Data, 0o644); err != nil {
			return fmt.Errorf("writing diagram: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, %d bytes)\n", diagramOut, img.MIMEType, len(img.Data))
		return nil
	},
}

func init() {
	diagramCmd.Flags().StringVarP(&diagramOut, "out", "o", "diagram.png", "output file")
	rootCmd.AddCommand(diagramCmd)
}
