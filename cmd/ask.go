package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeet-integrated/elvproposal/internal/consultant"
	"github.com/jeet-integrated/elvproposal/internal/progress"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the security consultant a single question",
	Long:  `Asks the consultant one question, grounded on the loaded proposal, and prints the answer.`,
	Args:  cobra.MinimumNArgs(1),
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
		rep.Start("Consultant is thinking")
		answer, err := sess.Consultant.Ask(context.Background(), strings.Join(args, " "))
		rep.Finish()
		if errors.Is(err, consultant.ErrEmptyQuestion) {
			return fmt.Errorf("question is empty")
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
