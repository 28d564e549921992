package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jeet-integrated/elvproposal/internal/consultant"
	"github.com/jeet-integrated/elvproposal/internal/progress"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the security consultant in the terminal",
	Long:  `Starts an interactive consultant session. Type "exit" or send EOF to leave.`,
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
		return runChat(context.Background(), sess.Consultant, cmd.InOrStdin(), cmd.OutOrStdout(), progress.NewReporter())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

var (
	consultantLabel = color.New(color.FgCyan, color.Bold).SprintFunc()
	userLabel       = color.New(color.FgGreen, color.Bold).SprintFunc()
	noticeLabel     = color.New(color.FgYellow).SprintFunc()
)

// runChat drives a read-ask-print loop over one conversation.
func runChat(ctx context.Context, c *consultant.Consultant, in io.Reader, out io.Writer, rep progress.Reporter) error {
	if last, ok := c.Conversation().Last(); ok {
		fmt.Fprintf(out, "%s %s\n", consultantLabel("Consultant:"), last.Content)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "%s ", userLabel("You:"))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			return nil
		}

		rep.Start("Consultant is thinking")
		answer, err := c.Ask(ctx, line)
		rep.Finish()
		switch {
		case errors.Is(err, consultant.ErrEmptyQuestion):
			continue
		case errors.Is(err, consultant.ErrBusy):
			fmt.Fprintln(out, noticeLabel("The consultant is still answering the previous question."))
			continue
		case err != nil:
			return err
		}
		fmt.Fprintf(out, "%s %s\n", consultantLabel("Consultant:"), answer)
	}
}
