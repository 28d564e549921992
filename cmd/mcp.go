package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/jeet-integrated/elvproposal/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing the
consultant, the BOQ and the proposal context as tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol; logs go to stderr.
		a, err := setup(os.Stderr)
		if err != nil {
			return err
		}
		defer a.shutdown()

		sess, err := a.newSession()
		if err != nil {
			return err
		}

		mcpserver.Version = Version
		a.logger.Info("MCP server started on stdio",
			zap.String("proposal", a.doc.Metadata.Title),
			zap.Int("boq_items", len(a.doc.BOQ)))

		srv := mcpserver.NewServer(a.doc, sess.Consultant, sess.Synthesizer, a.logger)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
