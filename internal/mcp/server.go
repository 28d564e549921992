// Package mcp exposes the proposal consultant to MCP clients over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/jeet-integrated/elvproposal/internal/consultant"
	"github.com/jeet-integrated/elvproposal/internal/logging"
	"github.com/jeet-integrated/elvproposal/internal/proposal"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the proposal and its consultant.
// One server process holds one conversation.
type Server struct {
	doc         *proposal.Document
	consultant  *consultant.Consultant
	synthesizer *consultant.Synthesizer
	logger      *zap.Logger
	mcp         *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies. A nil
// synthesizer leaves the generate_diagram tool out.
func NewServer(doc *proposal.Document, c *consultant.Consultant, synth *consultant.Synthesizer, logger *zap.Logger) *Server {
	s := &Server{
		doc:         doc,
		consultant:  c,
		synthesizer: synth,
		logger:      logging.OrNop(logger).Named("mcp"),
	}

	s.mcp = server.NewMCPServer(
		"elvproposal",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(askConsultantTool, s.handleAskConsultant)
	s.mcp.AddTool(searchBOQTool, s.handleSearchBOQ)
	s.mcp.AddTool(getProposalContextTool, s.handleGetProposalContext)
	s.mcp.AddTool(listSectionsTool, s.handleListSections)
	s.mcp.AddTool(listDrawingsTool, s.handleListDrawings)
	if s.synthesizer != nil {
		s.mcp.AddTool(generateDiagramTool, s.handleGenerateDiagram)
	}
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	s.logger.Info("serving MCP on stdio", zap.String("version", Version))
	return server.ServeStdio(s.mcp)
}
