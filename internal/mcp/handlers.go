package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jeet-integrated/elvproposal/internal/consultant"
	"github.com/jeet-integrated/elvproposal/internal/proposal"
)

// handleAskConsultant runs one consultant turn.
func (s *Server) handleAskConsultant(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	answer, err := s.consultant.Ask(ctx, question)
	switch {
	case errors.Is(err, consultant.ErrEmptyQuestion):
		return mcp.NewToolResultError("question must not be empty"), nil
	case errors.Is(err, consultant.ErrBusy):
		return mcp.NewToolResultError("the consultant is still answering a previous question"), nil
	}

	return mcp.NewToolResultText(answer), nil
}

// handleSearchBOQ filters the bill of quantities.
func (s *Server) handleSearchBOQ(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := proposal.BOQFilter{
		SearchText: request.GetString("query", ""),
		Category:   request.GetString("category", proposal.AllCategories),
	}
	if filter.Category == "" {
		filter.Category = proposal.AllCategories
	}

	items := filter.Apply(s.doc.BOQ)
	if len(items) == 0 {
		return mcp.NewToolResultText(proposal.EmptyStateMessage), nil
	}
	return mcp.NewToolResultText(formatBOQ(items)), nil
}

// handleGetProposalContext returns the serialized grounding text.
func (s *Server) handleGetProposalContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(proposal.Serialize(s.doc)), nil
}

// handleListSections lists section ids and labels.
func (s *Server) handleListSections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	for i, sec := range s.doc.Sections {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, sec.Label, sec.ID)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleListDrawings lists reference documents matching an optional glob.
func (s *Server) handleListDrawings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := proposal.MatchDocuments(s.doc.Documents, request.GetString("match", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid match pattern: %v", err)), nil
	}
	if len(docs) == 0 {
		return mcp.NewToolResultText("No drawings match that pattern."), nil
	}

	var sb strings.Builder
	for _, d := range docs {
		fmt.Fprintf(&sb, "- %s: %s [%s] %s\n", d.DrawingNumber, d.Title, d.Type, d.Locator)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGenerateDiagram produces one diagram image.
func (s *Server) handleGenerateDiagram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := request.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: prompt"), nil
	}

	img, err := s.synthesizer.Synthesize(ctx, prompt)
	if errors.Is(err, consultant.ErrBusy) {
		return mcp.NewToolResultError("a diagram is already being generated"), nil
	}
	if img == nil {
		return mcp.NewToolResultError("no diagram was generated"), nil
	}
	return mcp.NewToolResultImage("Generated diagram", base64.StdEncoding.EncodeToString(img.Data), img.MIMEType), nil
}

// formatBOQ renders BOQ items as a markdown table.
func formatBOQ(items []proposal.BOQItem) string {
	var sb strings.Builder
	sb.WriteString("| Category | Description | Unit | Qty |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, it := range items {
		fmt.Fprintf(&sb, "| %s | %s | %s | %d |\n", it.Category, it.Description, it.Unit, it.Quantity)
	}
	return sb.String()
}
