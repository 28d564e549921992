package mcp

import "github.com/mark3labs/mcp-go/mcp"

// askConsultantTool defines the ask_consultant MCP tool.
var askConsultantTool = mcp.NewTool("ask_consultant",
	mcp.WithDescription("Ask the ELV security consultant a question. Answers are grounded strictly on the proposal data."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("Question about the proposal, e.g. \"What is the recording retention period?\""),
	),
)

// searchBOQTool defines the search_boq MCP tool.
var searchBOQTool = mcp.NewTool("search_boq",
	mcp.WithDescription("Filter the bill of quantities by description text and category."),
	mcp.WithString("query",
		mcp.Description("Case-insensitive text to look for in item descriptions (empty matches all)"),
	),
	mcp.WithString("category",
		mcp.Description("Exact category name, or \"All\" (default)"),
	),
)

// getProposalContextTool defines the get_proposal_context MCP tool.
var getProposalContextTool = mcp.NewTool("get_proposal_context",
	mcp.WithDescription("Get the serialized proposal data the consultant is grounded on."),
)

// listSectionsTool defines the list_sections MCP tool.
var listSectionsTool = mcp.NewTool("list_sections",
	mcp.WithDescription("List the proposal sections in document order."),
)

// listDrawingsTool defines the list_drawings MCP tool.
var listDrawingsTool = mcp.NewTool("list_drawings",
	mcp.WithDescription("List reference drawings and annexes, optionally filtered by a glob on locator or drawing number."),
	mcp.WithString("match",
		mcp.Description("Glob pattern such as \"TSC-CCTV-*\" or \"drawings/**/*.pdf\""),
	),
)

// generateDiagramTool defines the generate_diagram MCP tool.
var generateDiagramTool = mcp.NewTool("generate_diagram",
	mcp.WithDescription("Generate a technical blueprint-style diagram image from a description."),
	mcp.WithString("prompt",
		mcp.Required(),
		mcp.Description("What the diagram should show"),
	),
)
