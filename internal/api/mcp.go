package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/joanteresajose/reddit-persona/internal/storage"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Extractor Extractor
	Store     *storage.Store
	Files     ReportReader
}

// NewMCPServer creates an MCP server exposing persona extraction and
// retrieval as tools, for use from MCP-capable assistants.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"personad",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("personad analyzes public Reddit profiles into citation-annotated personas."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("analyze_profile",
			mcp.WithDescription("Analyze a public Reddit profile and generate a persona with citations."),
			mcp.WithString("reddit_url", mcp.Description("Profile URL, e.g. https://www.reddit.com/user/kojied/"), mcp.Required()),
		),
		mcpAnalyzeProfile(deps),
	)

	s.AddTool(
		mcp.NewTool("list_personas",
			mcp.WithDescription("List previously generated personas."),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 10)")),
		),
		mcpListPersonas(deps),
	)

	s.AddTool(
		mcp.NewTool("get_persona_report",
			mcp.WithDescription("Fetch the rendered text report for a persona by ID."),
			mcp.WithString("id", mcp.Description("Persona record ID"), mcp.Required()),
		),
		mcpGetPersonaReport(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"personas://recent",
			"Recent Personas",
			mcp.WithResourceDescription("Last 10 persona records (summaries only)"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceRecent(deps),
	)

	return s
}

func mcpAnalyzeProfile(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		redditURL, err := req.RequireString("reddit_url")
		if err != nil {
			return mcpError("reddit_url is required"), nil
		}

		rec, err := deps.Extractor.Extract(ctx, redditURL)
		if err != nil {
			return mcpError(fmt.Sprintf("analysis failed: %v", err)), nil
		}

		b, err := json.Marshal(toResponse(rec))
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal persona: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpListPersonas(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", 10)
		if limit <= 0 {
			limit = 10
		}
		if limit > 100 {
			limit = 100
		}

		records, err := deps.Store.ListPersonas(limit, 0)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to list personas: %v", err)), nil
		}

		summaries := make([]map[string]string, len(records))
		for i, rec := range records {
			summaries[i] = map[string]string{
				"id":         rec.ID,
				"username":   rec.Username,
				"created_at": rec.CreatedAt.Format(time.RFC3339),
			}
		}

		b, err := json.Marshal(summaries)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpGetPersonaReport(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}

		rec, err := deps.Store.GetPersona(id)
		if errors.Is(err, storage.ErrNotFound) {
			return mcpError("persona not found"), nil
		}
		if err != nil {
			return mcpError(fmt.Sprintf("failed to get persona: %v", err)), nil
		}

		data, err := deps.Files.ReadReport(rec.ReportPath)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to read report: %v", err)), nil
		}
		return mcpText(string(data)), nil
	}
}

func mcpResourceRecent(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		records, err := deps.Store.ListPersonas(10, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to list personas: %w", err)
		}

		type recordSummary struct {
			ID        string `json:"id"`
			Username  string `json:"username"`
			RedditURL string `json:"reddit_url"`
			CreatedAt string `json:"created_at"`
		}

		summaries := make([]recordSummary, len(records))
		for i, rec := range records {
			summaries[i] = recordSummary{
				ID:        rec.ID,
				Username:  rec.Username,
				RedditURL: rec.RedditURL,
				CreatedAt: rec.CreatedAt.Format(time.RFC3339),
			}
		}

		b, err := json.Marshal(summaries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal personas: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
