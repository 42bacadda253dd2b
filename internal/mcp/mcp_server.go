// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the git-summary MCP server without starting it.
// base holds the raw inputs of the command line; every tool call overrides them with its
// own arguments and validates the result again. This is exposed for unit testing.
func NewMCPServer(base *contract.ConfigRawInput, client contract.GitClient) *server.MCPServer {
	s := server.NewMCPServer(
		"Git Summary Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		base:   base,
		client: client,
	}

	// --- 1. Tool: get_summary ---
	s.AddTool(mcp.NewTool("get_summary",
		append(scopeOptions(),
			mcp.WithDescription("Summarize git history: commit categories, directory activity, top commits, recent activity and a COCOMO estimate."),
			mcp.WithNumber("dir_level", mcp.Description("Directory depth used to bucket file changes (defaults to 1).")),
			mcp.WithNumber("top", mcp.Description("Number of top commits by lines changed (defaults to 5).")),
		)...,
	), h.handleGetSummary)

	// --- 2. Tool: estimate_cost ---
	s.AddTool(mcp.NewTool("estimate_cost",
		append(scopeOptions(),
			mcp.WithDescription("Estimate development effort and cost with Basic COCOMO, in both pure and incremental modes."),
		)...,
	), h.handleEstimateCost)

	return s
}

// scopeOptions are the arguments shared by every tool selecting commits.
func scopeOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
		mcp.WithString("emails", mcp.Description("Comma-separated author emails to keep.")),
		mcp.WithString("email_contains", mcp.Description("Keep authors whose email contains this text.")),
		mcp.WithNumber("days", mcp.Description("Only commits from the last N days.")),
		mcp.WithNumber("weeks", mcp.Description("Only commits from the last N weeks.")),
		mcp.WithNumber("months", mcp.Description("Only commits from the last N months.")),
		mcp.WithNumber("years", mcp.Description("Only commits from the last N years.")),
		mcp.WithString("diverged_from", mcp.Description("Only commits reachable from HEAD but not from this branch.")),
		mcp.WithNumber("salary", mcp.Description("Yearly salary used for the cost estimate (defaults to 50000).")),
		mcp.WithString("mode", mcp.Description("Estimate mode. Defaults to 'pure'."), mcp.Enum("pure", "incremental")),
	}
}

// StartMCPServer starts the git-summary MCP server on stdio.
func StartMCPServer(_ context.Context, base *contract.ConfigRawInput, client contract.GitClient) error {
	s := NewMCPServer(base, client)
	return server.ServeStdio(s)
}
