package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/FractalWire/git-tools/core"
	"github.com/FractalWire/git-tools/internal/contract"
	"github.com/FractalWire/git-tools/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	base   *contract.ConfigRawInput
	client contract.GitClient
}

// configFor overlays the request arguments on the base inputs and validates them.
func (h *toolHandler) configFor(ctx context.Context, request mcp.CallToolRequest) (*contract.Config, error) {
	input := *h.base
	input.RepoPathStr = request.GetString("repo_path", input.RepoPathStr)
	input.Emails = request.GetString("emails", input.Emails)
	input.EmailContains = request.GetString("email_contains", input.EmailContains)
	input.DivergedFrom = request.GetString("diverged_from", input.DivergedFrom)
	input.Mode = request.GetString("mode", input.Mode)
	input.Days = request.GetInt("days", input.Days)
	input.Weeks = request.GetInt("weeks", input.Weeks)
	input.Months = request.GetInt("months", input.Months)
	input.Years = request.GetInt("years", input.Years)
	input.DirLevel = request.GetInt("dir_level", input.DirLevel)
	input.Top = request.GetInt("top", input.Top)
	input.Salary = request.GetFloat("salary", input.Salary)

	// Results always travel back as JSON text
	input.Output = string(schema.JSONOut)
	input.OutputFile = ""

	cfg := &contract.Config{}
	if err := contract.ProcessAndValidate(ctx, cfg, h.client, &input); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (h *toolHandler) handleGetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid summary parameters: %v", err)), nil
	}

	summary, err := core.GetSummaryResults(core.WithSuppressHeader(ctx), cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEstimateCost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid estimate parameters: %v", err)), nil
	}

	report, err := core.GetEstimateResults(core.WithSuppressHeader(ctx), cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("estimate failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
