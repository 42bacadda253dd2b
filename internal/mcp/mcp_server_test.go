package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/FractalWire/git-tools/internal/contract"
	mcp_internal "github.com/FractalWire/git-tools/internal/mcp"
	"github.com/FractalWire/git-tools/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	mocklib "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func commits() []schema.CommitRecord {
	now := time.Now().UTC()
	return []schema.CommitRecord{
		{
			ID: "bbbbbbbbbb", AuthorEmail: "alice@example.com", Timestamp: now.Add(-time.Hour),
			Message: "Fix login bug", ParentCount: 1,
			FileChanges: []schema.FileChange{{Path: "src/auth.go", LinesAdded: 50, LinesDeleted: 20}},
		},
		{
			ID: "aaaaaaaaaa", AuthorEmail: "bob@example.com", Timestamp: now.Add(-48 * time.Hour),
			Message: "Add export", ParentCount: 1,
			FileChanges: []schema.FileChange{{Path: "src/export.go", LinesAdded: 100}},
		},
	}
}

func call(t *testing.T, client contract.GitClient, tool string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(contract.NewRawInput(), client)
	handler := s.GetTool(tool)
	require.NotNil(t, handler, "Tool %s should exist", tool)

	res, err := handler.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: tool, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerTools(t *testing.T) {
	s := mcp_internal.NewMCPServer(contract.NewRawInput(), &contract.MockGitClient{})
	assert.NotNil(t, s.GetTool("get_summary"))
	assert.NotNil(t, s.GetTool("estimate_cost"))
	assert.Nil(t, s.GetTool("get_files"))
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		expected string
	}{
		{"two window units", "get_summary", map[string]any{"days": 3.0, "weeks": 1.0}, "only one time window"},
		{"negative window", "estimate_cost", map[string]any{"months": -1.0}, "cannot be negative"},
		{"zero dir level", "get_summary", map[string]any{"dir_level": 0.0}, "dir-level must be at least 1"},
		{"negative salary", "estimate_cost", map[string]any{"salary": -10.0}, "salary must be positive"},
		{"unknown mode", "get_summary", map[string]any{"mode": "magic"}, "invalid mode"},
		{"top too large", "get_summary", map[string]any{"top": 1000.0}, "top must be greater than 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &contract.MockGitClient{}
			res := call(t, client, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, text(res), tt.expected)
			client.AssertNotCalled(t, "GetRepoRoot", mocklib.Anything, mocklib.Anything)
			client.AssertNotCalled(t, "ListCommits", mocklib.Anything, mocklib.Anything, mocklib.Anything)
		})
	}
}

func TestMCPServerHandlers_GetSummary(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mocklib.Anything, mocklib.Anything).Return("/repo", nil)
	client.On("ListCommits", mocklib.Anything, "/repo", schema.LogFilter{
		AuthorEmails: []string{"alice@example.com"},
	}).Return(commits(), nil)

	res := call(t, client, "get_summary", map[string]any{
		"repo_path": "/repo",
		"emails":    "Alice@Example.com",
		"days":      7.0,
	})
	require.False(t, res.IsError, text(res))
	client.AssertExpectations(t)

	var summary schema.Summary
	require.NoError(t, json.Unmarshal([]byte(text(res)), &summary))
	assert.Equal(t, "/repo", summary.RepoPath)
	assert.Equal(t, 1, summary.TotalCommits)
	assert.Equal(t, 1, summary.Categories[schema.FixCategory].CommitCount)
	assert.Equal(t, schema.PureMode, summary.Estimate.Mode)
}

func TestMCPServerHandlers_EstimateCost(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mocklib.Anything, mocklib.Anything).Return("/repo", nil)
	client.On("ListCommits", mocklib.Anything, "/repo", schema.LogFilter{}).Return(commits(), nil)

	res := call(t, client, "estimate_cost", map[string]any{"salary": 120000.0})
	require.False(t, res.IsError, text(res))

	var report schema.EstimateReport
	require.NoError(t, json.Unmarshal([]byte(text(res)), &report))
	assert.Equal(t, 2, report.TotalCommits)
	assert.Equal(t, 150, report.LinesAdded)
	assert.InDelta(t, 0.13, report.Pure.KLOC, 1e-9)
	assert.InDelta(t, 120000.0, report.Incremental.Salary, 1e-9)
}

func TestMCPServerHandlers_ExtractionError(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mocklib.Anything, mocklib.Anything).Return("/repo", nil)
	client.On("ListCommits", mocklib.Anything, "/repo", mocklib.Anything).Return(nil, contract.ErrExtractionFailure)

	res := call(t, client, "get_summary", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "summary failed")
}

func TestMCPServerHandlers_NotARepository(t *testing.T) {
	client := &contract.MockGitClient{}
	client.On("GetRepoRoot", mocklib.Anything, mocklib.Anything).Return("", contract.ErrExtractionFailure)

	res := call(t, client, "estimate_cost", map[string]any{"repo_path": "/not/a/repo"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "invalid estimate parameters")
}
