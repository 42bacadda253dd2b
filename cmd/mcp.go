package cmd

import (
	"github.com/FractalWire/git-tools/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the git-summary MCP server",
	Long:  `Launch an MCP server that allows AI agents to summarize history and estimate cost via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol, so only diagnostics on stderr are allowed
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, input, client)
	},
}
