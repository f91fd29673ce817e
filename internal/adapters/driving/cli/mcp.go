package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dawsonl1/halda-serper/internal/adapters/driving/mcp"
	"github.com/dawsonl1/halda-serper/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can parse
survey text, run searches and work with sessions.

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead.

Tools:
  parse_questions   Parse Q-coded text
  search_selected   Search selected answers (stateless)
  start_session     Start a session from survey text
  run_session       Search options of a session, skipping satisfied ones
  rerun_result      Search one session result again

Resources:
  halda://audiences
  halda://sessions
  halda://sessions/{sessionId}
  halda://sessions/{sessionId}/copy

Examples:
  halda mcp serve
  halda mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Parser:    questionParser,
		Search:    searchOrchestrator,
		Sessions:  sessionService,
		Audiences: audienceService,
	})
	if err != nil {
		return err
	}

	// Long-running: timestamp log lines.
	logger.SetTimestamps(true)

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(commandContext(cmd), addr)
	}
	return server.Run(commandContext(cmd))
}
