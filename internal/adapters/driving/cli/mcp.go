package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/persona-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/persona-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can ingest
folders and generate personas.

Tools:
  ingest_folder     - per-file extraction outcomes, optionally with text
  generate_persona  - persona document (only when an LLM is configured)

By default the server communicates over stdio using JSON-RPC. Use --port to
serve streamable HTTP instead.

Examples:
  # Stdio mode (default)
  persona mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  persona mcp serve --port 8080`,
	Annotations: map[string]string{annotationNeeds: needStore + "," + needLLM},
	RunE:        runMCPServe,
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

	if ingestService == nil {
		return unavailable("ingest")
	}
	if personaService == nil {
		logger.Warn("LLM not available, generate_persona is disabled: %v", setupErr)
	}

	ports := &mcp.Ports{
		Ingest:      ingestService,
		Persona:     personaService,
		ResolveRoot: resolveRoot,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
