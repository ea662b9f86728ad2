package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ompugao/bwenv/internal/mcp"
	"github.com/ompugao/bwenv/pkg/rbw"
)

func init() {
	rootCmd.AddCommand(mcpServerCmd)
}

// mcpServerCmd starts the MCP server for AI coding assistant integration
var mcpServerCmd = &cobra.Command{
	Use:   "mcp-server",
	Short: "Start the MCP server for AI coding assistant integration",
	Long: `Start the MCP server that lets AI coding assistants manage bwenv
namespaces.

The server implements the Model Context Protocol (MCP) over stdio
transport. Vault access goes through the rbw agent, so unlock the vault
before starting the server; the server itself never prompts.

Available tools:
  - namespace_list:   List namespace names (no values)
  - namespace_get:    Get the dotenv content of a namespace
  - namespace_set:    Create or replace a namespace
  - namespace_delete: Delete a namespace

Example MCP configuration for Claude Code (~/.claude.json):
  {
    "mcpServers": {
      "bwenv": {
        "type": "stdio",
        "command": "/path/to/bwenv",
        "args": ["mcp-server"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer()
	},
}

func runMCPServer() error {
	// Spinner output would corrupt the stdio transport
	serverClient := rbw.New(
		rbw.WithRunner(rbw.NewRunner(cfg.RBW)),
		rbw.WithSpinner(false),
	)
	server := mcp.NewServer(serverClient, cfg.Folder)

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	if err := server.Run(ctx); err != nil {
		// Don't report context canceled as an error
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
