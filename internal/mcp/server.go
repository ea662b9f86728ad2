// Package mcp implements the MCP (Model Context Protocol) server that
// exposes bwenv namespaces to AI coding assistants over stdio.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ompugao/bwenv/internal/namespace"
)

// Server is the MCP server for bwenv.
type Server struct {
	server *mcp.Server
	client namespace.Client
	folder string
}

// NewServer creates an MCP server operating on the given folder. The
// caller supplies the vault client; for real use that is an *rbw.Client
// with the spinner disabled, since stderr is the transport's log channel.
func NewServer(client namespace.Client, folder string) *Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "bwenv",
			Version: "0.2.0",
		},
		nil,
	)

	s := &Server{
		server: mcpServer,
		client: client,
		folder: folder,
	}
	s.registerTools()
	return s
}

// registerTools registers all MCP tools with the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "namespace_list",
		Description: "List all env-var namespace names stored in the Bitwarden folder. Does NOT return variable values.",
	}, s.handleNamespaceList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "namespace_get",
		Description: "Get the dotenv-format content of a namespace. Returns exists=false when the namespace does not exist.",
	}, s.handleNamespaceGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "namespace_set",
		Description: "Create or replace a namespace with the given dotenv-format content. Content is validated before writing.",
	}, s.handleNamespaceSet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "namespace_delete",
		Description: "Delete a namespace from the Bitwarden folder.",
	}, s.handleNamespaceDelete)
}

// Run starts the MCP server using stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
