package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ompugao/bwenv/internal/envfile"
	"github.com/ompugao/bwenv/internal/namespace"
)

// NamespaceListInput represents input for the namespace_list tool.
type NamespaceListInput struct{}

// NamespaceListOutput represents output for the namespace_list tool.
type NamespaceListOutput struct {
	Folder string   `json:"folder"`
	Names  []string `json:"names"`
}

// NamespaceGetInput represents input for the namespace_get tool.
type NamespaceGetInput struct {
	Name string `json:"name"`
}

// NamespaceGetOutput represents output for the namespace_get tool.
type NamespaceGetOutput struct {
	Exists  bool   `json:"exists"`
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
}

// NamespaceSetInput represents input for the namespace_set tool.
type NamespaceSetInput struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// NamespaceSetOutput represents output for the namespace_set tool.
type NamespaceSetOutput struct {
	Name    string `json:"name"`
	Created bool   `json:"created"`
}

// NamespaceDeleteInput represents input for the namespace_delete tool.
type NamespaceDeleteInput struct {
	Name string `json:"name"`
}

// NamespaceDeleteOutput represents output for the namespace_delete tool.
type NamespaceDeleteOutput struct {
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

// handleNamespaceList handles the namespace_list tool call.
func (s *Server) handleNamespaceList(_ context.Context, _ *mcp.CallToolRequest, _ NamespaceListInput) (*mcp.CallToolResult, NamespaceListOutput, error) {
	names, err := s.client.ListNamespaces(s.folder)
	if err != nil {
		return nil, NamespaceListOutput{}, fmt.Errorf("failed to list namespaces: %w", err)
	}
	return nil, NamespaceListOutput{Folder: s.folder, Names: names}, nil
}

// handleNamespaceGet handles the namespace_get tool call.
func (s *Server) handleNamespaceGet(_ context.Context, _ *mcp.CallToolRequest, input NamespaceGetInput) (*mcp.CallToolResult, NamespaceGetOutput, error) {
	name := namespace.Normalize(input.Name)
	if err := namespace.Validate(name); err != nil {
		return nil, NamespaceGetOutput{}, err
	}

	item, err := s.client.GetItem(name, s.folder)
	if err != nil {
		return nil, NamespaceGetOutput{}, fmt.Errorf("failed to get namespace: %w", err)
	}
	if item == nil {
		return nil, NamespaceGetOutput{Exists: false, Name: name}, nil
	}
	return nil, NamespaceGetOutput{Exists: true, Name: name, Content: item.Notes}, nil
}

// handleNamespaceSet handles the namespace_set tool call.
func (s *Server) handleNamespaceSet(_ context.Context, _ *mcp.CallToolRequest, input NamespaceSetInput) (*mcp.CallToolResult, NamespaceSetOutput, error) {
	name := namespace.Normalize(input.Name)
	if err := namespace.Validate(name); err != nil {
		return nil, NamespaceSetOutput{}, err
	}

	vars, err := envfile.Parse([]byte(input.Content))
	if err != nil {
		return nil, NamespaceSetOutput{}, err
	}
	if err := envfile.Validate(vars); err != nil {
		return nil, NamespaceSetOutput{}, err
	}

	created, err := namespace.Upsert(s.client, name, s.folder, input.Content)
	if err != nil {
		return nil, NamespaceSetOutput{}, fmt.Errorf("failed to store namespace: %w", err)
	}
	return nil, NamespaceSetOutput{Name: name, Created: created}, nil
}

// handleNamespaceDelete handles the namespace_delete tool call.
func (s *Server) handleNamespaceDelete(_ context.Context, _ *mcp.CallToolRequest, input NamespaceDeleteInput) (*mcp.CallToolResult, NamespaceDeleteOutput, error) {
	name := namespace.Normalize(input.Name)
	if err := namespace.Validate(name); err != nil {
		return nil, NamespaceDeleteOutput{}, err
	}

	if err := s.client.DeleteItem(name, s.folder); err != nil {
		return nil, NamespaceDeleteOutput{}, fmt.Errorf("failed to delete namespace: %w", err)
	}
	return nil, NamespaceDeleteOutput{Name: name, Deleted: true}, nil
}
