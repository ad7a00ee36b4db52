// ABOUTME: MCP server setup over stdio
// ABOUTME: Wires tools and resources to the data store

package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/studyhub/studyhub/internal/store"
)

// Server exposes study data to AI agents over MCP.
type Server struct {
	mcp   *mcp.Server
	store *store.Store
}

// NewServer creates an MCP server backed by the given store.
func NewServer(s *store.Store) (*Server, error) {
	if s == nil {
		return nil, errors.New("store is required")
	}

	srv := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "studyhub",
			Version: "1.0.0",
		}, nil),
		store: s,
	}

	srv.registerTools()
	srv.registerResources()

	return srv, nil
}

// Serve runs the server on stdio until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
