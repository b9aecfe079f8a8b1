// Package mcp exposes documentation retrieval as a Model Context
// Protocol server over stdio.
package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ragtools/docrag"
)

// Version is the MCP server version.
const Version = "0.1.0"

// TopK is the number of chunks returned per query.
const TopK = 3

// Server is the MCP server for documentation queries.
type Server struct {
	index  docrag.IndexService
	logger *slog.Logger
	server *mcp.Server
}

// NewServer creates an MCP server that answers queries from the given index.
func NewServer(index docrag.IndexService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	impl := &mcp.Implementation{
		Name:    "docrag",
		Version: Version,
	}

	s := &Server{
		index:  index,
		logger: logger,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()

	return s
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
