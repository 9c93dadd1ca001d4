// Package mcp exposes the fact board as MCP (Model Context Protocol) tools.
package mcp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/factboard/pkg/board"
	"github.com/papercomputeco/factboard/pkg/eventstream"
	"github.com/papercomputeco/factboard/pkg/eventstream/nop"
	"github.com/papercomputeco/factboard/pkg/utils"
)

type Config struct {
	// Collection is the facts collection the tools read and write.
	Collection board.Collection

	// Publisher receives fact submitted events from add_fact. Optional.
	Publisher eventstream.Publisher

	// Target is the collection URL recorded in fact events.
	Target string

	// Logger is the configured logger
	Logger *slog.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the fact tools.
func NewServer(c Config) (*Server, error) {
	if c.Collection == nil {
		return nil, errors.New("collection is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if c.Publisher == nil {
		c.Publisher = nop.NewPublisher()
	}

	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "factboard",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        listFactsToolName,
		Description: listFactsDescription,
	}, s.handleListFacts)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        addFactToolName,
		Description: addFactDescription,
	}, s.handleAddFact)

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// MCPServer returns the underlying MCP server, for in-process transports.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcpServer
}
