package widget

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/papercomputeco/factboard/pkg/board"
	"github.com/papercomputeco/factboard/pkg/eventstream/nop"
	boardweb "github.com/papercomputeco/factboard/web/board"
	widgetmcp "github.com/papercomputeco/factboard/widget/mcp"
)

const defaultTitle = "The Abyss"

// Server is the widget server.
type Server struct {
	config     Config
	collection board.Collection
	logger     *slog.Logger
	page       *template.Template
	app        *fiber.App
}

// NewServer creates a new widget server over collection.
func NewServer(config Config, collection board.Collection, logger *slog.Logger) (*Server, error) {
	if collection == nil {
		return nil, errors.New("collection is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if config.Title == "" {
		config.Title = defaultTitle
	}
	if config.Publisher == nil {
		config.Publisher = nop.NewPublisher()
	}

	page, err := template.ParseFS(boardweb.FS, boardweb.PageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	s := &Server{
		config:     config,
		collection: collection,
		logger:     logger,
		page:       page,
		app:        app,
	}

	app.Get("/ping", s.handlePing)
	app.Get("/", s.handleIndex)
	app.Get("/facts/fragment", s.handleFragment)
	app.Post("/facts/submit", s.handleSubmit)

	if config.MCP {
		mcpServer, err := widgetmcp.NewServer(widgetmcp.Config{
			Collection: collection,
			Publisher:  config.Publisher,
			Target:     config.Target,
			Logger:     logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating MCP server: %w", err)
		}
		app.All("/mcp", adaptor.HTTPHandler(mcpServer.Handler()))
	}

	return s, nil
}

// newBoard builds a request scoped board around display and input.
func (s *Server) newBoard(display board.Display, input board.Input) (*board.Board, error) {
	return board.New(s.collection, display, input,
		board.WithName("widget"),
		board.WithTarget(s.config.Target),
		board.WithPublisher(s.config.Publisher),
		board.WithLogger(s.logger),
	)
}

// Handler exposes the server as a net/http handler.
func (s *Server) Handler() http.Handler {
	return adaptor.FiberApp(s.app)
}

// Run starts the widget server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting widget server",
		"listen", s.config.ListenAddr,
		"target", s.config.Target,
		"mcp", s.config.MCP,
	)
	return s.app.Listen(s.config.ListenAddr)
}

// RunWithListener starts the widget server on ln.
func (s *Server) RunWithListener(ln net.Listener) error {
	s.logger.Info("starting widget server",
		"listen", ln.Addr().String(),
		"target", s.config.Target,
		"mcp", s.config.MCP,
	)
	return s.app.Listener(ln)
}

// Shutdown gracefully shuts down the widget server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// ShutdownWithContext shuts down the widget server, giving up when ctx ends.
func (s *Server) ShutdownWithContext(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
