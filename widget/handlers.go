package widget

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/factboard/pkg/board"
)

// pageData feeds the page template.
type pageData struct {
	Title string

	// Facts is the display surface content, already escaped.
	Facts template.HTML

	// Value is the input surface content.
	Value string

	Error string
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleIndex loads the board and renders the full page.
func (s *Server) handleIndex(c *fiber.Ctx) error {
	display := board.NewBuffer()
	input := board.NewField("")

	b, err := s.newBoard(display, input)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	data := pageData{Title: s.config.Title}
	if err := b.Start(c.Context()); err != nil {
		status = fiber.StatusBadGateway
		data.Error = "Could not load facts. Try again in a moment."
	}

	data.Facts = safeHTML(display)
	return s.renderPage(c, status, data)
}

// handleFragment returns only the rendered list, for clients that refresh
// the list container in place.
func (s *Server) handleFragment(c *fiber.Ctx) error {
	display := board.NewBuffer()

	b, err := s.newBoard(display, board.NewField(""))
	if err != nil {
		return err
	}

	if err := b.Load(c.Context()); err != nil {
		return c.Status(fiber.StatusBadGateway).SendString("could not load facts")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(display.String())
}

// handleSubmit submits the posted text. A successful submission redirects
// back to the page so a browser refresh does not repost the form.
func (s *Server) handleSubmit(c *fiber.Ctx) error {
	display := board.NewBuffer()
	input := board.NewField(c.FormValue("text"))

	b, err := s.newBoard(display, input)
	if err != nil {
		return err
	}

	if err := b.Submit(c.Context()); err != nil {
		// The request owns a fresh display; fill it so the page still lists
		// the collection next to the error.
		_ = b.Load(c.Context())
		return s.renderPage(c, fiber.StatusBadGateway, pageData{
			Title: s.config.Title,
			Facts: safeHTML(display),
			Value: input.Value(),
			Error: "Could not submit the fact. Try again in a moment.",
		})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

func (s *Server) renderPage(c *fiber.Ctx, status int, data pageData) error {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error("failed to render page", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render page")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// safeHTML marks the display content as trusted markup. The board renders
// with render.HTML, which escapes every fact.
func safeHTML(display *board.Buffer) template.HTML {
	// #nosec G203 -- content produced by the escaping block renderer.
	return template.HTML(display.String())
}
