// Package widget serves the fact board as a server-rendered HTML page.
//
// Every page view builds its own board over the shared collection: the list
// container is the display surface and the posted form field is the input
// surface.
package widget

import "github.com/papercomputeco/factboard/pkg/eventstream"

// Config is the widget server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string

	// Title is shown in the page heading.
	Title string

	// Target is the collection URL recorded in fact events.
	Target string

	// Publisher receives fact submitted events. Optional.
	Publisher eventstream.Publisher

	// MCP enables the /mcp endpoint.
	MCP bool
}
