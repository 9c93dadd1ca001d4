// Package board embeds the widget page template.
package board

import "embed"

//go:embed index.html.tmpl
var FS embed.FS

// PageTemplate is the name of the widget page inside FS.
const PageTemplate = "index.html.tmpl"
