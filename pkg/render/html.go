// Package render turns a list of facts into the content of a display surface.
//
// Fact text comes from a remote backend and is treated as untrusted: every
// renderer escapes it for its own surface before insertion.
package render

import (
	"html/template"
	"strings"

	"github.com/papercomputeco/factboard/pkg/fact"
)

// BlockClass is the fixed style of the container wrapping each fact.
const BlockClass = "bg-gray-800 p-3 rounded"

var blocksTmpl = template.Must(template.New("blocks").Parse(
	`{{range .}}<div class="` + BlockClass + `">{{.Text}}</div>{{end}}`,
))

// HTML renders one <div> block per fact, concatenated with no separator.
type HTML struct{}

// NewHTML returns the HTML block renderer.
func NewHTML() HTML {
	return HTML{}
}

// Render returns the markup for facts in the given order. The result is
// already escaped and safe to embed as-is.
func (HTML) Render(facts []fact.Fact) string {
	var sb strings.Builder
	// Executing a constant template over plain strings into a Builder cannot fail.
	_ = blocksTmpl.Execute(&sb, facts)
	return sb.String()
}

// Fragment is Render typed for html/template pages.
func (h HTML) Fragment(facts []fact.Fact) template.HTML {
	// #nosec G203 -- every fact text was escaped by blocksTmpl.
	return template.HTML(h.Render(facts))
}
