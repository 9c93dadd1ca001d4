package render

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/papercomputeco/factboard/pkg/fact"
)

var (
	indexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	textStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// EmptyMessage is shown by the terminal renderer for an empty collection.
const EmptyMessage = "No facts yet."

// Terminal renders one numbered line per fact for a terminal display.
type Terminal struct {
	// Width wraps long facts when positive.
	Width int
}

// NewTerminal returns a terminal renderer wrapping at width columns
// (0 disables wrapping).
func NewTerminal(width int) Terminal {
	return Terminal{Width: width}
}

// Render returns the styled lines for facts, in order.
func (t Terminal) Render(facts []fact.Fact) string {
	if len(facts) == 0 {
		return emptyStyle.Render(EmptyMessage)
	}

	pad := len(fmt.Sprint(len(facts)))
	lines := make([]string, 0, len(facts))
	for i, f := range facts {
		prefix := indexStyle.Render(fmt.Sprintf("%*d.", pad, i+1))
		text := textStyle
		if t.Width > pad+2 {
			text = text.Width(t.Width - pad - 2)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, prefix, " ", text.Render(SanitizeTerminal(f.Text))))
	}

	return strings.Join(lines, "\n")
}

// SanitizeTerminal removes control characters (escape sequences included)
// so remote text cannot drive the terminal. Line breaks and tabs become
// spaces.
func SanitizeTerminal(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
}
