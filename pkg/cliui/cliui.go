// Package cliui holds the lipgloss styles and the progress line shared by
// the factboard commands.
package cliui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	KeyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true)
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	failMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

// Same dot frames the board TUI spinner uses.
var frames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

const frameInterval = 80 * time.Millisecond

// Step runs fn behind a one-line spinner labelled msg. When fn returns the
// line is rewritten with its outcome and how long it took, and fn's error
// is handed back unchanged.
func Step(w io.Writer, msg string, fn func() error) error {
	stop := make(chan struct{})
	spun := make(chan struct{})

	go func() {
		defer close(spun)
		tick := time.NewTicker(frameInterval)
		defer tick.Stop()

		for i := 0; ; i++ {
			fmt.Fprintf(w, "\r  %s %s", spinnerStyle.Render(frames[i%len(frames)]), msg)
			select {
			case <-stop:
				return
			case <-tick.C:
			}
		}
	}()

	started := time.Now()
	err := fn()
	took := time.Since(started)

	// The spinner goroutine owns w until it has exited.
	close(stop)
	<-spun

	mark := SuccessMark
	if err != nil {
		mark = failMark
	}
	fmt.Fprintf(w, "\r  %s %s %s\n", mark, msg, DimStyle.Render("("+elapsed(took)+")"))
	return err
}

func elapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
