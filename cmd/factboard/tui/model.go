package tuicmder

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/papercomputeco/factboard/pkg/board"
	"github.com/papercomputeco/factboard/pkg/dotdir"
	"github.com/papercomputeco/factboard/pkg/render"
)

func init() {
	// Force TrueColor profile to fix lipgloss color detection issue
	// See: https://github.com/charmbracelet/lipgloss/issues/439
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.TrueColor))
	renderer.SetColorProfile(termenv.TrueColor)
	lipgloss.SetDefaultRenderer(renderer)
}

const (
	boardTitle = "The Abyss"

	// chrome is the number of lines around the facts viewport: title,
	// blank, input, blank, status, help.
	chrome = 6
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type keyMap struct {
	Submit key.Binding
	Reload key.Binding
	Scroll key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Reload, k.Scroll, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Reload}, {k.Scroll, k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Reload: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Scroll: key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

type loadedMsg struct {
	err error
}

type submittedMsg struct {
	err error
}

// boardModel hosts a board: the viewport shows the display surface and the
// text input mirrors the input surface.
type boardModel struct {
	ctx     context.Context
	board   *board.Board
	display *board.Buffer
	field   *board.Field

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap

	busy   bool
	status string
	err    error
	width  int
	height int
}

func newBoardModel(ctx context.Context, b *board.Board, display *board.Buffer, field *board.Field, draft *dotdir.Draft) boardModel {
	input := textinput.New()
	input.Placeholder = "Drop a fact into the abyss"
	input.Prompt = "› "
	input.Focus()

	m := boardModel{
		ctx:      ctx,
		board:    b,
		display:  display,
		field:    field,
		input:    input,
		viewport: viewport.New(80, 10),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:     help.New(),
		keys:     defaultKeyMap(),
		busy:     true,
		status:   "Loading facts",
	}

	if draft != nil {
		m.input.SetValue(draft.Text)
		m.status = "Restored unsent draft"
	}

	return m
}

func (m boardModel) Init() bubbletea.Cmd {
	return bubbletea.Batch(textinput.Blink, m.spinner.Tick, m.loadCmd())
}

func (m boardModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chrome, 1)
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case loadedMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.status = ""
			m.viewport.SetContent(m.display.String())
		}
		return m, nil

	case submittedMsg:
		m.busy = false
		m.err = msg.err
		// The board clears the field only when the fact was accepted.
		m.input.SetValue(m.field.Value())
		m.viewport.SetContent(m.display.String())
		if msg.err == nil {
			m.status = "Fact submitted"
			m.viewport.GotoBottom()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd bubbletea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bubbletea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd bubbletea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m boardModel) handleKey(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, bubbletea.Quit

	case key.Matches(msg, m.keys.Submit):
		if m.busy {
			return m, nil
		}
		m.field.Set(m.input.Value())
		m.busy = true
		m.err = nil
		m.status = "Submitting fact"
		return m, m.submitCmd()

	case key.Matches(msg, m.keys.Reload):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.err = nil
		m.status = "Loading facts"
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.Scroll):
		var cmd bubbletea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd bubbletea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m boardModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(boardTitle))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.viewStatus())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

func (m boardModel) viewStatus() string {
	switch {
	case m.busy:
		return m.spinner.View() + " " + mutedStyle.Render(m.status)
	case m.err != nil:
		return errorStyle.Render(render.SanitizeTerminal(m.err.Error()))
	case m.status != "":
		return statusStyle.Render(m.status)
	default:
		return ""
	}
}

func (m boardModel) loadCmd() bubbletea.Cmd {
	b, ctx := m.board, m.ctx
	return func() bubbletea.Msg {
		return loadedMsg{err: b.Load(ctx)}
	}
}

func (m boardModel) submitCmd() bubbletea.Cmd {
	b, ctx := m.board, m.ctx
	return func() bubbletea.Msg {
		return submittedMsg{err: b.Submit(ctx)}
	}
}
