// ============================================================================
// pl2 - Embeddable Command Language Engine
// ============================================================================
//
// Package:     repl
// Description: Bubbletea model of the interactive pl2 shell
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package repl

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	mdwstringx "github.com/msto63/pl2/foundation/utils/stringx"
)

// Runner executes one submitted line
type Runner interface {
	Run(ctx context.Context, line string) (output string, warnings []string, err error)
}

// Config holds REPL configuration
type Config struct {
	Runner  Runner
	Title   string
	Prompt  string
	History int
}

// DefaultConfig returns default configuration
func DefaultConfig(runner Runner) Config {
	return Config{
		Runner:  runner,
		Title:   "pl2",
		Prompt:  "> ",
		History: 100,
	}
}

// resultMsg carries the outcome of one line
type resultMsg struct {
	line     string
	output   string
	warnings []string
	err      error
}

// Model is the Bubbletea model of the REPL
type Model struct {
	// State
	width   int
	height  int
	ready   bool
	running bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Transcript and history
	transcript []string
	history    []string
	cursor     int

	// Stats
	runs   int
	failed int

	cfg Config
}

// New creates a new REPL model
func New(cfg Config) Model {
	cfg.Title = mdwstringx.FirstNonBlank(cfg.Title, "pl2")
	cfg.Prompt = mdwstringx.FirstNonBlank(cfg.Prompt, "> ")
	if cfg.History <= 0 {
		cfg.History = 100
	}

	input := textinput.New()
	input.Prompt = cfg.Prompt
	input.Placeholder = "echo hello; set name value; vars"
	input.CharLimit = 4096
	input.Width = 60
	input.Focus()

	return Model{input: input, cfg: cfg}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyUp:
			m.recall(-1)
			return m, nil
		case tea.KeyDown:
			m.recall(1)
			return m, nil
		case tea.KeyCtrlL:
			m.transcript = nil
			m.refresh()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // Title
		footerHeight := 3 // Input + status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - len(m.cfg.Prompt) - 1
		m.refresh()

	case resultMsg:
		m.running = false
		m.runs++
		if msg.output != "" {
			for _, line := range mdwstringx.SplitLines(msg.output) {
				m.transcript = append(m.transcript, OutputStyle.Render(m.clip(line)))
			}
		}
		for _, w := range msg.warnings {
			m.transcript = append(m.transcript, WarningStyle.Render(m.clip(w)))
		}
		if msg.err != nil {
			m.failed++
			m.transcript = append(m.transcript, ErrorStyle.Render(m.clip(msg.err.Error())))
		}
		m.refresh()
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit runs the current input line
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" || m.running {
		return m, nil
	}
	m.input.Reset()

	switch line {
	case ":quit", ":q":
		return m, tea.Quit
	case ":clear":
		m.transcript = nil
		m.refresh()
		return m, nil
	}

	m.history = append(m.history, line)
	if len(m.history) > m.cfg.History {
		m.history = m.history[len(m.history)-m.cfg.History:]
	}
	m.cursor = len(m.history)

	m.transcript = append(m.transcript, InputEchoStyle.Render(m.clip(m.cfg.Prompt+line)))
	m.refresh()

	if m.cfg.Runner == nil {
		return m, nil
	}
	m.running = true
	runner := m.cfg.Runner
	return m, func() tea.Msg {
		output, warnings, err := runner.Run(context.Background(), line)
		return resultMsg{line: line, output: output, warnings: warnings, err: err}
	}
}

// recall moves through the input history
func (m *Model) recall(delta int) {
	if len(m.history) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.history) {
		m.cursor = len(m.history)
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.cursor])
	m.input.CursorEnd()
}

// clip cuts a transcript line to the viewport width
func (m Model) clip(line string) string {
	if !m.ready || m.viewport.Width <= 0 {
		return line
	}
	return mdwstringx.Truncate(line, m.viewport.Width, "…")
}

// refresh puts the transcript into the viewport
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
}

// Transcript returns the rendered transcript lines
func (m Model) Transcript() []string { return m.transcript }

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Starting REPL..."
	}

	var b strings.Builder
	b.WriteString(LogoStyle.Render(m.cfg.Title))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter run | up/down history | ctrl+l clear | esc quit"))
	return b.String()
}

func (m Model) renderStatusBar() string {
	state := StatusOKStyle.Render("ready")
	if m.running {
		state = WarningStyle.Render("running")
	}
	return StatusBarStyle.Render(fmt.Sprintf("%s  runs: %d  failed: %d", state, m.runs, m.failed))
}

// Run starts the REPL in the terminal
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
