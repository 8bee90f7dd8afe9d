// ============================================================================
// mcalc - Integer Expression Calculator
// ============================================================================
//
// Package:     repl
// Description: Bubbletea model for the interactive calculator
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package repl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/mcalc/foundation/calc"
	"github.com/msto63/mcalc/foundation/calc/token"
	"github.com/msto63/mcalc/internal/history"
)

const (
	maxInputHistory = 100
	tabWidth        = 4
)

// Config holds REPL configuration
type Config struct {
	Engine       *calc.Engine  // required
	Store        history.Store // optional
	Prompt       string
	ShowTokens   bool
	HistoryLimit int // previous inputs preloaded for Up/Down navigation
}

// Model is the Bubbletea model for the REPL
type Model struct {
	// State
	width      int
	height     int
	showTokens bool
	quitting   bool
	err        error

	// Components
	input textinput.Model

	// Scrollback
	lines []Line

	// Input history
	inputHistory []string
	historyIndex int    // -1 = new input
	currentInput string // input being edited before navigating

	// Collaborators
	engine       *calc.Engine
	store        history.Store
	prompt       string
	historyLimit int
}

// New creates a new REPL model
func New(cfg Config) Model {
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}

	ti := textinput.New()
	ti.Prompt = cfg.Prompt
	ti.PromptStyle = PromptStyle
	ti.Placeholder = "10 + 3 * 5"
	ti.CharLimit = cfg.Engine.MaxInputLength()
	ti.Focus()

	return Model{
		width:        80,
		height:       24,
		showTokens:   cfg.ShowTokens,
		input:        ti,
		historyIndex: -1,
		engine:       cfg.Engine,
		store:        cfg.Store,
		prompt:       cfg.Prompt,
		historyLimit: cfg.HistoryLimit,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.loadHistory,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - lipgloss.Width(m.prompt) - 4
		return m, nil

	case recordedMsg:
		m.err = msg.err
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		// Entries arrive newest first
		for i := len(msg.entries) - 1; i >= 0; i-- {
			m.pushInputHistory(msg.entries[i].Input)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyCtrlL:
		m.lines = nil
		return m, nil

	case tea.KeyCtrlT:
		m.showTokens = !m.showTokens
		return m, nil

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyUp:
		if len(m.inputHistory) > 0 {
			if m.historyIndex == -1 {
				m.currentInput = m.input.Value()
				m.historyIndex = len(m.inputHistory) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.input.SetValue(m.inputHistory[m.historyIndex])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.historyIndex != -1 {
			if m.historyIndex < len(m.inputHistory)-1 {
				m.historyIndex++
				m.input.SetValue(m.inputHistory[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.input.SetValue(m.currentInput)
			}
			m.input.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit evaluates the current input and appends it to the scrollback
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := m.input.Value()
	trimmed := strings.TrimSpace(input)
	m.input.Reset()
	m.historyIndex = -1
	m.currentInput = ""

	switch trimmed {
	case "":
		return m, nil
	case "quit", "exit", ":q":
		m.quitting = true
		return m, tea.Quit
	case ":tokens":
		m.showTokens = !m.showTokens
		return m, nil
	case ":clear":
		m.lines = nil
		return m, nil
	}

	m.pushInputHistory(trimmed)

	value, err := m.engine.EvaluateString(input)
	line := Line{
		Input:    input,
		Value:    value,
		Err:      err,
		Position: -1,
	}
	if err != nil {
		line.Position = calc.Position(err)
	}
	if kind := calc.Kind(err); kind != calc.KindLex && kind != calc.KindInput {
		if tokens, lexErr := m.engine.Lex(input); lexErr == nil {
			line.Tokens = token.Format(tokens)
		}
	}
	m.lines = append(m.lines, line)

	if m.store == nil {
		return m, nil
	}
	return m, m.record(history.NewEntry(input, value, err))
}

func (m *Model) pushInputHistory(input string) {
	if n := len(m.inputHistory); n > 0 && m.inputHistory[n-1] == input {
		return
	}
	m.inputHistory = append(m.inputHistory, input)
	if len(m.inputHistory) > maxInputHistory {
		m.inputHistory = m.inputHistory[len(m.inputHistory)-maxInputHistory:]
	}
}

func (m Model) record(entry *history.Entry) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return recordedMsg{err: store.Record(ctx, entry)}
	}
}

func (m Model) loadHistory() tea.Msg {
	if m.store == nil || m.historyLimit <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries, err := m.store.List(ctx, history.Filter{Limit: m.historyLimit})
	return historyLoadedMsg{entries: entries, err: err}
}

// Lines returns the scrollback
func (m Model) Lines() []Line {
	return m.lines
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(LogoStyle.Render("mcalc"))
	b.WriteString(" ")
	b.WriteString(SubHeaderStyle.Render("integer expressions with + - * /"))
	b.WriteString("\n\n")

	if len(m.lines) > 0 {
		b.WriteString(ScrollbackStyle.Width(max(m.width-2, 20)).Render(m.renderScrollback()))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter evaluate • ↑/↓ history • ctrl+t tokens • ctrl+l clear • esc quit"))

	return b.String()
}

func (m Model) renderScrollback() string {
	// Each line renders at most four rows; keep what fits on screen
	visible := max((m.height-8)/2, 1)
	lines := m.lines
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}

	rows := make([]string, 0, len(lines)*3)
	promptWidth := lipgloss.Width(m.prompt)
	for _, line := range lines {
		rows = append(rows, InputLineStyle.Render(m.prompt+expandTabs(line.Input)))
		if line.Err != nil {
			if line.Position >= 0 {
				indent := promptWidth + caretIndent(line.Input, line.Position)
				rows = append(rows, strings.Repeat(" ", indent)+CaretStyle.Render("^"))
			}
			rows = append(rows, ErrorStyle.Render("Error: "+calc.Message(line.Err)))
		} else {
			rows = append(rows, ValueStyle.Render(fmt.Sprintf("= %d", line.Value)))
		}
		if m.showTokens && line.Tokens != "" {
			rows = append(rows, TokensStyle.Render(line.Tokens))
		}
	}
	return strings.Join(rows, "\n")
}

// expandTabs replaces tabs so the input and its caret row line up
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// caretIndent returns the display width of input before the character at
// position. Positions past the end point just behind the last character.
func caretIndent(input string, position int) int {
	runes := []rune(input)
	if position > len(runes) {
		position = len(runes)
	}
	return lipgloss.Width(expandTabs(string(runes[:position])))
}

func (m Model) renderStatusBar() string {
	if m.err != nil {
		return StatusErrorStyle.Render("history: " + m.err.Error())
	}

	failed := 0
	for _, line := range m.lines {
		if line.Err != nil {
			failed++
		}
	}
	status := fmt.Sprintf("%d evaluated, %d failed", len(m.lines), failed)
	if m.showTokens {
		status += " • tokens on"
	}
	if m.store != nil {
		status += " • history on"
	}
	return StatusBarStyle.Render(status)
}

// Run starts the REPL
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg))
	_, err := p.Run()
	return err
}
