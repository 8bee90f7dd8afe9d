package repl

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/mcalc/foundation/calc"
	mdwerror "github.com/msto63/mcalc/foundation/core/error"
	mdwlog "github.com/msto63/mcalc/foundation/core/log"
	"github.com/msto63/mcalc/internal/history"
)

func newTestModel(t *testing.T, store history.Store) Model {
	t.Helper()
	engine, err := calc.New(calc.Options{Logger: mdwlog.NewNop()})
	if err != nil {
		t.Fatalf("calc.New() error = %v", err)
	}
	return New(Config{Engine: engine, Store: store, Prompt: "> ", HistoryLimit: 10})
}

func typeAndSubmit(t *testing.T, m Model, input string) (Model, tea.Cmd) {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(input)})
	m = updated.(Model)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestModel_EvaluatesInput(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := typeAndSubmit(t, m, "10 + 3 * 5 * 3")
	if cmd != nil {
		t.Error("submit without store returned a command")
	}

	lines := m.Lines()
	if len(lines) != 1 {
		t.Fatalf("Lines() = %d, want 1", len(lines))
	}
	if lines[0].Err != nil || lines[0].Value != 55 {
		t.Errorf("line = %+v, want value 55", lines[0])
	}
	if lines[0].Tokens == "" {
		t.Error("tokens not captured")
	}
	if m.input.Value() != "" {
		t.Errorf("input not reset, got %q", m.input.Value())
	}

	view := m.View()
	if !strings.Contains(view, "= 55") {
		t.Errorf("View() missing result:\n%s", view)
	}
}

func TestModel_ShowsErrorWithCaret(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = typeAndSubmit(t, m, "1 + 3 + 7a + 8")

	line := m.Lines()[0]
	if calc.Kind(line.Err) != calc.KindLex {
		t.Fatalf("Kind() = %s, want lex", calc.Kind(line.Err))
	}
	if line.Position != 9 {
		t.Errorf("Position = %d, want 9", line.Position)
	}

	view := m.View()
	if !strings.Contains(view, "Error: Invalid character at index 9: 'a'") {
		t.Errorf("View() missing error message:\n%s", view)
	}
	if !strings.Contains(view, strings.Repeat(" ", 2+9)+"^") {
		t.Errorf("View() missing caret under position 9:\n%s", view)
	}
}

func TestCaretIndent(t *testing.T) {
	tests := []struct {
		input    string
		position int
		want     int
	}{
		{"1 + 7a", 5, 5},
		{"1\t+\t7a", 5, 11},
		{"\t\ta", 2, 8},
		{"1 +", 3, 3},
		{"1 +", 10, 3},
		{"", 0, 0},
	}

	for _, tt := range tests {
		if got := caretIndent(tt.input, tt.position); got != tt.want {
			t.Errorf("caretIndent(%q, %d) = %d, want %d", tt.input, tt.position, got, tt.want)
		}
	}
}

func TestModel_CaretAlignsAfterTabs(t *testing.T) {
	m := newTestModel(t, nil)
	input := "1\t+\t7a"
	_, err := m.engine.EvaluateString(input)
	if err == nil {
		t.Fatal("EvaluateString() expected error")
	}
	m.lines = append(m.lines, Line{Input: input, Err: err, Position: calc.Position(err)})

	view := m.View()
	if !strings.Contains(view, "> 1    +    7a") {
		t.Errorf("View() did not expand tabs:\n%s", view)
	}
	if !strings.Contains(view, strings.Repeat(" ", 2+11)+"^") {
		t.Errorf("View() caret not under 'a':\n%s", view)
	}
}

func TestModel_RecordsHistory(t *testing.T) {
	store := history.NewMemoryStore()
	m := newTestModel(t, store)

	m, cmd := typeAndSubmit(t, m, "4 / 0")
	if cmd == nil {
		t.Fatal("submit with store returned no command")
	}

	msg := cmd()
	if rec, ok := msg.(recordedMsg); !ok || rec.err != nil {
		t.Fatalf("command returned %#v, want recordedMsg without error", msg)
	}
	updated, _ := m.Update(msg)
	m = updated.(Model)

	entries, _ := store.List(context.Background(), history.Filter{})
	if len(entries) != 1 {
		t.Fatalf("store has %d entries, want 1", len(entries))
	}
	if entries[0].ErrorCode != string(mdwerror.CodeDivisionByZero) || entries[0].Position != 2 {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestModel_InputHistoryNavigation(t *testing.T) {
	store := history.NewMemoryStore()
	ctx := context.Background()
	store.Record(ctx, history.NewEntry("1 + 1", 2, nil))
	store.Record(ctx, history.NewEntry("2 + 2", 4, nil))

	m := newTestModel(t, store)
	updated, _ := m.Update(m.loadHistory())
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	if got := m.input.Value(); got != "2 + 2" {
		t.Errorf("first Up = %q, want 2 + 2", got)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	if got := m.input.Value(); got != "1 + 1" {
		t.Errorf("second Up = %q, want 1 + 1", got)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	if got := m.input.Value(); got != "" {
		t.Errorf("Down past newest = %q, want empty input", got)
	}
}

func TestModel_Commands(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = typeAndSubmit(t, m, "1 + 2")
	m, _ = typeAndSubmit(t, m, ":tokens")
	if !m.showTokens {
		t.Error(":tokens did not enable token display")
	}
	if !strings.Contains(m.View(), "[Number: 1, Symbol: +, Number: 2]") {
		t.Errorf("View() missing tokens:\n%s", m.View())
	}

	m, _ = typeAndSubmit(t, m, ":clear")
	if len(m.Lines()) != 0 {
		t.Errorf(":clear left %d lines", len(m.Lines()))
	}

	m, cmd := typeAndSubmit(t, m, "quit")
	if cmd == nil || !m.quitting {
		t.Fatal("quit did not stop the program")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command did not return tea.QuitMsg")
	}
}

func TestModel_EmptyInputIgnored(t *testing.T) {
	m := newTestModel(t, nil)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd != nil || len(m.Lines()) != 0 {
		t.Error("empty input produced output")
	}
}
