// ============================================================================
// mcalc - Integer Expression Calculator
// ============================================================================
//
// Package:     repl
// Description: Scrollback lines and message types for async operations
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package repl

import (
	"github.com/msto63/mcalc/internal/history"
)

// Line is one evaluated input in the scrollback
type Line struct {
	Input    string
	Value    int
	Err      error
	Tokens   string
	Position int // character index of the error, -1 if none
}

// recordedMsg is sent when an evaluation was written to the history store
type recordedMsg struct {
	err error
}

// historyLoadedMsg is sent when previous inputs were read from the store
type historyLoadedMsg struct {
	entries []*history.Entry
	err     error
}
