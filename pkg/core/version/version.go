// ============================================================================
// mcalc - Integer Expression Calculator
// ============================================================================
//
// Package:     version
// Description: Central version management for application and components
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants for mcalc components
const (
	// Application version
	App = "0.1.0"

	// Component versions
	Engine  = "0.1.0"
	Config  = "0.1.0"
	History = "0.1.0"
	Repl    = "0.1.0"

	// HistorySchema is stored as the SQLite user_version of the history database
	HistorySchema = 1
)

// Components lists the component names known to ComponentVersion
var Components = []string{"engine", "config", "history", "repl"}

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "engine":
		return Engine
	case "config":
		return Config
	case "history":
		return fmt.Sprintf("%s (schema %d)", History, HistorySchema)
	case "repl":
		return Repl
	default:
		return App
	}
}
