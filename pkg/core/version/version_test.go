package version

import (
	"regexp"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"App", App},
		{"Engine", Engine},
		{"Config", Config},
		{"History", History},
		{"Repl", Repl},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}

	if HistorySchema < 1 {
		t.Errorf("HistorySchema = %d, want >= 1", HistorySchema)
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		name      string
		component string
		expected  string
	}{
		{"engine", "engine", Engine},
		{"config", "config", Config},
		{"repl", "repl", Repl},
		{"unknown component", "unknown", App},
		{"empty component", "", App},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComponentVersion(tt.component); got != tt.expected {
				t.Errorf("ComponentVersion(%q) = %q, want %q", tt.component, got, tt.expected)
			}
		})
	}

	if got := ComponentVersion("history"); !strings.HasPrefix(got, History+" (schema ") {
		t.Errorf("ComponentVersion(history) = %q", got)
	}
}
