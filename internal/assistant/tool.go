// Package assistant runs a prompt through an AI coding-assistant CLI
// against a repository.
package assistant

import "strings"

// Tool identifies a supported assistant CLI.
type Tool string

const (
	Codex  Tool = "codex"
	Claude Tool = "claude"
)

// AllTools returns all supported tools.
func AllTools() []Tool {
	return []Tool{Codex, Claude}
}

// ToolNames returns the names of all supported tools.
func ToolNames() []string {
	tools := AllTools()
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = string(t)
	}
	return names
}

// ParseTool converts a string to a Tool, returning false if invalid.
func ParseTool(s string) (Tool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "codex":
		return Codex, true
	case "claude":
		return Claude, true
	default:
		return "", false
	}
}

// Binary returns the executable name looked up on PATH.
func (t Tool) Binary() string {
	return string(t)
}
