// Package runner runs external commands (git, codex, claude, init scripts)
// behind a CommandRunner interface so callers can be exercised with a
// recording fake instead of real binaries.
package runner
