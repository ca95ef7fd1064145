package assistant

import (
	"os"
	"strings"

	"github.com/agentx-labs/agentboot/internal/platform"
)

// DefaultAllowedTools is the Claude tool allow-list used unless disabled.
const DefaultAllowedTools = "Read,Edit,Bash"

// Invocation is a fully built assistant command.
type Invocation struct {
	Name  string
	Args  []string
	Dir   string // working directory, empty for the current one
	Stdin string // written to the process's stdin when non-empty
}

// CodexOptions holds the codex-specific flags.
type CodexOptions struct {
	OutputLastMessage string
	FullAuto          bool
}

// ClaudeOptions holds the claude-specific flags.
type ClaudeOptions struct {
	// SystemPromptFile is appended to the system prompt when it exists.
	SystemPromptFile string
	// AllowedTools restricts headless tool use unless NoAllowedTools is set.
	// It must not be blank then; callers start from DefaultAllowedTools.
	AllowedTools   string
	NoAllowedTools bool
}

// BuildCodex returns `codex exec -C <repo> - [--output-last-message p]
// [--full-auto]` with the prompt on stdin.
func BuildCodex(repoDir, prompt string, opts CodexOptions) Invocation {
	args := []string{"exec", "-C", repoDir, "-"}
	if opts.OutputLastMessage != "" {
		args = append(args, "--output-last-message", opts.OutputLastMessage)
	}
	if opts.FullAuto {
		args = append(args, "--full-auto")
	}
	return Invocation{Name: Codex.Binary(), Args: args, Stdin: prompt}
}

// BuildClaude returns `claude -p [--append-system-prompt-file <abs>]
// [--allowedTools <list>] <prompt>`, run inside repoDir. The system prompt
// path is resolved to an absolute path and only passed when it exists.
func BuildClaude(repoDir, prompt string, opts ClaudeOptions) Invocation {
	args := []string{"-p"}
	if opts.SystemPromptFile != "" {
		if abs, err := platform.AbsPath(opts.SystemPromptFile); err == nil {
			if info, err := os.Stat(abs); err == nil && !info.IsDir() {
				args = append(args, "--append-system-prompt-file", abs)
			}
		}
	}
	if !opts.NoAllowedTools {
		args = append(args, "--allowedTools", strings.TrimSpace(opts.AllowedTools))
	}
	args = append(args, prompt)
	return Invocation{Name: Claude.Binary(), Args: args, Dir: repoDir}
}
