package assistant

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/agentx-labs/agentboot/internal/errors"
	"github.com/agentx-labs/agentboot/internal/platform"
	"github.com/agentx-labs/agentboot/internal/runner"
)

// Options is one update-agents request.
type Options struct {
	Tool       Tool
	Repo       string
	PromptFile string
	Codex      CodexOptions
	Claude     ClaudeOptions
}

// Updater runs assistant invocations, streaming their output.
type Updater struct {
	Runner runner.CommandRunner
	Out    io.Writer
	ErrOut io.Writer
	Log    *zap.Logger
}

// Update resolves the repository, loads the prompt and runs the selected tool.
func (u *Updater) Update(ctx context.Context, opts Options) error {
	repoDir, err := platform.AbsPath(opts.Repo)
	if err != nil {
		return errors.Wrap(errors.EConfig, "resolving repository path "+opts.Repo, err)
	}
	if info, err := os.Stat(repoDir); err != nil || !info.IsDir() {
		return errors.Newf(errors.EConfig, "Repository directory does not exist: %s", repoDir)
	}

	prompt, err := LoadPrompt(opts.PromptFile)
	if err != nil {
		return err
	}

	var inv Invocation
	switch opts.Tool {
	case Codex:
		inv = BuildCodex(repoDir, prompt, opts.Codex)
	case Claude:
		if !opts.Claude.NoAllowedTools && strings.TrimSpace(opts.Claude.AllowedTools) == "" {
			return errors.New(errors.EUsage, "--allowed-tools must not be empty (use --no-allowed-tools to omit it)")
		}
		inv = BuildClaude(repoDir, prompt, opts.Claude)
	default:
		return errors.Newf(errors.EUsage, "unknown tool %q (expected one of: %s)",
			opts.Tool, strings.Join(ToolNames(), ", "))
	}
	return u.Run(ctx, inv)
}

// Run executes inv. A non-zero exit is an E_SUBPROCESS error carrying the
// tool's exit status; a tool that cannot be started is E_NOT_INSTALLED.
func (u *Updater) Run(ctx context.Context, inv Invocation) error {
	opts := runner.RunOpts{Dir: inv.Dir, Stdout: u.Out, Stderr: u.ErrOut}
	if inv.Stdin != "" {
		opts.Stdin = strings.NewReader(inv.Stdin)
	}
	if u.Log != nil {
		u.Log.Debug("invoking assistant",
			zap.String("tool", inv.Name),
			zap.String("dir", inv.Dir),
			zap.Int("prompt_bytes", len(inv.Stdin)))
	}

	result, err := u.Runner.Run(ctx, inv.Name, inv.Args, opts)
	if err != nil {
		if ctx.Err() != nil {
			return errors.Wrap(errors.EInternal, inv.Name+" interrupted", err)
		}
		return errors.Wrap(errors.ENotInstalled,
			fmt.Sprintf("could not run %s (is it installed and on PATH?)", inv.Name), err)
	}
	if result.ExitCode != 0 {
		return errors.Exited(errors.ESubprocess,
			fmt.Sprintf("%s exited with status %d", inv.Name, result.ExitCode),
			result.ExitCode, runner.CommandLine(inv.Name, inv.Args), "")
	}
	return nil
}
