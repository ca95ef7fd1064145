// Package git runs the git subcommands agentboot needs through a
// runner.CommandRunner. Every non-zero exit becomes a coded error carrying
// the exit status.
package git

import (
	"context"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/agentx-labs/agentboot/internal/errors"
	"github.com/agentx-labs/agentboot/internal/runner"
)

// Client invokes the git binary.
type Client struct {
	Runner runner.CommandRunner
	Log    *zap.Logger

	// Stdout and Stderr receive the output of user-facing commands
	// (clone, status, commit, push). Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Client streaming user-facing output to stdout and stderr.
func New(r runner.CommandRunner, log *zap.Logger, stdout, stderr io.Writer) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{Runner: r, Log: log, Stdout: stdout, Stderr: stderr}
}

// CloneOpts controls a clone.
type CloneOpts struct {
	Depth int // shallow clone depth, 0 for full history
}

// Clone runs `git clone <source> <dest>`. A non-zero exit is reported with
// failCode so callers can tell target clones from template clones apart.
func (c *Client) Clone(ctx context.Context, source, dest string, opts CloneOpts, failCode errors.Code) error {
	args := []string{"clone"}
	if opts.Depth > 0 {
		args = append(args, "--depth="+strconv.Itoa(opts.Depth))
	}
	args = append(args, source, dest)

	result, err := c.run(ctx, "", args, true)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		// Clone output was streamed, so stderr is not repeated in the error.
		return errors.Exited(failCode, "failed to clone "+source, result.ExitCode,
			runner.CommandLine("git", args), "")
	}
	return nil
}

// IsWorkTree reports whether dir is inside a git working tree, using
// `git rev-parse --is-inside-work-tree`. Only a failure to start git is an error.
func (c *Client) IsWorkTree(ctx context.Context, dir string) (bool, error) {
	result, err := c.run(ctx, dir, []string{"rev-parse", "--is-inside-work-tree"}, false)
	if err != nil {
		return false, err
	}
	return result.ExitCode == 0 && strings.TrimSpace(result.Stdout) == "true", nil
}

// CheckoutNewBranch runs `git checkout -b <name>`.
func (c *Client) CheckoutNewBranch(ctx context.Context, dir, name string) error {
	return c.mustRun(ctx, dir, []string{"checkout", "-b", name}, true)
}

// Status streams `git status --short`.
func (c *Client) Status(ctx context.Context, dir string) error {
	return c.mustRun(ctx, dir, []string{"status", "--short"}, true)
}

// Add stages exactly the given paths.
func (c *Client) Add(ctx context.Context, dir string, paths ...string) error {
	return c.mustRun(ctx, dir, append([]string{"add", "--"}, paths...), true)
}

// Commit runs `git commit -m <message>`.
func (c *Client) Commit(ctx context.Context, dir, message string) error {
	return c.mustRun(ctx, dir, []string{"commit", "-m", message}, true)
}

// CurrentBranch returns the checked-out branch name, or "" on a detached
// HEAD or when the query itself fails.
func (c *Client) CurrentBranch(ctx context.Context, dir string) string {
	result, err := c.run(ctx, dir, []string{"branch", "--show-current"}, false)
	if err != nil || result.ExitCode != 0 {
		return ""
	}
	return strings.TrimSpace(result.Stdout)
}

// PushArgs returns the push arguments for branch: upstream tracking to origin
// on a named branch, a plain push otherwise.
func PushArgs(branch string) []string {
	if branch == "" {
		return []string{"push"}
	}
	return []string{"push", "-u", "origin", branch}
}

// Push pushes the current branch, see PushArgs.
func (c *Client) Push(ctx context.Context, dir string) error {
	return c.mustRun(ctx, dir, PushArgs(c.CurrentBranch(ctx, dir)), true)
}

var versionRe = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// Version returns the installed git version (e.g. "2.43.0").
func (c *Client) Version(ctx context.Context) (string, error) {
	args := []string{"--version"}
	result, err := c.run(ctx, "", args, false)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", errors.Exited(errors.ESubprocess, "git --version failed", result.ExitCode,
			runner.CommandLine("git", args), strings.TrimSpace(result.Stderr))
	}
	v := versionRe.FindString(result.Stdout)
	if v == "" {
		return "", errors.Newf(errors.ESubprocess, "unrecognized git version output %q", strings.TrimSpace(result.Stdout))
	}
	return v, nil
}

func (c *Client) mustRun(ctx context.Context, dir string, args []string, stream bool) error {
	result, err := c.run(ctx, dir, args, stream)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		line := runner.CommandLine("git", args)
		stderr := ""
		if !stream {
			stderr = strings.TrimSpace(result.Stderr)
		}
		return errors.Exited(errors.ESubprocess, line+" failed", result.ExitCode, line, stderr)
	}
	return nil
}

func (c *Client) run(ctx context.Context, dir string, args []string, stream bool) (runner.CmdResult, error) {
	opts := runner.RunOpts{Dir: dir}
	if stream {
		opts.Stdout = c.Stdout
		opts.Stderr = c.Stderr
	}
	result, err := c.Runner.Run(ctx, "git", args, opts)
	if err != nil {
		c.Log.Debug("git did not start", zap.Strings("args", args), zap.Error(err))
		if ctx.Err() != nil {
			return result, errors.Wrap(errors.EInternal, "git interrupted", err)
		}
		return result, errors.Wrap(errors.ENotInstalled, "could not run git (is it installed and on PATH?)", err)
	}
	return result, nil
}
