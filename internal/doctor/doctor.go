// Package doctor checks that the external tools agentboot drives are
// installed and recent enough.
package doctor

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"github.com/agentx-labs/agentboot/internal/git"
	"github.com/agentx-labs/agentboot/internal/runner"
)

// Status of a single check.
type Status string

const (
	StatusOK       Status = "ok"
	StatusMissing  Status = "missing"
	StatusOutdated Status = "outdated"
	StatusUnknown  Status = "unknown"
)

// Check describes one tool to verify.
type Check struct {
	Tool       string
	Required   bool
	MinVersion string // empty skips the version floor
}

// Result is the outcome of one Check.
type Result struct {
	Check
	Status  Status
	Version string
	Path    string
	Detail  string
}

// Failed reports whether a required tool did not pass.
func (r Result) Failed() bool {
	return r.Required && r.Status != StatusOK
}

// DefaultChecks returns git (required, at least gitMin) and the optional
// assistant CLIs.
func DefaultChecks(gitMin string) []Check {
	return []Check{
		{Tool: "git", Required: true, MinVersion: gitMin},
		{Tool: "codex"},
		{Tool: "claude"},
	}
}

// Doctor runs checks through a CommandRunner.
type Doctor struct {
	Runner   runner.CommandRunner
	LookPath func(string) (string, error) // exec.LookPath when nil
	Log      *zap.Logger
}

// Run executes every check in order.
func (d *Doctor) Run(ctx context.Context, checks []Check) []Result {
	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		results = append(results, d.check(ctx, c))
	}
	return results
}

func (d *Doctor) check(ctx context.Context, c Check) Result {
	res := Result{Check: c}
	lookPath := d.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	path, err := lookPath(c.Tool)
	if err != nil {
		res.Status = StatusMissing
		res.Detail = "not found on PATH"
		return res
	}
	res.Path = path

	version, err := d.version(ctx, c.Tool)
	if err != nil {
		if d.Log != nil {
			d.Log.Debug("version check failed", zap.String("tool", c.Tool), zap.Error(err))
		}
		res.Status = StatusUnknown
		res.Detail = "could not determine version"
		return res
	}
	res.Version = version

	if c.MinVersion == "" {
		res.Status = StatusOK
		return res
	}
	if res.Version == "" {
		res.Status = StatusUnknown
		res.Detail = "unrecognized version output"
		return res
	}
	ok, err := AtLeast(res.Version, c.MinVersion)
	switch {
	case err != nil:
		res.Status = StatusUnknown
		res.Detail = err.Error()
	case !ok:
		res.Status = StatusOutdated
		res.Detail = "requires >= " + c.MinVersion
	default:
		res.Status = StatusOK
	}
	return res
}

// version asks git through the git client and other tools through
// `<tool> --version`.
func (d *Doctor) version(ctx context.Context, tool string) (string, error) {
	if tool == "git" {
		return git.New(d.Runner, d.Log, nil, nil).Version(ctx)
	}
	out, err := d.Runner.Run(ctx, tool, []string{"--version"}, runner.RunOpts{})
	if err != nil {
		return "", err
	}
	if out.ExitCode != 0 {
		return "", fmt.Errorf("%s --version exited with status %d", tool, out.ExitCode)
	}
	return ExtractVersion(out.Stdout + "\n" + out.Stderr), nil
}

// AnyFailed reports whether any required tool failed its check.
func AnyFailed(results []Result) bool {
	for _, r := range results {
		if r.Failed() {
			return true
		}
	}
	return false
}

// Render writes results as a table of tool, status, version and path.
func Render(w io.Writer, results []Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Tool", "Status", "Version", "Path"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, r := range results {
		status := string(r.Status)
		if r.Detail != "" {
			status += " (" + r.Detail + ")"
		}
		if !r.Required {
			status += " [optional]"
		}
		table.Append([]string{r.Tool, status, dash(r.Version), dash(r.Path)})
	}
	table.Render()

	if AnyFailed(results) {
		var names []string
		for _, r := range results {
			if r.Failed() {
				names = append(names, r.Tool)
			}
		}
		fmt.Fprintf(w, "\nRequired tool check failed: %s\n", strings.Join(names, ", "))
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
