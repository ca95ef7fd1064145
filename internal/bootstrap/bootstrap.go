// Package bootstrap wires repository resolution, template materialization
// and the publish flow into the bootstrap command.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"

	"github.com/agentx-labs/agentboot/internal/git"
	"github.com/agentx-labs/agentboot/internal/prompt"
	"github.com/agentx-labs/agentboot/internal/publish"
	"github.com/agentx-labs/agentboot/internal/repo"
	"github.com/agentx-labs/agentboot/internal/runner"
	"github.com/agentx-labs/agentboot/internal/template"
)

// Mode is how templates are materialized.
type Mode string

const (
	ModeFixed    Mode = "fixed"
	ModeTemplate Mode = "template"
)

// Options is one bootstrap request.
type Options struct {
	Repo string // local path, URL or owner/name
	Dest string // clone destination override

	// TemplateRepo selects template-repository mode when non-empty.
	TemplateRepo string
	// TemplateDir holds the fixed-file templates; the executable's
	// directory when empty.
	TemplateDir string

	Branch  string // pre-answers the branch questions
	Message string // pre-answers the commit message
	NoInit  bool   // skip the template init script

	// CommitMessage is the default commit message.
	CommitMessage string
	// InitScript is the init script used when the template manifest names none.
	InitScript string
}

// Result describes a completed run.
type Result struct {
	Mode   Mode
	Target *repo.Target
	Paths  []string // repository-relative paths offered for commit
}

// Bootstrapper runs bootstrap requests.
type Bootstrapper struct {
	Runner  runner.CommandRunner
	Confirm prompt.Confirmer
	Out     io.Writer
	ErrOut  io.Writer
	Log     *zap.Logger

	ShorthandBase string
	Getwd         func() (string, error) // os.Getwd when nil
	TempRoot      string                 // parent of template staging directories
}

// Run resolves the target repository, writes the templates and hands the
// written paths to the publish flow.
func (b *Bootstrapper) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.TemplateRepo != "" {
		return b.runTemplate(ctx, opts)
	}
	return b.runFixed(ctx, opts)
}

func (b *Bootstrapper) runFixed(ctx context.Context, opts Options) (*Result, error) {
	dir, err := template.ResolveDir(opts.TemplateDir)
	if err != nil {
		return nil, err
	}
	if err := template.CheckFixed(dir); err != nil {
		return nil, err
	}
	b.log().Debug("fixed-file templates", zap.String("dir", dir))

	target, err := b.resolver().Resolve(ctx, opts.Repo, opts.Dest)
	if err != nil {
		return nil, err
	}

	copied, err := template.CopyFixed(dir, target.Dir)
	if err != nil {
		return nil, err
	}
	b.reportCopy(copied)

	paths := template.FixedPaths()
	if err := b.flow().Run(ctx, target.Dir, publish.Options{
		Paths:          paths,
		DefaultMessage: opts.CommitMessage,
		AskMessage:     true,
		Branch:         opts.Branch,
		Message:        opts.Message,
	}); err != nil {
		return nil, err
	}

	fmt.Fprintln(b.Out, "Done.")
	return &Result{Mode: ModeFixed, Target: target, Paths: paths}, nil
}

func (b *Bootstrapper) runTemplate(ctx context.Context, opts Options) (*Result, error) {
	target, err := b.resolver().Resolve(ctx, opts.Repo, opts.Dest)
	if err != nil {
		return nil, err
	}

	source := repo.ExpandShorthand(opts.TemplateRepo, b.ShorthandBase)
	fmt.Fprintf(b.Out, "Applying template %s...\n", source)
	applied, err := template.FromRepository(ctx, b.git(), source, target.Dir, template.RemoteOpts{TempRoot: b.TempRoot})
	if err != nil {
		return nil, err
	}
	for _, p := range applied.Paths {
		fmt.Fprintf(b.Out, "  %s\n", p)
	}

	message, script := opts.CommitMessage, opts.InitScript
	if m := applied.Manifest; m != nil {
		if m.CommitMessage != "" {
			message = m.CommitMessage
		}
		if m.InitScript != "" {
			script = m.InitScript
		}
	}

	if opts.NoInit || script == "" {
		b.log().Debug("init script skipped", zap.Bool("no_init", opts.NoInit))
	} else {
		hook := &publish.Hook{Runner: b.Runner, Out: b.Out, ErrOut: b.ErrOut, Log: b.Log}
		if _, err := hook.RunInitScript(ctx, target.Dir, script); err != nil {
			return nil, err
		}
	}

	result := &Result{Mode: ModeTemplate, Target: target, Paths: applied.Paths}
	if len(applied.Paths) == 0 {
		fmt.Fprintln(b.Out, "Template contained no files; nothing to commit.")
		return result, nil
	}

	if err := b.flow().Run(ctx, target.Dir, publish.Options{
		Paths:          applied.Paths,
		DefaultMessage: message,
		Branch:         opts.Branch,
		Message:        opts.Message,
	}); err != nil {
		return nil, err
	}

	fmt.Fprintln(b.Out, "Done.")
	return result, nil
}

func (b *Bootstrapper) reportCopy(r *template.CopyResult) {
	for _, f := range template.FixedFiles {
		switch {
		case slices.Contains(r.Skipped, f.Dest):
			fmt.Fprintf(b.Out, "Skipping %s (source and destination are the same file)\n", f.Dest)
		case slices.Contains(r.Copied, f.Dest):
			fmt.Fprintf(b.Out, "Copying %s -> %s\n", f.Source, f.Dest)
			if slices.Contains(r.Overwritten, f.Dest) {
				fmt.Fprintf(b.ErrOut, "Note: overwrote existing %s\n", f.Dest)
			}
		}
	}
}

func (b *Bootstrapper) git() *git.Client {
	return git.New(b.Runner, b.Log, b.Out, b.ErrOut)
}

func (b *Bootstrapper) resolver() *repo.Resolver {
	return &repo.Resolver{
		Git:           b.git(),
		Log:           b.Log,
		Out:           b.Out,
		ShorthandBase: b.ShorthandBase,
		Getwd:         b.Getwd,
	}
}

func (b *Bootstrapper) flow() *publish.Flow {
	return &publish.Flow{Git: b.git(), Confirm: b.Confirm, Out: b.Out, Log: b.Log}
}

func (b *Bootstrapper) log() *zap.Logger {
	if b.Log == nil {
		return zap.NewNop()
	}
	return b.Log
}
