// Package publish walks the user through branching, committing and pushing
// the files a bootstrap run wrote, and runs a template's init script.
package publish

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/agentx-labs/agentboot/internal/errors"
	"github.com/agentx-labs/agentboot/internal/git"
	"github.com/agentx-labs/agentboot/internal/prompt"
)

// Questions asked by Flow.Run.
const (
	QuestionBranch  = "Create a new branch for these commits?"
	QuestionName    = "Branch name:"
	QuestionCommit  = "Stage and commit the new files?"
	QuestionMessage = "Commit message:"
	QuestionPush    = "Push the commit now?"
)

// Flow runs the interactive branch/commit/push sequence.
type Flow struct {
	Git     *git.Client
	Confirm prompt.Confirmer
	Out     io.Writer
	Log     *zap.Logger
}

// Options controls one Flow.Run.
type Options struct {
	// Paths are staged exactly; no wildcard add.
	Paths []string
	// DefaultMessage is used when no message is given.
	DefaultMessage string
	// AskMessage asks for a commit message, falling back to DefaultMessage.
	AskMessage bool
	// Branch, when set, creates this branch without asking.
	Branch string
	// Message, when set, is used without asking.
	Message string
}

// Run creates an optional branch, shows the status, then optionally commits
// and pushes. An empty branch name aborts with E_ABORTED. Nothing already
// done is rolled back when a later step fails.
func (f *Flow) Run(ctx context.Context, dir string, opts Options) error {
	if err := f.branch(ctx, dir, opts.Branch); err != nil {
		return err
	}

	if err := f.Git.Status(ctx, dir); err != nil {
		return err
	}

	commit, err := f.Confirm.Confirm(QuestionCommit, false)
	if err != nil {
		return err
	}
	if !commit {
		fmt.Fprintln(f.Out, "Skipping commit and push.")
		return nil
	}

	if err := f.Git.Add(ctx, dir, opts.Paths...); err != nil {
		return err
	}
	message, err := f.message(opts)
	if err != nil {
		return err
	}
	f.log().Debug("committing", zap.Strings("paths", opts.Paths), zap.String("message", message))
	if err := f.Git.Commit(ctx, dir, message); err != nil {
		return err
	}

	push, err := f.Confirm.Confirm(QuestionPush, false)
	if err != nil {
		return err
	}
	if push {
		return f.Git.Push(ctx, dir)
	}
	return nil
}

func (f *Flow) branch(ctx context.Context, dir, name string) error {
	if name == "" {
		create, err := f.Confirm.Confirm(QuestionBranch, false)
		if err != nil {
			return err
		}
		if !create {
			return nil
		}
		if name, err = f.Confirm.Ask(QuestionName); err != nil {
			return err
		}
		if name == "" {
			return errors.New(errors.EAborted, "Branch name is required. Aborting.")
		}
	}
	return f.Git.CheckoutNewBranch(ctx, dir, name)
}

func (f *Flow) message(opts Options) (string, error) {
	if opts.Message != "" {
		return opts.Message, nil
	}
	if opts.AskMessage {
		answer, err := f.Confirm.Ask(QuestionMessage)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
	}
	return opts.DefaultMessage, nil
}

func (f *Flow) log() *zap.Logger {
	if f.Log == nil {
		return zap.NewNop()
	}
	return f.Log
}
