package cli

import (
	"github.com/spf13/cobra"

	"github.com/agentx-labs/agentboot/internal/bootstrap"
	"github.com/agentx-labs/agentboot/internal/config"
	"github.com/agentx-labs/agentboot/internal/errors"
)

func newBootstrapCmd(a *app) *cobra.Command {
	var opts bootstrap.Options

	cmd := &cobra.Command{
		Use:   "bootstrap <repo>",
		Short: "Add agent bootstrap files to a repository",
		Long: `Resolve a repository (an existing local checkout, a git URL or an owner/name
shorthand, which is cloned), write the agent templates into it and offer to
create a branch, commit and push.

Without --template-repo the fixed templates AGENTS_TEMPLATE.md and
AGENTS_STRUCTURE.md are copied from --template-dir (default: the directory
holding this executable). With --template-repo the whole template repository
is overlaid onto the target and its init script is run.`,
		Example: `  agentboot bootstrap .
  agentboot bootstrap acme/widgets --dest ~/src/widgets
  agentboot bootstrap https://github.com/acme/widgets.git --template-repo acme/agent-template`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.Newf(errors.EUsage, "expected exactly one repository argument, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Repo = args[0]
			opts.TemplateRepo = a.cfg.Get(config.KeyTemplateRepo)
			opts.TemplateDir = a.cfg.Get(config.KeyTemplateDir)
			if cmd.Flags().Changed("template-dir") {
				opts.TemplateRepo = ""
			}
			opts.CommitMessage = a.cfg.Get(config.KeyCommitMessage)
			opts.InitScript = a.cfg.Get(config.KeyInitScript)

			b := &bootstrap.Bootstrapper{
				Runner:        a.runner,
				Confirm:       a.confirmer(cmd.OutOrStdout()),
				Out:           cmd.OutOrStdout(),
				ErrOut:        cmd.ErrOrStderr(),
				Log:           a.log,
				ShorthandBase: a.cfg.Get(config.KeyShorthandBase),
				Getwd:         a.getwd,
			}
			_, err := b.Run(cmd.Context(), opts)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Dest, "dest", "", "Clone destination (default: derived from the repository name)")
	f.String("template-repo", config.Default(config.KeyTemplateRepo), "Template repository to overlay instead of the fixed templates")
	f.String("template-dir", config.Default(config.KeyTemplateDir), "Directory holding AGENTS_TEMPLATE.md and AGENTS_STRUCTURE.md")
	f.StringVar(&opts.Branch, "branch", "", "Create this branch without asking")
	f.StringVar(&opts.Message, "message", "", "Commit message to use without asking")
	f.BoolVar(&opts.NoInit, "no-init", false, "Do not run the template's init script")
	f.BoolVar(&a.nonInteractive, "non-interactive", false, "Answer every question with its default (no branch, commit or push)")
	cmd.MarkFlagsMutuallyExclusive("template-repo", "template-dir")
	return cmd
}
