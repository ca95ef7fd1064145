package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/agentboot/internal/assistant"
	"github.com/agentx-labs/agentboot/internal/config"
	"github.com/agentx-labs/agentboot/internal/errors"
)

func newUpdateAgentsCmd(a *app) *cobra.Command {
	var (
		repo   string
		codex  assistant.CodexOptions
		claude assistant.ClaudeOptions
	)

	cmd := &cobra.Command{
		Use:   "update-agents <codex|claude>",
		Short: "Update AGENTS.md with an AI coding assistant",
		Long: `Run a prompt through the codex or claude CLI against a repository.

The prompt is read from --prompt-file when that file exists and falls back to
a built-in prompt asking the assistant to make AGENTS.md conform to
AGENTS_STRUCTURE.md. The assistant's exit status becomes this command's.`,
		ValidArgs: assistant.ToolNames(),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.Newf(errors.EUsage, "expected one tool (%s), got %d arguments",
					strings.Join(assistant.ToolNames(), " or "), len(args))
			}
			if _, ok := assistant.ParseTool(args[0]); !ok {
				return errors.Newf(errors.EUsage, "unknown tool %q (expected %s)",
					args[0], strings.Join(assistant.ToolNames(), " or "))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			tool, _ := assistant.ParseTool(args[0])
			claude.SystemPromptFile = a.cfg.Get(config.KeySystemPromptFile)
			claude.AllowedTools = a.cfg.Get(config.KeyAllowedTools)

			u := &assistant.Updater{
				Runner: a.runner,
				Out:    cmd.OutOrStdout(),
				ErrOut: cmd.ErrOrStderr(),
				Log:    a.log,
			}
			return u.Update(cmd.Context(), assistant.Options{
				Tool:       tool,
				Repo:       repo,
				PromptFile: a.cfg.Get(config.KeyPromptFile),
				Codex:      codex,
				Claude:     claude,
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&repo, "repo", ".", "Target repository path")
	f.String("prompt-file", config.Default(config.KeyPromptFile), "Prompt file (built-in prompt when missing)")
	f.StringVar(&codex.OutputLastMessage, "output-last-message", "", "codex: write the last message to this path")
	f.BoolVar(&codex.FullAuto, "full-auto", false, "codex: enable the full-auto preset")
	f.String("append-system-prompt-file", config.Default(config.KeySystemPromptFile), "claude: system prompt additions file (used when it exists)")
	f.String("allowed-tools", config.Default(config.KeyAllowedTools), "claude: tools allowed in headless mode")
	f.BoolVar(&claude.NoAllowedTools, "no-allowed-tools", false, "claude: do not pass --allowedTools")
	return cmd
}
