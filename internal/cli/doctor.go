package cli

import (
	"github.com/spf13/cobra"

	"github.com/agentx-labs/agentboot/internal/config"
	"github.com/agentx-labs/agentboot/internal/doctor"
	"github.com/agentx-labs/agentboot/internal/errors"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that git and the assistant CLIs are installed",
		Long: `Verify that git is installed and at least git_min_version, and report
whether the optional codex and claude CLIs are available.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := &doctor.Doctor{Runner: a.runner, LookPath: a.lookPath, Log: a.log}
			results := d.Run(cmd.Context(), doctor.DefaultChecks(a.cfg.Get(config.KeyGitMinVersion)))
			doctor.Render(cmd.OutOrStdout(), results)
			if doctor.AnyFailed(results) {
				return errors.New(errors.ENotInstalled, "required tools are missing or outdated")
			}
			return nil
		},
	}
}
