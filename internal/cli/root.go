package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/agentx-labs/agentboot/internal/branding"
	"github.com/agentx-labs/agentboot/internal/config"
	"github.com/agentx-labs/agentboot/internal/errors"
	"github.com/agentx-labs/agentboot/internal/logging"
	"github.com/agentx-labs/agentboot/internal/prompt"
	"github.com/agentx-labs/agentboot/internal/runner"
)

// app carries everything a command needs. Fields left nil are filled in
// from the real environment before the command runs.
type app struct {
	version string
	commit  string
	date    string

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfgPath        string
	verbose        bool
	nonInteractive bool

	cfg     *config.Config
	log     *zap.Logger
	runner  runner.CommandRunner
	confirm prompt.Confirmer
	getwd   func() (string, error)

	lookPath func(string) (string, error) // exec.LookPath when nil
}

func newApp(version, commit, date string) *app {
	return &app{
		version: version,
		commit:  commit,
		date:    date,
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
}

// flagKeys maps command-line flags onto config keys so that a flag given on
// the command line overrides the config file and environment.
var flagKeys = map[string]string{
	"template-dir":              config.KeyTemplateDir,
	"template-repo":             config.KeyTemplateRepo,
	"prompt-file":               config.KeyPromptFile,
	"append-system-prompt-file": config.KeySystemPromptFile,
	"allowed-tools":             config.KeyAllowedTools,
}

// setup loads config and logging and binds the flags of cmd.
func (a *app) setup(cmd *cobra.Command) error {
	if a.cfg == nil {
		cfg, err := config.Load(a.cfgPath)
		if err != nil {
			return errors.Wrap(errors.EConfig, "loading configuration", err)
		}
		a.cfg = cfg
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.cfg.BindFlag(key, f); err != nil {
				return errors.Wrap(errors.EInternal, "binding flag --"+name, err)
			}
		}
	}

	if a.log == nil {
		log, err := logging.New(a.verbose)
		if err != nil {
			return errors.Wrap(errors.EInternal, "initializing logger", err)
		}
		a.log = log
	}
	if a.runner == nil {
		a.runner = runner.New(a.log)
	}
	if a.getwd == nil {
		a.getwd = os.Getwd
	}
	a.log.Debug("configuration loaded", zap.String("path", a.cfg.Path()), zap.String("command", cmd.CommandPath()))
	return nil
}

// confirmer reads answers from stdin, echoing them when stdin is not a
// terminal. With --non-interactive every question takes its default.
func (a *app) confirmer(out io.Writer) prompt.Confirmer {
	if a.confirm != nil {
		return a.confirm
	}
	if a.nonInteractive {
		return prompt.Defaults{W: out}
	}
	t := prompt.NewTerminal(a.in, out)
	if f, ok := a.in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		a.log.Debug("stdin is not a terminal; reading answers from it")
		t.Echo = true
	}
	return t
}

// addGlobalFlags registers --config and --verbose and the setup hook on a
// top-level command.
func (a *app) addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&a.cfgPath, "config", a.cfgPath, "Config file (default $"+branding.EnvVar("config")+" or ~/"+branding.HomeDir()+"/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging to stderr")
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup(cmd)
	}
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return errors.Newf(errors.EUsage, "%v (see '%s --help')", err, c.CommandPath())
	})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` bootstraps git repositories with agent configuration files
(AGENTS.md, AGENTS_STRUCTURE.md) and runs AI coding assistants to keep them current.

Source: https://github.com/` + branding.GitHubRepo(),
	}
	a.addGlobalFlags(cmd)

	cmd.AddCommand(
		newBootstrapCmd(a),
		newUpdateAgentsCmd(a),
		newDoctorCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return cmd
}

// run executes cmd with args, prints any error and returns the exit status.
func (a *app) run(cmd *cobra.Command, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.SetArgs(args)
	cmd.SetIn(a.in)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	err := cmd.ExecuteContext(ctx)
	if a.log != nil {
		_ = a.log.Sync()
	}
	if err == nil {
		return 0
	}
	if _, ok := errors.AsBootError(err); !ok {
		// Cobra reports unknown commands and argument errors as plain errors.
		err = errors.New(errors.EUsage, err.Error())
	}
	errors.Print(a.errOut, err)
	return errors.ExitCode(err)
}

// Execute runs the agentboot command tree with build info injected via
// ldflags and returns the process exit status.
func Execute(version, commit, date string) int {
	a := newApp(version, commit, date)
	return a.run(newRootCmd(a), os.Args[1:])
}

// ExecuteBootstrap runs the standalone bootstrap-agents command.
func ExecuteBootstrap(version, commit, date string) int {
	a := newApp(version, commit, date)
	cmd := newBootstrapCmd(a)
	cmd.Use = "bootstrap-agents <repo>"
	cmd.Version = version
	a.addGlobalFlags(cmd)
	return a.run(cmd, os.Args[1:])
}

// ExecuteUpdateAgents runs the standalone update-agents command.
func ExecuteUpdateAgents(version, commit, date string) int {
	a := newApp(version, commit, date)
	cmd := newUpdateAgentsCmd(a)
	cmd.Version = version
	a.addGlobalFlags(cmd)
	return a.run(cmd, os.Args[1:])
}
