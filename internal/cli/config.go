package cli

import (
	"fmt"
	"slices"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/agentx-labs/agentboot/internal/config"
	"github.com/agentx-labs/agentboot/internal/errors"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user settings",
		Long:  `Read and write agentboot settings stored at ~/.agentboot/config.yaml.`,
	}
	cmd.AddCommand(newConfigSetCmd(a), newConfigGetCmd(a), newConfigListCmd(a))
	return cmd
}

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a configuration value",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := a.cfg.Set(key, value); err != nil {
				return errors.Wrap(errors.EConfig, fmt.Sprintf("setting config key %q", key), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	}
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Get a configuration value",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(config.Keys(), args[0]) {
				return errors.Newf(errors.EConfig, "unknown config key %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.cfg.Get(args[0]))
			return nil
		},
	}
}

func newConfigListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every setting with its effective and default value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file: %s\n\n", a.cfg.Path())

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Key", "Value", "Default"})
			table.SetAutoWrapText(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)
			for _, key := range config.Keys() {
				table.Append([]string{key, a.cfg.Get(key), config.Default(key)})
			}
			table.Render()
			return nil
		},
	}
}
