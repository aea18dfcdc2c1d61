package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/notebook-md/notebookmd/internal/config"
	"github.com/notebook-md/notebookmd/internal/logging"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", config.GetConfigPath())
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(settings); err != nil {
				return err
			}
			return enc.Close()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting: user, logLevel or notebookColour",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			next := settings
			value := strings.TrimSpace(args[1])
			switch args[0] {
			case "user":
				next.User = value
			case "logLevel":
				if _, err := logging.ParseLevel(value); err != nil {
					return err
				}
				next.LogLevel = value
			case "notebookColour":
				next.NotebookColour = value
			default:
				return fmt.Errorf("unknown setting: %s (valid keys: user, logLevel, notebookColour)", args[0])
			}
			if err := config.Save(next); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
			return nil
		},
	})
	return cmd
}
