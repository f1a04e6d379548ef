package main

import (
	"fmt"

	"swiss/internal/config"

	"github.com/spf13/cobra"
)

func init() { // nolint:gochecknoinits
	configCmd.AddCommand(configInitCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// nolint:gochecknoglobals
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the user config file",
}

// nolint:gochecknoglobals
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file if there is none",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := config.UserConfigPath()
		if err != nil {
			return err
		}

		if err := config.Init(path); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

// nolint:gochecknoglobals
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Display the path of the user config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := config.UserConfigPath()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}
