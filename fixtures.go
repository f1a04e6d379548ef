package main

import (
	"fmt"

	"swiss/internal/back"

	"github.com/spf13/cobra"
)

// nolint:gochecknoglobals
var fixturesCmd = &cobra.Command{
	Use:   "dev:fixtures",
	Short: "Create default data for quick testing during development",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withBack(func(b *back.Back) error {
			players, err := b.LoadFixtures(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "registered %d players\n", len(players))
			return nil
		})
	},
}
