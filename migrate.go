package main

import (
	"errors"

	"swiss/internal/store"

	"github.com/spf13/cobra"
)

// nolint:gochecknoglobals
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Apply pending database migrations. Every other command does it
implicitly when opening the database, this one only migrates.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if conf.DBDSN == ":memory:" {
			return errors.New("nothing to migrate in an in-memory store")
		}

		return store.Migrate(conf.DBDriver, conf.DBDSN)
	},
}
