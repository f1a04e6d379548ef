package main

import (
	"fmt"
	"os"
	"sync"

	"swiss/internal/back"
	"swiss/internal/config"
	"swiss/internal/metrics"
	"swiss/internal/store"
	"swiss/internal/util"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version holds the build-time version string.
var Version = "unknown" // nolint:gochecknoglobals

// nolint:gochecknoglobals
var (
	conf     *config.Config
	dbDriver string
	dbDSN    string

	metricsOnce sync.Once
	metricsSvc  *metrics.Service
)

var rootCmd = &cobra.Command{ // nolint:gochecknoglobals
	Use:   "swiss",
	Short: "Run a Swiss-system tournament",
	Long: `Swiss is a tool to run a Swiss-system tournament: register players,
report match results, and compute the standings and pairings of the next
round.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		if conf, err = config.Load(); err != nil {
			return err
		}

		if cmd.Flags().Changed("driver") {
			conf.DBDriver = dbDriver
		}
		if cmd.Flags().Changed("db") {
			conf.DBDSN = dbDSN
		}

		log.SetLevel(conf.Level())
		return nil
	},
}

func init() { // nolint:gochecknoinits
	rootCmd.PersistentFlags().StringVar(
		&dbDriver, "driver", config.DefaultDBDriver,
		"database driver, sqlite3 or postgres",
	)
	rootCmd.PersistentFlags().StringVar(
		&dbDSN, "db", config.DefaultDBDSN,
		`sqlite3 file path or postgres URL, ":memory:" for a throwaway store`,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "err", err)
		os.Exit(1)
	}
}

// openStore returns the store described by the current config.
func openStore() (store.Store, error) {
	if conf.DBDSN == ":memory:" {
		log.Warn("using an in-memory store, nothing will be persisted")
		return store.NewMemory(), nil
	}

	s, err := store.Open(conf.DBDriver, conf.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("unable to open store: %w", err)
	}

	return s, nil
}

// metricsService returns the process-wide metrics, registered once with the
// default Prometheus registry.
func metricsService() *metrics.Service {
	metricsOnce.Do(func() {
		metricsSvc = metrics.NewService()
	})

	return metricsSvc
}

// withBack runs cb with a Back on top of a freshly opened store and closes
// the store afterwards.
func withBack(cb func(*back.Back) error) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	err = cb(back.New(s, metricsService()))

	return util.ConcatErrors([]error{err, s.Close()})
}
