package main

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"swiss/internal/back"
	"swiss/internal/metrics"
	"swiss/internal/web"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// nolint:gochecknoglobals
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return serve()
	},
}

func serve() error {
	s, err := openStore()
	if err != nil {
		return err
	}

	b := back.New(s, metricsService())
	server := web.NewServer(b, conf, metrics.NewHandler())

	done := make(chan struct{})
	signaled := make(chan os.Signal, 1)
	signal.Notify(signaled, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	wg.Add(1)
	go server.Serve(&wg, done)

	sig := <-signaled
	log.Info("received signal", "signal", sig)

	close(done)
	wg.Wait()

	if err := s.Close(); err != nil {
		return err
	}

	log.Info("shutdown complete")

	return nil
}
