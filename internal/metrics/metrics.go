// Package metrics exposes counters about the tournament engines.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics defines the interface for collecting application metrics.
type Metrics interface {
	IncPlayersRegistered()
	IncMatchesRecorded()
	IncPairingsComputed()
	IncRematches(n int)
	ObservePairingDuration(seconds float64)
}

var _ Metrics = (*Service)(nil)

// Service is the Prometheus implementation of Metrics.
type Service struct {
	PlayersRegistered prometheus.Counter
	MatchesRecorded   prometheus.Counter
	PairingsComputed  prometheus.Counter
	Rematches         prometheus.Counter
	PairingDuration   prometheus.Histogram
}

// NewHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PlayersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_players_registered_total",
			Help: "The total number of players registered.",
		}),
		MatchesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_matches_recorded_total",
			Help: "The total number of match outcomes recorded.",
		}),
		PairingsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_pairings_computed_total",
			Help: "The total number of rounds paired.",
		}),
		Rematches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_rematches_total",
			Help: "The total number of pairs matched again because no unplayed opponent was left.",
		}),
		PairingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "swiss_pairing_duration_seconds",
			Help:    "The duration of a pairing computation, store round-trips included.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}

	reg.MustRegister(
		s.PlayersRegistered,
		s.MatchesRecorded,
		s.PairingsComputed,
		s.Rematches,
		s.PairingDuration,
	)

	return s
}

func (s *Service) IncPlayersRegistered() {
	s.PlayersRegistered.Inc()
}

func (s *Service) IncMatchesRecorded() {
	s.MatchesRecorded.Inc()
}

func (s *Service) IncPairingsComputed() {
	s.PairingsComputed.Inc()
}

func (s *Service) IncRematches(n int) {
	s.Rematches.Add(float64(n))
}

func (s *Service) ObservePairingDuration(seconds float64) {
	s.PairingDuration.Observe(seconds)
}
