package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"swiss/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := metrics.NewService(reg)

	s.IncPlayersRegistered()
	s.IncPlayersRegistered()
	s.IncMatchesRecorded()
	s.IncPairingsComputed()
	s.IncRematches(3)
	s.ObservePairingDuration(0.02)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.PlayersRegistered))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.MatchesRecorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.PairingsComputed))
	assert.Equal(t, 3.0, testutil.ToFloat64(s.Rematches))
	assert.Equal(t, 1, testutil.CollectAndCount(s.PairingDuration))
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := metrics.NewService(reg)
	s.IncMatchesRecorded()

	rec := httptest.NewRecorder()
	metrics.NewHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "swiss_matches_recorded_total 1")
}

func TestMock(t *testing.T) {
	m := metrics.NewMock()
	m.IncRematches(2)
	m.IncRematches(1)
	m.ObservePairingDuration(1)

	assert.Equal(t, 3, m.Rematches())
	assert.Equal(t, []float64{1}, m.PairingDurations())
	assert.Zero(t, m.PairingsComputed())
}
