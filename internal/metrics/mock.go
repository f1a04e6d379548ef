package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	playersRegistered int
	matchesRecorded   int
	pairingsComputed  int
	rematches         int
	pairingDurations  []float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncPlayersRegistered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersRegistered++
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncPairingsComputed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairingsComputed++
}

func (m *Mock) IncRematches(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rematches += n
}

func (m *Mock) ObservePairingDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairingDurations = append(m.pairingDurations, seconds)
}

// PlayersRegistered returns the number of times IncPlayersRegistered was called.
func (m *Mock) PlayersRegistered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersRegistered
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// PairingsComputed returns the number of times IncPairingsComputed was called.
func (m *Mock) PairingsComputed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pairingsComputed
}

// Rematches returns the sum of every IncRematches call.
func (m *Mock) Rematches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rematches
}

// PairingDurations returns a copy of every observed pairing duration.
func (m *Mock) PairingDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	ret := make([]float64, len(m.pairingDurations))
	copy(ret, m.pairingDurations)
	return ret
}
