package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"swiss/internal/util"

	"gopkg.in/guregu/null.v4"
)

var _ Store = (*Memory)(nil)

// Memory is a Store that keeps everything in process memory. It mimics the
// constraints of the SQL schema and is safe for concurrent use.
type Memory struct {
	mu sync.RWMutex

	players      []Player
	matches      []Match
	refs         map[util.UUIDAsBlob]struct{}
	lastPlayerID int64
	lastMatchID  int64
}

func NewMemory() *Memory {
	return &Memory{
		refs: map[util.UUIDAsBlob]struct{}{},
	}
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) ClearMatches(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.matches = nil
	m.refs = map[util.UUIDAsBlob]struct{}{}

	return nil
}

func (m *Memory) ClearPlayers(ctx context.Context) error {
	if err := m.ClearMatches(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = nil

	return nil
}

func (m *Memory) CountPlayers(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.players), nil
}

func (m *Memory) RegisterPlayer(_ context.Context, name string) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastPlayerID++
	player := Player{
		ID:        m.lastPlayerID,
		CreatedAt: util.NewTimeAsTimestamp(time.Now()),
		Name:      name,
	}
	m.players = append(m.players, player)

	return player, nil
}

func (m *Memory) ListPlayersWithStats(_ context.Context) ([]PlayerStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	index := make(map[int64]int, len(m.players))
	ret := make([]PlayerStats, len(m.players))
	for k, v := range m.players {
		index[v.ID] = k
		ret[k] = PlayerStats{ID: v.ID, Name: v.Name}
	}

	for _, match := range m.matches {
		winner, loser := &ret[index[match.WinnerID]], &ret[index[match.LoserID]]
		winner.Wins++
		winner.Matches++
		touch(winner, match.CreatedAt)
		if loser != winner {
			loser.Matches++
			touch(loser, match.CreatedAt)
		}
	}

	return ret, nil
}

func touch(stats *PlayerStats, at util.TimeAsTimestamp) {
	if !stats.LastPlayedAt.Valid || at.Time().After(stats.LastPlayedAt.Time) {
		stats.LastPlayedAt = null.TimeFrom(at.Time())
	}
}

func (m *Memory) RecordMatch(_ context.Context, match *Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isRegistered(match.WinnerID) || !m.isRegistered(match.LoserID) {
		return fmt.Errorf("%w: %d or %d", ErrUnknownPlayer, match.WinnerID, match.LoserID)
	}

	if match.Ref.IsZero() {
		match.Ref = util.NewUUIDAsBlob()
	}
	if _, ok := m.refs[match.Ref]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateMatch, match.Ref)
	}
	if match.CreatedAt.Time().IsZero() {
		match.CreatedAt = util.NewTimeAsTimestamp(time.Now())
	}

	m.lastMatchID++
	match.ID = m.lastMatchID
	m.refs[match.Ref] = struct{}{}
	m.matches = append(m.matches, *match)

	return nil
}

func (m *Memory) isRegistered(id int64) bool {
	for _, v := range m.players {
		if v.ID == id {
			return true
		}
	}

	return false
}

func (m *Memory) HasPlayed(_ context.Context, a, b int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, v := range m.matches {
		if v.Involves(a, b) {
			return true, nil
		}
	}

	return false, nil
}

func (m *Memory) ListMatches(_ context.Context) ([]Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ret := make([]Match, len(m.matches))
	copy(ret, m.matches)

	return ret, nil
}
