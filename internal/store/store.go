// Package store holds the persistent player and match records a tournament
// is computed from.
package store

import (
	"context"
	"errors"
	"time"

	"swiss/internal/util"

	"gopkg.in/guregu/null.v4"
)

var (
	// ErrUnknownPlayer is returned when a match references a player that is
	// not registered.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrDuplicateMatch is returned when a match is recorded twice with the
	// same reference.
	ErrDuplicateMatch = errors.New("match already recorded")
)

// Store is the data store the standings and pairing engines read from.
type Store interface {
	ClearMatches(ctx context.Context) error
	ClearPlayers(ctx context.Context) error
	CountPlayers(ctx context.Context) (int, error)
	RegisterPlayer(ctx context.Context, name string) (Player, error)
	ListPlayersWithStats(ctx context.Context) ([]PlayerStats, error)
	RecordMatch(ctx context.Context, match *Match) error
	HasPlayed(ctx context.Context, a, b int64) (bool, error)
	ListMatches(ctx context.Context) ([]Match, error)
	Close() error
}

// A Player is a registered competitor, its ID is assigned by the store.
type Player struct {
	ID        int64                `db:"id" json:"id"`
	CreatedAt util.TimeAsTimestamp `db:"created_at" json:"created_at"`
	Name      string               `db:"name" json:"name"`
}

// A Match is the outcome of a single game between two players.
type Match struct {
	ID        int64                `db:"id" json:"id"`
	Ref       util.UUIDAsBlob      `db:"ref" json:"ref"`
	CreatedAt util.TimeAsTimestamp `db:"created_at" json:"created_at"`
	WinnerID  int64                `db:"winner_id" json:"winner_id"`
	LoserID   int64                `db:"loser_id" json:"loser_id"`
}

// NewMatch creates a Match with a fresh reference, ready to be recorded.
func NewMatch(winnerID, loserID int64) Match {
	return Match{
		Ref:       util.NewUUIDAsBlob(),
		CreatedAt: util.NewTimeAsTimestamp(time.Now()),
		WinnerID:  winnerID,
		LoserID:   loserID,
	}
}

// Involves returns true if both players took part in the match, regardless of
// who won.
func (m Match) Involves(a, b int64) bool {
	return (m.WinnerID == a && m.LoserID == b) || (m.WinnerID == b && m.LoserID == a)
}

// PlayerStats is a player along with its win and match counts.
type PlayerStats struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Wins         int       `db:"wins"`
	Matches      int       `db:"matches"`
	LastPlayedAt null.Time `db:"-"`
}
