package back

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swiss/internal/store"

	"github.com/charmbracelet/log"
)

// ErrOddPlayerCount is returned when pairing a round with an odd number of
// registered players, byes are not supported.
var ErrOddPlayerCount = errors.New("an even number of players is required to pair a round")

// Pairing is two players meeting in the next round.
type Pairing struct {
	Player1ID   int64  `json:"player1_id"`
	Player1Name string `json:"player1_name"`
	Player2ID   int64  `json:"player2_id"`
	Player2Name string `json:"player2_name"`

	// Rematch is set when the players already met, it only happens when no
	// other opponent was left for the first player.
	Rematch bool `json:"rematch"`
}

type playedFunc func(a, b int64) bool

// Pairings computes the pairings of the next round. Every registered player
// appears exactly once. Players are paired with their closest neighbour in
// the standings they have not played yet, if there is none they are paired
// with their direct neighbour anyway.
// Nothing is recorded, results must be reported with ReportMatch.
func (b *Back) Pairings(ctx context.Context) ([]Pairing, error) {
	start := time.Now()

	standings, err := b.Standings(ctx)
	if err != nil {
		return nil, err
	}

	if len(standings)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d players", ErrOddPlayerCount, len(standings))
	}

	matches, err := b.store.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch match history: %w", err)
	}

	pairs := pairPlayers(standings, newPairSet(matches).has)

	var rematches int
	for _, v := range pairs {
		if v.Rematch {
			rematches++
		}
	}

	b.metrics.IncPairingsComputed()
	b.metrics.IncRematches(rematches)
	b.metrics.ObservePairingDuration(time.Since(start).Seconds())
	log.Debug(
		"paired round",
		"players", len(standings), "history", len(matches),
		"rematches", rematches, "duration", time.Since(start),
	)

	return pairs, nil
}

// pairPlayers takes the first remaining player and pairs it with the nearest
// player down the list it has not played yet, or with the adjacent one if
// every remaining player was already played, until less than two players are
// left.
func pairPlayers(standings []Standing, played playedFunc) []Pairing {
	if len(standings) < 2 {
		return []Pairing{}
	}

	remaining := make([]Standing, len(standings))
	copy(remaining, standings)
	pairs := make([]Pairing, 0, len(standings)/2)

	for len(remaining) > 1 {
		anchor := remaining[0]
		pick, rematch := 1, true
		for i := 1; i < len(remaining); i++ {
			if !played(anchor.PlayerID, remaining[i].PlayerID) {
				pick, rematch = i, false
				break
			}
		}

		if rematch {
			log.Debug("no unplayed opponent left", "player", anchor.PlayerID, "opponent", remaining[1].PlayerID)
		}

		opponent := remaining[pick]
		pairs = append(pairs, Pairing{
			Player1ID:   anchor.PlayerID,
			Player1Name: anchor.Name,
			Player2ID:   opponent.PlayerID,
			Player2Name: opponent.Name,
			Rematch:     rematch,
		})

		remaining = removeStanding(remaining, pick)[1:]
	}

	return pairs
}

func removeStanding(standings []Standing, i int) []Standing {
	return standings[:i+copy(standings[i:], standings[i+1:])]
}

// pairKey is an unordered pair of player IDs.
type pairKey struct {
	lo, hi int64
}

func newPairKey(a, b int64) pairKey {
	if a > b {
		a, b = b, a
	}

	return pairKey{lo: a, hi: b}
}

// pairSet holds every pair of players that met at least once.
type pairSet map[pairKey]struct{}

func newPairSet(matches []store.Match) pairSet {
	set := make(pairSet, len(matches))
	for _, v := range matches {
		set[newPairKey(v.WinnerID, v.LoserID)] = struct{}{}
	}

	return set
}

func (s pairSet) has(a, b int64) bool {
	_, ok := s[newPairKey(a, b)]
	return ok
}
