package back

import (
	"context"
	"fmt"
	"sort"

	"gopkg.in/guregu/null.v4"
)

// Standing is a player's record at the time standings were computed.
type Standing struct {
	PlayerID     int64     `json:"player_id"`
	Name         string    `json:"name"`
	Wins         int       `json:"wins"`
	Matches      int       `json:"matches"`
	LastPlayedAt null.Time `json:"last_played_at"`
}

// byWins orders standings by ascending wins, the pairing relies on it to pair
// neighbours. Ties are broken by player ID so the output is stable.
type byWins []Standing

func (a byWins) Len() int {
	return len(a)
}

func (a byWins) Less(i, j int) bool {
	if a[i].Wins != a[j].Wins {
		return a[i].Wins < a[j].Wins
	}

	return a[i].PlayerID < a[j].PlayerID
}

func (a byWins) Swap(i, j int) {
	a[i], a[j] = a[j], a[i]
}

// Standings returns every registered player exactly once, sorted by
// ascending number of wins: the first entry has the fewest wins.
func (b *Back) Standings(ctx context.Context) ([]Standing, error) {
	stats, err := b.store.ListPlayersWithStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch player stats: %w", err)
	}

	ret := make([]Standing, len(stats))
	for k, v := range stats {
		ret[k] = Standing{
			PlayerID:     v.ID,
			Name:         v.Name,
			Wins:         v.Wins,
			Matches:      v.Matches,
			LastPlayedAt: v.LastPlayedAt,
		}
	}

	sort.Sort(byWins(ret))

	return ret, nil
}
