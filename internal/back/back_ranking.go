package back

import (
	"context"
	"fmt"
	"sort"
	"time"

	"swiss/internal/store"

	"github.com/charmbracelet/log"
	glicko "github.com/zelenin/go-glicko2"
)

// Rating is a player's Glicko-2 rating computed from the whole match history.
type Rating struct {
	PlayerID   int64   `json:"player_id"`
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	Deviation  float64 `json:"deviation"`
	Volatility float64 `json:"volatility"`
}

type byRating []Rating

func (a byRating) Len() int {
	return len(a)
}

func (a byRating) Less(i, j int) bool {
	if a[i].Rating != a[j].Rating {
		return a[i].Rating > a[j].Rating
	}

	return a[i].PlayerID < a[j].PlayerID
}

func (a byRating) Swap(i, j int) {
	a[i], a[j] = a[j], a[i]
}

// Ratings replays every recorded match in weekly rating periods up to the
// period containing now and returns the resulting ratings, best first.
// Players absent from a period still have their deviation decay.
func (b *Back) Ratings(ctx context.Context, now time.Time) ([]Rating, error) {
	stats, err := b.store.ListPlayersWithStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch players: %w", err)
	}

	matches, err := b.store.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch match history: %w", err)
	}

	glickoPlayers := make(map[int64]*glicko.Player, len(stats))
	for _, v := range stats {
		glickoPlayers[v.ID] = newGlickoPlayer()
	}

	start := time.Now()
	for _, period := range splitPeriods(matches, now) {
		computePeriod(period, glickoPlayers)
	}
	log.Debug(
		"recalculated ratings",
		"matches", len(matches), "players", len(glickoPlayers),
		"duration", time.Since(start),
	)

	ret := make([]Rating, 0, len(stats))
	for _, v := range stats {
		rating := glickoPlayers[v.ID].Rating()
		ret = append(ret, Rating{
			PlayerID:   v.ID,
			Name:       v.Name,
			Rating:     rating.R(),
			Deviation:  rating.Rd(),
			Volatility: rating.Sigma(),
		})
	}

	sort.Sort(byRating(ret))

	return ret, nil
}

func newGlickoPlayer() *glicko.Player {
	return glicko.NewPlayer(glicko.NewRating(
		glicko.RATING_BASE_R,
		glicko.RATING_BASE_RD,
		glicko.RATING_BASE_SIGMA,
	))
}

// splitPeriods groups matches by rating period, from the period of the first
// match to the one containing now. Empty periods are kept so inactive players
// decay.
func splitPeriods(matches []store.Match, now time.Time) [][]store.Match {
	if len(matches) == 0 {
		return nil
	}

	first := matches[0].CreatedAt.Time()
	for _, v := range matches[1:] {
		if v.CreatedAt.Time().Before(first) {
			first = v.CreatedAt.Time()
		}
	}

	firstPeriodStart := currentPeriodStart(first)
	end := nextPeriodStart(now)
	if last := nextPeriodStart(latest(matches)); last.After(end) {
		end = last
	}

	var periods [][]store.Match
	for i := firstPeriodStart; i.Before(end); i = i.AddDate(0, 0, 7) {
		periodEnd := i.AddDate(0, 0, 7)
		period := []store.Match{}
		for _, v := range matches {
			t := v.CreatedAt.Time()
			if !t.Before(i) && t.Before(periodEnd) {
				period = append(period, v)
			}
		}

		periods = append(periods, period)
	}

	return periods
}

func latest(matches []store.Match) time.Time {
	var ret time.Time
	for _, v := range matches {
		if t := v.CreatedAt.Time(); t.After(ret) {
			ret = t
		}
	}

	return ret
}

func computePeriod(matches []store.Match, glickoPlayers map[int64]*glicko.Player) {
	getGlickoPlayer := func(playerID int64) *glicko.Player {
		p, ok := glickoPlayers[playerID]
		if !ok {
			p = newGlickoPlayer()
			glickoPlayers[playerID] = p
		}
		return p
	}

	period := glicko.NewRatingPeriod()
	// Add players so Glicko-2 know to ensure inactive players decay.
	for k := range glickoPlayers {
		period.AddPlayer(glickoPlayers[k])
	}

	for _, v := range matches {
		period.AddMatch(getGlickoPlayer(v.WinnerID), getGlickoPlayer(v.LoserID), glicko.MATCH_RESULT_WIN)
	}

	period.Calculate()
}

// currentPeriodStart returns the previous monday at 00:00 UTC.
func currentPeriodStart(t time.Time) time.Time {
	t = t.UTC()

	if wd := t.Weekday(); wd == time.Sunday {
		t = t.AddDate(0, 0, -6)
	} else {
		t = t.AddDate(0, 0, -int(wd)+1)
	}

	return t.Truncate(24 * time.Hour)
}

// nextPeriodStart returns the next monday at 00:00 UTC.
func nextPeriodStart(t time.Time) time.Time {
	return currentPeriodStart(t).AddDate(0, 0, 7)
}
