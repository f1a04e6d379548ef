package back // nolint:testpackage

import (
	"context"
	"testing"
	"time"

	"swiss/internal/metrics"
	"swiss/internal/store"
	"swiss/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	glicko "github.com/zelenin/go-glicko2"
)

func TestPeriodCompute(t *testing.T) {
	cases := []struct {
		fn              func(time.Time) time.Time
		input, expected string
	}{
		{currentPeriodStart, "2020-05-15 02:00 +0200", "2020-05-11"},
		{currentPeriodStart, "2020-05-11 02:00 +0200", "2020-05-11"},
		{currentPeriodStart, "2020-05-10 02:00 +0200", "2020-05-04"},

		{nextPeriodStart, "2020-05-15 02:00 +0200", "2020-05-18"},
		{nextPeriodStart, "2020-05-11 02:00 +0200", "2020-05-18"},
		{nextPeriodStart, "2020-05-10 02:00 +0200", "2020-05-11"},

		// Interpreting the day of week in the wrong TZ would break these.
		{currentPeriodStart, "2020-05-11 00:30 +0100", "2020-05-04"},
		{nextPeriodStart, "2020-05-10 23:30 -0500", "2020-05-18"},
		{currentPeriodStart, "2020-05-15 00:00 +0200", "2020-05-11"},
		{currentPeriodStart, "2020-05-11 00:00 +0200", "2020-05-04"},
		{currentPeriodStart, "2020-05-10 00:00 +0200", "2020-05-04"},
	}

	for k, v := range cases {
		input, err := time.Parse("2006-01-02 15:04 -0700", v.input)
		require.NoError(t, err)
		assert.Equal(t, v.expected, v.fn(input).Format("2006-01-02"), "case #%d", k)
	}
}

func matchAt(date string, winnerID, loserID int64) store.Match {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}

	return store.Match{
		CreatedAt: util.NewTimeAsTimestamp(t.Add(12 * time.Hour)),
		WinnerID:  winnerID,
		LoserID:   loserID,
	}
}

func TestSplitPeriods(t *testing.T) {
	assert.Nil(t, splitPeriods(nil, time.Now()))

	matches := []store.Match{
		matchAt("2020-05-12", 1, 2),
		matchAt("2020-05-13", 3, 4),
		matchAt("2020-05-27", 1, 3),
	}
	now, err := time.Parse("2006-01-02", "2020-06-03")
	require.NoError(t, err)

	periods := splitPeriods(matches, now)
	require.Len(t, periods, 4)
	assert.Len(t, periods[0], 2)
	assert.Empty(t, periods[1])
	assert.Len(t, periods[2], 1)
	assert.Empty(t, periods[3])
}

func TestRatings(t *testing.T) {
	ctx := context.Background()
	b := New(store.NewMemory(), metrics.NewMock())

	winner, err := b.RegisterPlayer(ctx, "Nabooru")
	require.NoError(t, err)
	loser, err := b.RegisterPlayer(ctx, "Ruto")
	require.NoError(t, err)
	idle, err := b.RegisterPlayer(ctx, "Rauru")
	require.NoError(t, err)

	_, err = b.ReportMatch(ctx, winner.ID, loser.ID)
	require.NoError(t, err)

	ratings, err := b.Ratings(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, ratings, 3)

	assert.Equal(t, winner.ID, ratings[0].PlayerID)
	assert.Equal(t, idle.ID, ratings[1].PlayerID)
	assert.Equal(t, loser.ID, ratings[2].PlayerID)

	assert.Greater(t, ratings[0].Rating, float64(glicko.RATING_BASE_R))
	assert.InDelta(t, glicko.RATING_BASE_R, ratings[1].Rating, 0.0001)
	assert.Less(t, ratings[2].Rating, float64(glicko.RATING_BASE_R))
	assert.Greater(t, ratings[1].Deviation, ratings[0].Deviation)
}

func TestRatingsWithoutMatches(t *testing.T) {
	ctx := context.Background()
	b := New(store.NewMemory(), metrics.NewMock())

	_, err := b.RegisterPlayer(ctx, "Saria")
	require.NoError(t, err)

	ratings, err := b.Ratings(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.InDelta(t, glicko.RATING_BASE_R, ratings[0].Rating, 0.0001)
	assert.InDelta(t, glicko.RATING_BASE_RD, ratings[0].Deviation, 0.0001)
}
