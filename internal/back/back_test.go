package back // nolint:testpackage

import (
	"context"
	"path/filepath"
	"testing"

	"swiss/internal/metrics"
	"swiss/internal/store"
	"swiss/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerNames(t *testing.T, b *Back, names ...string) []int64 {
	t.Helper()

	ids := make([]int64, len(names))
	for k, name := range names {
		player, err := b.RegisterPlayer(context.Background(), name)
		require.NoError(t, err)
		ids[k] = player.ID
	}

	return ids
}

func report(t *testing.T, b *Back, winnerID, loserID int64) {
	t.Helper()

	_, err := b.ReportMatch(context.Background(), winnerID, loserID)
	require.NoError(t, err)
}

func newSQLiteBack(t *testing.T) (*Back, *metrics.Mock) {
	t.Helper()

	s, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "swiss.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	m := metrics.NewMock()
	return New(s, m), m
}

func TestRegisterPlayerNormalizesName(t *testing.T) {
	b := New(store.NewMemory(), metrics.NewMock())

	// "a" followed by a combining acute accent.
	player, err := b.RegisterPlayer(context.Background(), "  Chandra Nala\u0301r \n")
	require.NoError(t, err)
	assert.Equal(t, "Chandra Nal\u00e1r", player.Name)
}

func TestRegisterCountAndReset(t *testing.T) {
	ctx := context.Background()
	b, m := newSQLiteBack(t)

	count, err := b.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	players := registerNames(t, b, "Markov Chaney", "Joe Malik", "Mao Tsu-hsi", "Atlanta Hope")
	report(t, b, players[0], players[1])

	count, err = b.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Equal(t, 4, m.PlayersRegistered())
	assert.Equal(t, 1, m.MatchesRecorded())

	require.NoError(t, b.ClearMatches(ctx))
	standings, err := b.Standings(ctx)
	require.NoError(t, err)
	for _, v := range standings {
		assert.Zero(t, v.Matches)
	}

	require.NoError(t, b.Reset(ctx))
	count, err = b.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestReportMatchErrors(t *testing.T) {
	ctx := context.Background()
	b, m := newSQLiteBack(t)
	players := registerNames(t, b, "Alpha", "Beta")

	_, err := b.ReportMatch(ctx, players[0], 9999)
	assert.ErrorIs(t, err, store.ErrUnknownPlayer)

	ref := util.NewUUIDAsBlob()
	match, err := b.ReportMatchWithRef(ctx, ref, players[0], players[1])
	require.NoError(t, err)
	assert.NotZero(t, match.ID)
	assert.Equal(t, ref, match.Ref)

	_, err = b.ReportMatchWithRef(ctx, ref, players[0], players[1])
	assert.ErrorIs(t, err, store.ErrDuplicateMatch)
	assert.Equal(t, 1, m.MatchesRecorded())
}

func TestHasPlayed(t *testing.T) {
	ctx := context.Background()
	b := New(store.NewMemory(), metrics.NewMock())
	players := registerNames(t, b, "Alpha", "Beta", "Gamma")
	report(t, b, players[1], players[0])

	played, err := b.HasPlayed(ctx, players[0], players[1])
	require.NoError(t, err)
	assert.True(t, played)

	played, err = b.HasPlayed(ctx, players[0], players[2])
	require.NoError(t, err)
	assert.False(t, played)
}

func TestFirstRoundScenario(t *testing.T) {
	ctx := context.Background()
	b, m := newSQLiteBack(t)
	players := registerNames(t, b, "Twilight Sparkle", "Fluttershy", "Applejack", "Pinkie Pie")
	a, bb, c, d := players[0], players[1], players[2], players[3]

	report(t, b, a, bb)
	report(t, b, c, d)

	standings, err := b.Standings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 4)

	wins := map[int64]int{}
	for _, v := range standings {
		assert.Equal(t, 1, v.Matches)
		wins[v.PlayerID] = v.Wins
	}
	assert.Equal(t, map[int64]int{a: 1, bb: 0, c: 1, d: 0}, wins)

	pairs, err := b.Pairings(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][2]int64{{bb, d}, {a, c}}, ids(pairs))
	assert.Equal(t, "Fluttershy", pairs[0].Player1Name)
	assert.Equal(t, "Pinkie Pie", pairs[0].Player2Name)
	assert.Equal(t, 1, m.PairingsComputed())
	assert.Zero(t, m.Rematches())
}

func TestPairingsFallBackToRematch(t *testing.T) {
	ctx := context.Background()
	b, m := newSQLiteBack(t)
	players := registerNames(t, b, "Alpha", "Beta")
	report(t, b, players[0], players[1])

	pairs, err := b.Pairings(ctx)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.True(t, pairs[0].Rematch)
	assert.Equal(t, [][2]int64{{players[1], players[0]}}, ids(pairs))
	assert.Equal(t, 1, m.Rematches())
}

func TestPairingsAvoidPlayedPairs(t *testing.T) {
	ctx := context.Background()
	b, _ := newSQLiteBack(t)
	p := registerNames(t, b, "P1", "P2", "P3", "P4")

	// Every pair but (P1, P2) and (P3, P4) already met.
	report(t, b, p[0], p[2])
	report(t, b, p[0], p[3])
	report(t, b, p[1], p[2])
	report(t, b, p[1], p[3])

	pairs, err := b.Pairings(ctx)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	for _, v := range pairs {
		assert.False(t, v.Rematch)
		played, err := b.HasPlayed(ctx, v.Player1ID, v.Player2ID)
		require.NoError(t, err)
		assert.False(t, played)
	}
}

func TestLoadFixtures(t *testing.T) {
	b := New(store.NewMemory(), metrics.NewMock())

	players, err := b.LoadFixtures(context.Background())
	require.NoError(t, err)
	assert.Len(t, players, 8)

	pairs, err := b.Pairings(context.Background())
	require.NoError(t, err)
	assert.Len(t, pairs, 4)
}
