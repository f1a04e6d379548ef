// Package back computes the standings and the Swiss pairings of a
// tournament on top of a store.Store.
package back

import (
	"context"
	"fmt"
	"strings"

	"swiss/internal/metrics"
	"swiss/internal/store"
	"swiss/internal/util"

	"github.com/charmbracelet/log"
	"golang.org/x/text/unicode/norm"
)

// Back holds no state of its own, every call reads the store again.
type Back struct {
	store   store.Store
	metrics metrics.Metrics
}

func New(s store.Store, m metrics.Metrics) *Back {
	return &Back{
		store:   s,
		metrics: m,
	}
}

// RegisterPlayer adds a player to the tournament, the store assigns its ID.
// Names are trimmed and NFC-normalized so visually identical names are
// stored identically, no other check is done.
func (b *Back) RegisterPlayer(ctx context.Context, name string) (store.Player, error) {
	player, err := b.store.RegisterPlayer(ctx, normalizeName(name))
	if err != nil {
		return store.Player{}, fmt.Errorf("unable to register player: %w", err)
	}

	b.metrics.IncPlayersRegistered()
	log.Debug("registered player", "id", player.ID, "name", player.Name)

	return player, nil
}

func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func (b *Back) CountPlayers(ctx context.Context) (int, error) {
	count, err := b.store.CountPlayers(ctx)
	if err != nil {
		return 0, fmt.Errorf("unable to count players: %w", err)
	}

	return count, nil
}

// ReportMatch records the outcome of a single match.
func (b *Back) ReportMatch(ctx context.Context, winnerID, loserID int64) (store.Match, error) {
	return b.ReportMatchWithRef(ctx, util.NewUUIDAsBlob(), winnerID, loserID)
}

// ReportMatchWithRef records the outcome of a single match under a caller
// provided reference, reporting the same reference twice fails with
// store.ErrDuplicateMatch.
func (b *Back) ReportMatchWithRef(
	ctx context.Context,
	ref util.UUIDAsBlob,
	winnerID, loserID int64,
) (store.Match, error) {
	match := store.NewMatch(winnerID, loserID)
	match.Ref = ref

	if err := b.store.RecordMatch(ctx, &match); err != nil {
		return store.Match{}, fmt.Errorf("unable to record match: %w", err)
	}

	b.metrics.IncMatchesRecorded()
	log.Debug("recorded match", "id", match.ID, "winner", winnerID, "loser", loserID)

	return match, nil
}

// HasPlayed returns true if both players already played against each other,
// whoever won.
func (b *Back) HasPlayed(ctx context.Context, p1, p2 int64) (bool, error) {
	played, err := b.store.HasPlayed(ctx, p1, p2)
	if err != nil {
		return false, fmt.Errorf("unable to lookup match history: %w", err)
	}

	return played, nil
}

func (b *Back) ClearMatches(ctx context.Context) error {
	if err := b.store.ClearMatches(ctx); err != nil {
		return fmt.Errorf("unable to clear matches: %w", err)
	}

	log.Info("cleared all matches")
	return nil
}

func (b *Back) ClearPlayers(ctx context.Context) error {
	if err := b.store.ClearPlayers(ctx); err != nil {
		return fmt.Errorf("unable to clear players: %w", err)
	}

	log.Info("cleared all players")
	return nil
}

// Reset removes every match then every player.
func (b *Back) Reset(ctx context.Context) error {
	if err := b.ClearMatches(ctx); err != nil {
		return err
	}

	return b.ClearPlayers(ctx)
}

// LoadFixtures registers a handful of players for quick testing during
// development.
func (b *Back) LoadFixtures(ctx context.Context) ([]store.Player, error) {
	names := []string{
		"Darunia", "Nabooru", "Rauru", "Ruto",
		"Saria", "Zelda", "Impa", "Kaepora Gaebora",
	}

	players := make([]store.Player, 0, len(names))
	for _, name := range names {
		player, err := b.RegisterPlayer(ctx, name)
		if err != nil {
			return nil, err
		}

		players = append(players, player)
	}

	return players, nil
}
