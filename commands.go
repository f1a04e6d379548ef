package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"swiss/internal/back"

	"github.com/spf13/cobra"
)

func init() { // nolint:gochecknoinits
	resetCmd.Flags().BoolVar(&matchesOnly, "matches-only", false, "only delete matches, keep players")
	signURLCmd.Flags().DurationVar(&signURLValidity, "valid-for", 15*time.Minute, "how long the signed URL stays valid")

	rootCmd.AddCommand(
		versionCmd,
		migrateCmd,
		registerCmd,
		reportCmd,
		countCmd,
		standingsCmd,
		pairingsCmd,
		ratingsCmd,
		playedCmd,
		resetCmd,
		serveCmd,
		signURLCmd,
		fixturesCmd,
	)
}

// nolint:gochecknoglobals
var (
	matchesOnly     bool
	signURLValidity time.Duration
)

// nolint:gochecknoglobals
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the current version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Swiss %s\n", Version)
	},
}

// nolint:gochecknoglobals
var registerCmd = &cobra.Command{
	Use:   "register NAME",
	Short: "Register a new player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBack(func(b *back.Back) error {
			player, err := b.RegisterPlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "registered %s with ID %d\n", player.Name, player.ID)
			return nil
		})
	},
}

// nolint:gochecknoglobals
var reportCmd = &cobra.Command{
	Use:   "report WINNER_ID LOSER_ID",
	Short: "Record the outcome of a match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		return withBack(func(b *back.Back) error {
			match, err := b.ReportMatch(cmd.Context(), ids[0], ids[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "recorded match %d (%s)\n", match.ID, match.Ref)
			return nil
		})
	},
}

// nolint:gochecknoglobals
var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Display the number of registered players",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withBack(func(b *back.Back) error {
			count, err := b.CountPlayers(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		})
	},
}

// nolint:gochecknoglobals
var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Display the players ranked by wins, fewest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withBack(func(b *back.Back) error {
			standings, err := b.Standings(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), standingsTable(standings))
			return nil
		})
	},
}

// nolint:gochecknoglobals
var pairingsCmd = &cobra.Command{
	Use:   "pairings",
	Short: "Compute the pairings of the next round",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withBack(func(b *back.Back) error {
			pairings, err := b.Pairings(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), pairingsTable(pairings))
			return nil
		})
	},
}

// nolint:gochecknoglobals
var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Display the Glicko-2 ratings computed from every match",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withBack(func(b *back.Back) error {
			ratings, err := b.Ratings(cmd.Context(), time.Now())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ratingsTable(ratings))
			return nil
		})
	},
}

// nolint:gochecknoglobals
var playedCmd = &cobra.Command{
	Use:   "played PLAYER_ID PLAYER_ID",
	Short: "Tell if two players already played against each other",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		return withBack(func(b *back.Back) error {
			played, err := b.HasPlayed(cmd.Context(), ids[0], ids[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), played)
			return nil
		})
	},
}

// nolint:gochecknoglobals
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every match and every player",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withBack(func(b *back.Back) error {
			if matchesOnly {
				return b.ClearMatches(cmd.Context())
			}

			return b.Reset(cmd.Context())
		})
	},
}

// nolint:gochecknoglobals
var signURLCmd = &cobra.Command{
	Use:   "sign-url URL",
	Short: "Sign an admin URL with the web token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		signed, err := conf.SignURL(args[0], signURLValidity)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), signed)
		return nil
	},
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for k, v := range args {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.New("invalid player ID: " + strconv.Quote(v))
		}
		ids[k] = id
	}

	return ids, nil
}
