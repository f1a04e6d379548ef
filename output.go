package main

import (
	"strconv"

	"swiss/internal/back"
	"swiss/internal/util"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// nolint:gochecknoglobals
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	rematchStyle = cellStyle.Foreground(lipgloss.Color("214"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func standingsTable(standings []back.Standing) string {
	t := newTable("ID", "Name", "Wins", "Matches", "Last played")
	for _, v := range standings {
		t.Row(
			strconv.FormatInt(v.PlayerID, 10),
			v.Name,
			strconv.Itoa(v.Wins),
			strconv.Itoa(v.Matches),
			util.Datetime(v.LastPlayedAt),
		)
	}

	return t.String()
}

func pairingsTable(pairings []back.Pairing) string {
	t := newTable("ID", "Player", "ID", "Opponent", "Rematch")
	for _, v := range pairings {
		rematch := ""
		if v.Rematch {
			rematch = "yes"
		}

		t.Row(
			strconv.FormatInt(v.Player1ID, 10),
			v.Player1Name,
			strconv.FormatInt(v.Player2ID, 10),
			v.Player2Name,
			rematch,
		)
	}

	t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case row < len(pairings) && pairings[row].Rematch:
			return rematchStyle
		default:
			return cellStyle
		}
	})

	return t.String()
}

func ratingsTable(ratings []back.Rating) string {
	t := newTable("ID", "Name", "Rating", "Deviation")
	for _, v := range ratings {
		t.Row(
			strconv.FormatInt(v.PlayerID, 10),
			v.Name,
			strconv.FormatFloat(v.Rating, 'f', 0, 64),
			strconv.FormatFloat(v.Deviation, 'f', 0, 64),
		)
	}

	return t.String()
}
