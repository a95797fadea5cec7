package leaderboard

import (
	"cmp"
	"slices"

	"github.com/mauv0809/jornada/internal/club"
	"github.com/mauv0809/jornada/internal/jornada"
)

const (
	pointsWin  = 3
	pointsDraw = 1
)

// Calculate aggregates matches into one row per roster player.
//
// Only complete matches count. Every player in a side's snapshot is credited with that side's
// result; ids that are not in the roster are ignored. A player listed on both sides of a match
// is credited with both results.
//
// Rows are ordered by points, goal difference and wins, all descending. Remaining ties are
// ordered by name and then by player id so the output does not depend on roster order.
func Calculate(players []club.Player, matches []jornada.MatchSlot) []Row {
	index := make(map[string]*Row, len(players))
	rows := make([]*Row, 0, len(players))
	for _, p := range players {
		if _, dup := index[p.ID]; dup {
			continue
		}
		row := &Row{PlayerID: p.ID, Name: p.Name}
		index[p.ID] = row
		rows = append(rows, row)
	}

	for _, m := range matches {
		if !m.IsComplete {
			continue
		}
		diff := m.ScoreA - m.ScoreB
		for _, id := range m.TeamAPlayers {
			if row := index[id]; row != nil {
				row.credit(diff)
			}
		}
		for _, id := range m.TeamBPlayers {
			if row := index[id]; row != nil {
				row.credit(-diff)
			}
		}
	}

	slices.SortFunc(rows, func(a, b *Row) int {
		return cmp.Or(
			cmp.Compare(b.Pts, a.Pts),
			cmp.Compare(b.GD, a.GD),
			cmp.Compare(b.W, a.W),
			cmp.Compare(a.Name, b.Name),
			cmp.Compare(a.PlayerID, b.PlayerID),
		)
	})

	table := make([]Row, len(rows))
	for i, row := range rows {
		row.Rank = i + 1
		table[i] = *row
	}
	return table
}

// credit applies one match result, seen from the player's side, to the row.
func (r *Row) credit(diff int) {
	r.GP++
	r.GD += diff
	switch {
	case diff > 0:
		r.W++
		r.Pts += pointsWin
	case diff < 0:
		r.L++
	default:
		r.D++
		r.Pts += pointsDraw
	}
}
