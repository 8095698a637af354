/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package standings folds parsed games into a ranked per-player standings
// list.
package standings

import (
	"sort"

	"github.com/mikeb26/pgnstandings/pgn"
)

// PlayerStanding is one player's aggregated record. Byes count toward Wins
// and Points but not Played, so Wins+Draws+Losses may exceed Played.
type PlayerStanding struct {
	Name   string
	Points float64
	Played int
	Wins   int
	Draws  int
	Losses int
}

// table keeps standings in first-appearance order with an index for lookup
// by exact player name.
type table struct {
	order []*PlayerStanding
	byKey map[string]*PlayerStanding
}

func newTable() *table {
	return &table{byKey: make(map[string]*PlayerStanding)}
}

func (t *table) getOrInit(name string) *PlayerStanding {
	if ps, ok := t.byKey[name]; ok {
		return ps
	}
	ps := &PlayerStanding{Name: name}
	t.byKey[name] = ps
	t.order = append(t.order, ps)

	return ps
}

func (t *table) list() []PlayerStanding {
	out := make([]PlayerStanding, 0, len(t.order))
	for _, ps := range t.order {
		out = append(out, *ps)
	}

	return out
}

// Rank sorts list in place by points then wins, both descending. Players tied
// on both keep their relative order.
func Rank(list []PlayerStanding) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Points != list[j].Points {
			return list[i].Points > list[j].Points
		}
		return list[i].Wins > list[j].Wins
	})
}

// Calculate folds games, in order, into one standing per distinct player
// name appearing as White or Black, ranked by points and then wins. Players
// tied on both keep the order in which they first appeared.
func Calculate(games []pgn.Game) []PlayerStanding {
	out := Tally(games)
	Rank(out)

	return out
}

// Tally is Calculate without the ranking step: standings are returned in
// order of first appearance.
func Tally(games []pgn.Game) []PlayerStanding {
	t := newTable()
	for _, g := range games {
		apply(t, g)
	}

	return t.list()
}

func apply(t *table, g pgn.Game) {
	white := t.getOrInit(g.White)
	black := t.getOrInit(g.Black)

	if !g.Result.IsBye() {
		white.Played++
		black.Played++
	}

	switch g.Result {
	case pgn.ResultWhiteWins, pgn.ResultWhiteBye:
		white.Points += 1
		white.Wins++
		black.Losses++
	case pgn.ResultBlackWins, pgn.ResultBlackBye:
		black.Points += 1
		black.Wins++
		white.Losses++
	case pgn.ResultDraw:
		white.Points += 0.5
		black.Points += 0.5
		white.Draws++
		black.Draws++
	default:
		// unfinished or unrecognized; counted as played above but unscored
	}
}

// Merge combines partial tallies, e.g. one per round, by summing each
// player's counters and ranks the result. Names are inserted in shard order,
// so merging per-round Tally output in round order is identical to Calculate
// over all of the games.
func Merge(shards ...[]PlayerStanding) []PlayerStanding {
	t := newTable()
	for _, shard := range shards {
		for _, part := range shard {
			ps := t.getOrInit(part.Name)
			ps.Points += part.Points
			ps.Played += part.Played
			ps.Wins += part.Wins
			ps.Draws += part.Draws
			ps.Losses += part.Losses
		}
	}

	out := t.list()
	Rank(out)

	return out
}
