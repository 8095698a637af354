/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"fmt"
	"strings"

	"github.com/mikeb26/pgnstandings/internal"
)

// BuildStandingsOutput formats ranked standings into an aligned table. Rows
// tied with the row above on points and wins leave the place column blank.
func BuildStandingsOutput(list []PlayerStanding) string {
	if len(list) == 0 {
		return "No games have been played yet\n"
	}

	places := Places(list)
	for idx := len(places) - 1; idx > 0; idx-- {
		if places[idx] == places[idx-1] {
			places[idx] = 0
		}
	}

	return buildTable(list, places)
}

// BuildPlayerStandingsOutput is BuildStandingsOutput limited to players whose
// name contains query, ignoring case. Each row keeps its place from the full
// ranking.
func BuildPlayerStandingsOutput(list []PlayerStanding, query string) string {
	places := Places(list)
	q := strings.ToLower(strings.TrimSpace(query))

	var matched []PlayerStanding
	var matchedPlaces []int
	for idx, ps := range list {
		if strings.Contains(strings.ToLower(ps.Name), q) {
			matched = append(matched, ps)
			matchedPlaces = append(matchedPlaces, places[idx])
		}
	}
	if len(matched) == 0 {
		return fmt.Sprintf("No players match \"%v\"\n", query)
	}

	return buildTable(matched, matchedPlaces)
}

// Places returns the 1-based place of each ranked standing. Players tied on
// points and wins share the place of the first of them.
func Places(list []PlayerStanding) []int {
	places := make([]int, len(list))
	for idx, ps := range list {
		places[idx] = idx + 1
		if idx != 0 && ps.Points == list[idx-1].Points &&
			ps.Wins == list[idx-1].Wins {
			places[idx] = places[idx-1]
		}
	}

	return places
}

// buildTable renders list with the given places; a zero place is left blank.
func buildTable(list []PlayerStanding, places []int) string {
	type row struct{ place, player, score, w, d, l, played string }
	var rows []row
	for idx, ps := range list {
		place := ""
		if places[idx] != 0 {
			place = fmt.Sprintf("%v.", places[idx])
		}
		rows = append(rows, row{
			place:  place,
			player: ps.Name,
			score:  internal.ScoreToString(ps.Points),
			w:      fmt.Sprintf("%d", ps.Wins),
			d:      fmt.Sprintf("%d", ps.Draws),
			l:      fmt.Sprintf("%d", ps.Losses),
			played: fmt.Sprintf("%d", ps.Played),
		})
	}

	// Compute column widths in runes to match fmt's padding of ½
	maxP, maxN, maxS := len("Place"), len("Name"), len("Score")
	for _, r := range rows {
		if l := len(r.place); l > maxP {
			maxP = l
		}
		if l := runeLen(r.player); l > maxN {
			maxN = l
		}
		if l := runeLen(r.score); l > maxS {
			maxS = l
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  W  D  L  Played\n", maxP,
		"Place", maxN, "Name", maxS, "Score"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-2s %-2s %-2s %s\n", maxP,
			r.place, maxN, r.player, maxS, r.score, r.w, r.d, r.l, r.played))
	}

	return sb.String()
}

func runeLen(s string) int {
	return len([]rune(s))
}
