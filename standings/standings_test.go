/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mikeb26/pgnstandings/pgn"
)

func game(round int, white, black string, result pgn.Result) pgn.Game {
	return pgn.Game{Round: round, White: white, Black: black, Result: result}
}

func TestCalculateScenario(t *testing.T) {
	games := []pgn.Game{
		game(1, "Alice", "Bob", pgn.ResultWhiteWins),
		game(2, "Alice", "Carol", pgn.ResultDraw),
	}

	want := []PlayerStanding{
		{Name: "Alice", Points: 1.5, Played: 2, Wins: 1, Draws: 1, Losses: 0},
		{Name: "Carol", Points: 0.5, Played: 1, Wins: 0, Draws: 1, Losses: 0},
		{Name: "Bob", Points: 0, Played: 1, Wins: 0, Draws: 0, Losses: 1},
	}
	if diff := cmp.Diff(want, Calculate(games)); diff != "" {
		t.Errorf("Calculate mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateEmpty(t *testing.T) {
	if got := Calculate(nil); len(got) != 0 {
		t.Errorf("Calculate(nil) = %v; want empty", got)
	}
}

func TestCalculateBye(t *testing.T) {
	cases := []struct {
		name   string
		result pgn.Result
		winner string
		loser  string
	}{
		{"white bye", pgn.ResultWhiteBye, "Alice", "BYE"},
		{"black bye", pgn.ResultBlackBye, "BYE", "Alice"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var g pgn.Game
			if c.winner == "Alice" {
				g = game(1, "Alice", "BYE", c.result)
			} else {
				g = game(1, "BYE", "Alice", c.result)
			}
			got := Calculate([]pgn.Game{g})
			if len(got) != 2 {
				t.Fatalf("expected 2 standings, got %v", got)
			}
			w := got[0]
			if w.Name != "Alice" {
				t.Fatalf("expected Alice ranked first, got %+v", got)
			}
			if w.Wins != 1 || w.Played != 0 || w.Points != 1 {
				t.Errorf("bye winner = %+v; want wins=1 played=0 points=1", w)
			}
			l := got[1]
			if l.Losses != 1 || l.Played != 0 {
				t.Errorf("bye loser = %+v; want losses=1 played=0", l)
			}
		})
	}
}

func TestCalculateUnfinished(t *testing.T) {
	games := []pgn.Game{
		game(1, "Alice", "Bob", pgn.ResultUnfinished),
		game(1, "Carol", "Dave", pgn.Result("forfeit")),
	}
	for _, ps := range Calculate(games) {
		if ps.Played != 1 || ps.Points != 0 || ps.Wins+ps.Draws+ps.Losses != 0 {
			t.Errorf("unexpected standing for unscored game: %+v", ps)
		}
	}
}

func TestPointLaw(t *testing.T) {
	games := []pgn.Game{
		game(1, "Alice", "Bob", pgn.ResultWhiteWins),
		game(1, "Carol", "Dave", pgn.ResultDraw),
		game(1, "Erin", "BYE", pgn.ResultWhiteBye),
		game(2, "Bob", "Carol", pgn.ResultBlackWins),
		game(2, "Dave", "Erin", pgn.ResultUnfinished),
		game(2, "BYE", "Alice", pgn.ResultBlackBye),
		game(3, "Alice", "Carol", pgn.ResultDraw),
	}

	var scored int
	for _, g := range games {
		if g.Result != pgn.ResultUnfinished {
			scored++
		}
	}

	var total float64
	for _, ps := range Calculate(games) {
		total += ps.Points
	}
	if total != float64(scored) {
		t.Errorf("total points = %v; want %v", total, scored)
	}
}

func TestRankOrder(t *testing.T) {
	list := []PlayerStanding{
		{Name: "C", Points: 2, Wins: 2},
		{Name: "B", Points: 3, Wins: 1},
		{Name: "A", Points: 3, Wins: 3},
	}
	Rank(list)

	var names []string
	for _, ps := range list {
		names = append(names, ps.Name)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, names); diff != "" {
		t.Errorf("Rank order mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateTiesKeepFirstAppearance(t *testing.T) {
	games := []pgn.Game{
		game(1, "Zed", "Yan", pgn.ResultDraw),
		game(1, "Amy", "Bea", pgn.ResultDraw),
	}

	var names []string
	for _, ps := range Calculate(games) {
		names = append(names, ps.Name)
	}
	if diff := cmp.Diff([]string{"Zed", "Yan", "Amy", "Bea"}, names); diff != "" {
		t.Errorf("tie order mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateNamesAreExact(t *testing.T) {
	games := []pgn.Game{
		game(1, "alice", "Alice", pgn.ResultWhiteWins),
		game(2, "Alice ", "Alice", pgn.ResultDraw),
	}
	if got := Calculate(games); len(got) != 3 {
		t.Errorf("expected 3 distinct players, got %v", got)
	}
}

func TestMergeMatchesCalculate(t *testing.T) {
	round1 := []pgn.Game{
		game(1, "Alice", "Bob", pgn.ResultBlackWins),
		game(1, "Carol", "Dave", pgn.ResultDraw),
	}
	round2 := []pgn.Game{
		game(2, "Bob", "Carol", pgn.ResultWhiteWins),
		game(2, "Dave", "Alice", pgn.ResultBlackWins),
		game(2, "Erin", "BYE", pgn.ResultWhiteBye),
	}
	round3 := []pgn.Game{
		game(3, "Alice", "Carol", pgn.ResultDraw),
		game(3, "Bob", "Erin", pgn.ResultUnfinished),
	}

	var all []pgn.Game
	all = append(all, round1...)
	all = append(all, round2...)
	all = append(all, round3...)

	merged := Merge(Tally(round1), Tally(round2), Tally(round3))
	if diff := cmp.Diff(Calculate(all), merged); diff != "" {
		t.Errorf("Merge mismatch (-calculate +merge):\n%s", diff)
	}
}

func TestBuildStandingsOutput(t *testing.T) {
	list := Calculate([]pgn.Game{
		game(1, "Alice", "Bob", pgn.ResultWhiteWins),
		game(2, "Alice", "Carol", pgn.ResultDraw),
		game(2, "Dave", "Erin", pgn.ResultDraw),
	})
	out := BuildStandingsOutput(list)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 6 {
		t.Fatalf("expected header plus 5 rows, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "Place") {
		t.Errorf("missing header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1.") || !strings.Contains(lines[1], "Alice") ||
		!strings.Contains(lines[1], "1½") {
		t.Errorf("unexpected first row: %q", lines[1])
	}
	// Carol, Dave and Erin are tied on ½ with no wins
	if !strings.HasPrefix(lines[2], "2.") {
		t.Errorf("expected place 2 on row 2: %q", lines[2])
	}
	for _, l := range lines[3:5] {
		if strings.HasPrefix(l, "3.") || strings.HasPrefix(l, "4.") {
			t.Errorf("tied row should have blank place: %q", l)
		}
	}
	if !strings.HasPrefix(lines[5], "5.") || !strings.Contains(lines[5], "Bob") {
		t.Errorf("unexpected last row: %q", lines[5])
	}

	if BuildStandingsOutput(nil) == "" {
		t.Errorf("expected a message for empty standings")
	}
}

func TestPlaces(t *testing.T) {
	list := Calculate([]pgn.Game{
		game(1, "Alice", "Bob", pgn.ResultWhiteWins),
		game(2, "Alice", "Carol", pgn.ResultDraw),
		game(2, "Dave", "Erin", pgn.ResultDraw),
	})
	if diff := cmp.Diff([]int{1, 2, 2, 2, 5}, Places(list)); diff != "" {
		t.Errorf("places mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPlayerStandingsOutput(t *testing.T) {
	list := Calculate([]pgn.Game{
		game(1, "Alice Smith", "Bob Jones", pgn.ResultWhiteWins),
		game(2, "Alice Smith", "Carol Smith", pgn.ResultDraw),
		game(2, "Dave Brown", "Erin Jones", pgn.ResultDraw),
	})

	tests := []struct {
		name   string
		query  string
		places []string
	}{
		{"case insensitive", "SMITH", []string{"1. Alice Smith", "2. Carol Smith"}},
		{"tied place kept", "erin", []string{"2. Erin Jones"}},
		{"last place kept", "bob", []string{"5. Bob Jones"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := BuildPlayerStandingsOutput(list, tc.query)
			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			if len(lines) != len(tc.places)+1 {
				t.Fatalf("expected header plus %v rows, got:\n%s",
					len(tc.places), out)
			}
			for idx, want := range tc.places {
				// place and name, ignoring column padding
				got := strings.Join(strings.Fields(lines[idx+1])[:3], " ")
				if got != want {
					t.Errorf("row %v = %q; want %q", idx+1, got, want)
				}
			}
		})
	}

	if got := BuildPlayerStandingsOutput(list, "zoe"); got != "No players match \"zoe\"\n" {
		t.Errorf("got %q", got)
	}
}
