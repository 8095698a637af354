/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"fmt"
	"strings"

	"github.com/mikeb26/pgnstandings/pgn"
)

// BuildInfoOutput formats the descriptive parts of the config.
func BuildInfoOutput(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%v\n", cfg.Name))
	sponsor := cfg.SponsorName
	if sponsor == "" {
		sponsor = "Unspecified"
	}
	sb.WriteString(fmt.Sprintf("Sponsor: %v\n", sponsor))
	if cfg.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %v\n", cfg.Location))
	}
	if cfg.StartDate != "" || cfg.EndDate != "" {
		dates := cfg.StartDate
		if cfg.EndDate != "" {
			dates = strings.TrimSpace(fmt.Sprintf("%v - %v", dates, cfg.EndDate))
		}
		sb.WriteString(fmt.Sprintf("Date: %v\n", dates))
	}
	if cfg.Type != "" {
		sb.WriteString(fmt.Sprintf("Format: %v\n", cfg.Type))
	}
	if len(cfg.Prizes) > 0 {
		sb.WriteString("Prizes:\n")
		for _, p := range cfg.Prizes {
			sb.WriteString(fmt.Sprintf("  - %v\n", p))
		}
	}
	sb.WriteString(fmt.Sprintf("Rounds: %v\n", len(cfg.Rounds)))

	return sb.String()
}

// BuildRoundsOutput summarizes each round in configured order.
func BuildRoundsOutput(t *Tournament) string {
	if len(t.Rounds) == 0 {
		return "No rounds configured\n"
	}

	var sb strings.Builder
	for _, r := range t.Rounds {
		if !r.Available {
			sb.WriteString(fmt.Sprintf("Round %v: not yet available (%v)\n",
				r.Number, r.Filename))
			continue
		}
		unfinished := 0
		for _, g := range r.Games {
			if g.Result == pgn.ResultUnfinished {
				unfinished++
			}
		}
		sb.WriteString(fmt.Sprintf("Round %v: %v games", r.Number, len(r.Games)))
		if unfinished > 0 {
			sb.WriteString(fmt.Sprintf(", %v in progress", unfinished))
		}
		sb.WriteString(fmt.Sprintf(" (%v)\n", r.Filename))
	}

	return sb.String()
}

// BuildRoundOutput formats one round's games into an aligned board table.
func BuildRoundOutput(r Round) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Round %v:\n\n", r.Number))
	if !r.Available {
		sb.WriteString("Results for this round are not yet available\n")
		return sb.String()
	}
	if len(r.Games) == 0 {
		sb.WriteString("No games\n")
		return sb.String()
	}

	type row struct{ board, white, result, black string }
	var rows []row
	for idx, g := range r.Games {
		rows = append(rows, row{
			board:  fmt.Sprintf("%d.", idx+1),
			white:  g.White,
			result: displayResult(g.Result),
			black:  g.Black,
		})
	}

	// Compute column widths
	maxB, maxW, maxR, maxBl := len("Board"), len("White"), len("Result"),
		len("Black")
	for _, rw := range rows {
		if l := len(rw.board); l > maxB {
			maxB = l
		}
		if l := runeLen(rw.white); l > maxW {
			maxW = l
		}
		if l := runeLen(rw.result); l > maxR {
			maxR = l
		}
		if l := runeLen(rw.black); l > maxBl {
			maxBl = l
		}
	}

	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s\n", maxB, "Board", maxW,
		"White", maxR, "Result", maxBl, "Black"))
	for _, rw := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s\n", maxB, rw.board,
			maxW, rw.white, maxR, rw.result, maxBl, rw.black))
	}

	return sb.String()
}

// BuildGameOutput formats a game's header and numbered move list.
func BuildGameOutput(g pgn.Game) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%v vs. %v: %v\n", g.White, g.Black,
		displayResult(g.Result)))
	sb.WriteString(fmt.Sprintf("Round %v", g.Round))
	if g.Date != "" {
		sb.WriteString(fmt.Sprintf(", %v", g.Date))
	}
	sb.WriteString("\n\n")

	if len(g.Moves) == 0 {
		sb.WriteString("No moves recorded\n")
		return sb.String()
	}

	const movesPerLine = 8
	for idx := 0; idx < len(g.Moves); idx += 2 {
		sb.WriteString(fmt.Sprintf("%d. %v", idx/2+1, g.Moves[idx]))
		if idx+1 < len(g.Moves) {
			sb.WriteString(fmt.Sprintf(" %v", g.Moves[idx+1]))
		}
		if (idx/2+1)%movesPerLine == 0 || idx+2 >= len(g.Moves) {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}

	return sb.String()
}

// BuildPositionOutput draws the board after the first ply moves of g,
// followed by its FEN. Ply 0 is the starting position.
func BuildPositionOutput(g pgn.Game, ply int) (string, error) {
	pos, err := g.Position(ply)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v vs. %v, round %v\n", g.White, g.Black,
		g.Round))
	if ply == 0 {
		sb.WriteString("Starting position\n")
	} else {
		dots := "."
		if ply%2 == 0 {
			dots = "..."
		}
		sb.WriteString(fmt.Sprintf("After %d%v %v (ply %d of %d)\n",
			(ply+1)/2, dots, g.Moves[ply-1], ply, len(g.Moves)))
	}
	sb.WriteString(pos.Board().Draw())
	sb.WriteString(fmt.Sprintf("\nFEN: %v\n", pos.String()))

	return sb.String(), nil
}

func displayResult(r pgn.Result) string {
	switch r {
	case pgn.ResultDraw:
		return "½-½"
	case pgn.ResultUnfinished:
		return "in progress"
	case pgn.ResultWhiteBye:
		return "BYE(1)-0"
	case pgn.ResultBlackBye:
		return "0-BYE(1)"
	default:
		return string(r)
	}
}

func runeLen(s string) int {
	return len([]rune(s))
}
