/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pgn

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/notnil/chess"

	"github.com/mikeb26/pgnstandings/internal"
)

// Result is the value of a game's Result tag.
type Result string

const (
	ResultWhiteWins  Result = "1-0"
	ResultBlackWins  Result = "0-1"
	ResultDraw       Result = "1/2-1/2"
	ResultUnfinished Result = "*"
	ResultWhiteBye   Result = "1-0 (Bye)"
	ResultBlackBye   Result = "0-1 (Bye)"
)

// IsBye reports whether the result marks a game awarded without an opponent.
func (r Result) IsBye() bool {
	return strings.Contains(string(r), "Bye")
}

func (r Result) String() string {
	return string(r)
}

// Game is one played or scheduled game from a round file. Games are not
// modified after Parse returns them.
type Game struct {
	// ID is unique within one load but includes the load time, so the same
	// input loaded twice yields different IDs.
	ID     string
	White  string
	Black  string
	Result Result
	// PGN is the original game block, kept verbatim for replay.
	PGN   string
	Round int
	// Moves holds one SAN string per ply, replayed from the starting
	// position. It is empty when the movetext could not be replayed.
	Moves []string
	Date  string
	Tags  map[string]string
}

// MoveText returns the move history space-joined for display.
func (g Game) MoveText() string {
	return strings.Join(g.Moves, " ")
}

// ParsedDate interprets the Date tag. Unknown or partial PGN dates yield a
// zero time.
func (g Game) ParsedDate() (time.Time, error) {
	return internal.ParseDateOrZero(g.Date)
}

// ParseResult carries a parsed Game plus a diagnostic describing why parts
// of it were defaulted. Game is always usable; Err is informational only.
type ParseResult struct {
	Game Game
	Err  error
}

var (
	errUnterminatedComment   = errors.New("unterminated comment")
	errUnterminatedVariation = errors.New("unterminated variation")
	errTruncatedMovetext     = errors.New("movetext not fully replayed")
)

// Parse converts one game block into a Game. It never fails: missing White
// and Black tags default to "Unknown", a missing Result defaults to "*", and
// movetext that cannot be replayed leaves Moves empty with the reason in
// ParseResult.Err. loadedAt is folded into the Game ID.
func Parse(block string, round int, loadedAt time.Time) *ParseResult {
	tags, movetext := parseTags(block)

	g := Game{
		White:  tagOrDefault(tags, "White", internal.UnknownPlayer),
		Black:  tagOrDefault(tags, "Black", internal.UnknownPlayer),
		Result: Result(tagOrDefault(tags, "Result", string(ResultUnfinished))),
		PGN:    block,
		Round:  round,
		Date:   tags["Date"],
		Tags:   tags,
	}
	g.ID = fmt.Sprintf("%d-%s-%s-%d", round, g.White, g.Black,
		loadedAt.UnixMilli())

	res := &ParseResult{Game: g}

	moves, err := replay(block, movetext)
	if err != nil {
		res.Err = fmt.Errorf("round %v %v vs. %v: %w", round, g.White, g.Black,
			err)
		moves = []string{}
	}
	res.Game.Moves = moves

	return res
}

// ParseGame is Parse stamped with the current time; any diagnostic is logged
// rather than returned.
func ParseGame(block string, round int) Game {
	res := Parse(block, round, time.Now())
	if res.Err != nil {
		log.Printf("pgn.parse: warning: %v", res.Err)
	}

	return res.Game
}

func tagOrDefault(tags map[string]string, key string, def string) string {
	if v := strings.TrimSpace(tags[key]); v != "" {
		return v
	}

	return def
}

// replay plays the game's movetext from its starting position and returns
// each ply re-encoded in standard algebraic notation.
func replay(block string, movetext string) (moves []string, err error) {
	plies, err := countPlies(movetext)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			moves = nil
			err = fmt.Errorf("replay aborted: %v", r)
		}
	}()

	opt, err := chess.PGN(strings.NewReader(block))
	if err != nil {
		return nil, err
	}
	game := chess.NewGame(opt)

	positions := game.Positions()
	notation := chess.AlgebraicNotation{}
	moves = make([]string, 0, len(game.Moves()))
	for idx, m := range game.Moves() {
		moves = append(moves, notation.Encode(positions[idx], m))
	}
	// the chess library drops trailing tokens it cannot decode
	if len(moves) != plies {
		return nil, fmt.Errorf("%w: replayed %d of %d moves",
			errTruncatedMovetext, len(moves), plies)
	}

	return moves, nil
}

var moveNumberRe = regexp.MustCompile(`^\d+\.+`)

// countPlies returns the number of move tokens in movetext, ignoring
// comments, variations, NAGs, move numbers, and the game termination marker.
// Comments or variations that are never closed are reported as errors.
func countPlies(movetext string) (int, error) {
	var sb strings.Builder
	depth := 0
	inBrace, inLine := false, false
	atLineStart := true
	for _, r := range movetext {
		startOfLine := atLineStart
		atLineStart = r == '\n'
		switch {
		case inLine:
			if r == '\n' {
				inLine = false
				sb.WriteRune(' ')
			}
		case inBrace:
			if r == '}' {
				inBrace = false
				sb.WriteRune(' ')
			}
		case r == ';', r == '%' && startOfLine:
			inLine = true
		case r == '{':
			inBrace = true
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return 0, errUnterminatedVariation
			}
			sb.WriteRune(' ')
		case depth > 0:
		default:
			sb.WriteRune(r)
		}
	}
	if inBrace {
		return 0, errUnterminatedComment
	}
	if depth != 0 {
		return 0, errUnterminatedVariation
	}

	plies := 0
	for _, tok := range strings.Fields(sb.String()) {
		tok = moveNumberRe.ReplaceAllString(tok, "")
		tok = strings.TrimLeft(tok, ".")
		if tok == "" || strings.HasPrefix(tok, "$") ||
			strings.Trim(tok, "!?") == "" {
			continue
		}
		switch Result(tok) {
		case ResultWhiteWins, ResultBlackWins, ResultDraw, ResultUnfinished:
			continue
		}
		plies++
	}

	return plies, nil
}
