/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pgn

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"
)

var ErrPlyOutOfRange = errors.New("ply out of range")

// Position returns the position after the first ply moves of the game;
// ply 0 is the starting position (the FEN tag, if present). Valid plies
// are 0 through len(Moves).
func (g Game) Position(ply int) (pos *chess.Position, err error) {
	if ply < 0 || ply > len(g.Moves) {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrPlyOutOfRange, ply,
			len(g.Moves))
	}

	defer func() {
		if r := recover(); r != nil {
			pos = nil
			err = fmt.Errorf("replay aborted: %v", r)
		}
	}()

	var opts []func(*chess.Game)
	if fen := g.Tags["FEN"]; fen != "" {
		opt, err := chess.FEN(fen)
		if err != nil {
			return nil, fmt.Errorf("invalid FEN tag: %w", err)
		}
		opts = append(opts, opt)
	}
	game := chess.NewGame(opts...)
	for idx, san := range g.Moves[:ply] {
		if err := game.MoveStr(san); err != nil {
			return nil, fmt.Errorf("ply %d (%v): %w", idx+1, san, err)
		}
	}

	return game.Position(), nil
}
