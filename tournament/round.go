/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"regexp"
	"strconv"

	"github.com/mikeb26/pgnstandings/pgn"
)

var roundNumberRe = regexp.MustCompile(`(?i)round(\d+)`)

// Round is the set of games from one round file, in file order.
type Round struct {
	Number   int
	Filename string
	Games    []pgn.Game
	// Available is false when the round file could not be retrieved; Games
	// is then empty.
	Available bool
}

// RoundNumber resolves a round's number from its filename ("round3.pgn",
// "Round12-final.pgn") and otherwise falls back to its 1-based position in
// the configured round list.
func RoundNumber(filename string, position int) int {
	if m := roundNumberRe.FindStringSubmatch(filename); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	return position
}
