/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package pgn splits multi-game Portable Game Notation text into game blocks
// and parses each block into a Game record.
package pgn

import (
	"regexp"
	"strings"
)

// a blank line immediately followed by the start of a new tag section. RE2
// has no lookahead, so the '[' is consumed by the match and handed back to
// the following block.
var gameBoundaryRe = regexp.MustCompile(`\n\s*\n\[`)

// Split divides text containing zero or more concatenated PGN games into
// trimmed, non-empty game blocks in source order.
//
// Boundary detection is a formatting heuristic: exporters that emit a blank
// line followed by '[' inside movetext will cause a false split.
func Split(text string) []string {
	var blocks []string

	start := 0
	for _, loc := range gameBoundaryRe.FindAllStringIndex(text, -1) {
		blocks = appendBlock(blocks, text[start:loc[0]])
		start = loc[1] - 1 // keep the '['
	}
	blocks = appendBlock(blocks, text[start:])

	return blocks
}

func appendBlock(blocks []string, block string) []string {
	block = strings.TrimSpace(block)
	if block == "" {
		return blocks
	}

	return append(blocks, block)
}
