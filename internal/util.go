/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty, "null",
// or a PGN date with unknown components (e.g. "2025.??.??").
func ParseDateOrZero(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" || strings.Contains(s, "?") {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// ScoreToString renders a half-point score the way crosstables do: 1.5 -> "1½",
// 0.5 -> "½", 2.0 -> "2".
func ScoreToString(score float64) string {
	whole, frac := math.Modf(score)
	if frac == 0 {
		return strconv.Itoa(int(whole))
	}
	if math.Abs(frac) == 0.5 {
		if whole == 0 {
			if score < 0 {
				return "-½"
			}
			return "½"
		}
		return strconv.Itoa(int(whole)) + "½"
	}

	return strconv.FormatFloat(score, 'f', -1, 64)
}
