/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pgn

import (
	"bufio"
	"regexp"
	"strings"
)

// [Key "Value"]; values may contain escaped quotes and backslashes
var tagPairRe = regexp.MustCompile(`^\[\s*([A-Za-z0-9_]+)\s+"((?:[^"\\]|\\.)*)"\s*\]$`)

var tagUnescaper = strings.NewReplacer(`\"`, `"`, `\\`, `\`)

// parseTags reads the tag-pair section at the top of a game block and returns
// the tags along with the movetext that follows them. The tag section ends at
// the first line that does not start with '['. Lines that start with '[' but
// are not well formed are skipped.
func parseTags(block string) (map[string]string, string) {
	tags := make(map[string]string)
	var movetext []string
	inHeader := true

	scanner := bufio.NewScanner(strings.NewReader(block))
	scanner.Buffer(make([]byte, 0, 64*1024), len(block)+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if inHeader && !strings.HasPrefix(line, "[") && line != "" {
			inHeader = false
		}
		if !inHeader {
			movetext = append(movetext, line)
			continue
		}
		if line == "" {
			continue
		}
		m := tagPairRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if _, dup := tags[m[1]]; dup {
			// first occurrence wins
			continue
		}
		tags[m[1]] = tagUnescaper.Replace(m[2])
	}

	return tags, strings.TrimSpace(strings.Join(movetext, "\n"))
}
