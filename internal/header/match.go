// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package header

import (
	"strconv"
	"strings"
)

// matchState distinguishes the phase before the first template line has
// matched (still scanning for where the header starts) from the phase after
// it (committed to a match).
type matchState int

const (
	scanning matchState = iota
	matching
)

// Match aligns the extracted comment block against the comparison template
// and classifies the result. For Outdated it also returns the span: the
// exact original text of the matched lines, to be excised by [Replace].
//
// Lines are compared word by word after stripping the comment marker and
// surrounding whitespace from both sides. A block line that does not match
// the current template line is skipped while still scanning (it is ordinary
// leading commentary), but fails the whole match once a template line has
// been committed. The {year} template word matches any integer; a year other
// than the configured one marks the header outdated.
func Match(block, template string, year int) (Classification, string) {
	var (
		blockLines = splitLines(block)
		tmplLines  = templateLines(template)

		state      = scanning
		t          int
		matchStart int
		outdated   bool
	)

	for i, line := range blockLines {
		if t == len(tmplLines) {
			break
		}
		ok, yearDiffers := matchLine(cleanLine(line), tmplLines[t], year)
		if !ok {
			if state == matching {
				return Missing, ""
			}
			continue
		}
		if state == scanning {
			matchStart = i
			state = matching
		}
		if yearDiffers {
			outdated = true
		}
		t++
	}

	if t < len(tmplLines) {
		return Missing, ""
	}
	if outdated {
		return Outdated, strings.Join(blockLines[matchStart:matchStart+len(tmplLines)], "\n") + "\n"
	}
	return Found, ""
}

// matchLine compares one cleaned block line against one cleaned template
// line. It reports whether they match and whether a matched {year} word
// carries a year different from the configured one.
func matchLine(blockLine, tmplLine string, year int) (ok, yearDiffers bool) {
	blockWords := strings.Fields(blockLine)
	tmplWords := strings.Fields(tmplLine)
	if len(blockWords) != len(tmplWords) {
		return false, false
	}
	for i, w := range tmplWords {
		if w == "{year}" {
			y, err := strconv.Atoi(blockWords[i])
			if err != nil {
				return false, false
			}
			if y != year {
				yearDiffers = true
			}
			continue
		}
		if blockWords[i] != w {
			return false, false
		}
	}
	return true, yearDiffers
}

// templateLines returns the cleaned, non-empty logical lines of the rendered
// comparison template.
func templateLines(template string) []string {
	var lines []string
	for _, line := range splitLines(template) {
		if clean := cleanLine(line); clean != "" {
			lines = append(lines, clean)
		}
	}
	return lines
}

// cleanLine strips the comment marker and surrounding whitespace.
func cleanLine(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, comment))
}

// splitLines splits s on newlines, dropping the empty element a trailing
// newline would produce. The returned lines carry their original text.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
