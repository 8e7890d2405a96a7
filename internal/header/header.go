// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package header locates, matches, and rewrites license headers at the top of
// Python source files.
//
// A header lives in the leading comment block of a file: the maximal run of
// "#"-prefixed lines after an optional interpreter directive and blank lines.
// The block is aligned against a rendered header template whose {year} token
// floats, so a header written in an earlier year is recognized and updated
// in place.
package header

const (
	comment = "#"
	shebang = "#!"
)

// Classification is the outcome of matching a comment block against the
// rendered header template.
type Classification int

const (
	// Missing means no valid header was found in the block.
	Missing Classification = iota
	// Found means the header is present and carries the configured year.
	Found
	// Outdated means the header is present but its year differs from the
	// configured one.
	Outdated
)

// String returns the name of the classification.
func (c Classification) String() string {
	switch c {
	case Missing:
		return "missing"
	case Found:
		return "found"
	case Outdated:
		return "outdated"
	}
	return "unknown"
}
