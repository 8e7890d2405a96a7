// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package header

import "os"

// Mode selects what [Process] does after classifying a file.
type Mode int

const (
	// Fix rewrites files whose header is missing or outdated.
	Fix Mode = iota
	// CheckOnly classifies without writing anything.
	CheckOnly
)

// Result describes the outcome of processing a single file.
type Result struct {
	Class    Classification
	NeedsFix bool
}

// Process reads the file at path, classifies its leading comment block
// against the comparison template, and, in [Fix] mode, rewrites the file
// with the rendered output header when the header is missing or outdated.
//
// The rewrite truncates and fully rewrites the file; a concurrent external
// modification between read and write is lost.
func Process(path, compare, output string, year int, mode Mode) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}

	block, insertAt := Extract(content)
	class, span := Match(block, compare, year)
	res := Result{Class: class, NeedsFix: class != Found}

	if mode == CheckOnly || class == Found {
		return res, nil
	}

	var fixed []byte
	switch class {
	case Missing:
		fixed = Insert(content, insertAt, output)
	case Outdated:
		fixed = Replace(content, span, output)
	}
	if err := os.WriteFile(path, fixed, 0o644); err != nil {
		return res, err
	}
	return res, nil
}
