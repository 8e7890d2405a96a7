// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
Licensepy maintains license headers in Python projects.

The format command inserts a configured license header into Python files
that lack one and refreshes headers carrying a stale year. The check
command audits the licenses of installed dependencies against an avoid
list.

Both commands read their configuration from the [licensepy] table of the
project's pyproject.toml:

	[licensepy]
	license_header = "# {year} {licensee}"
	licensee = "Acme Corp"
	avoid = ["GPL"]

# Usage

	$ licensepy [flags...] format [files...]
	$ licensepy [flags...] check

The exit status of format is the number of files that need (or received)
a fix; the exit status of check is the number of dependencies with
licenses to avoid.
*/
package main

import (
	_ "embed"

	"github.com/natibek/licensepy/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
