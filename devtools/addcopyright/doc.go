// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
Addcopyright adds the copyright header to Go files that lack one.

It recursively walks the repository and prepends the standard header,
dated with the file's modification year, to every .go file that does not
already start with one.
*/
package main

import (
	_ "embed"

	"github.com/natibek/licensepy/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
