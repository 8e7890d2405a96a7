// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

/*
Pre-commit installs and runs a Git pre-commit hook.

On its first run in a non-CI environment, it creates the
.git/hooks/pre-commit script. This script simply calls 'go tool pre-commit'
again, ensuring that the checks run on every subsequent commit. Checks
marked as CI-only are skipped locally; the CI environment variable set to
"true" selects the CI behavior.
*/
package main

import (
	_ "embed"

	"github.com/natibek/licensepy/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
