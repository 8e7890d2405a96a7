// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package internal contains shared helpers for development tools.
package internal

import (
	"log"
	"os"
)

// EnsureRoot exits the program if it is not run from the repository root.
func EnsureRoot() {
	if _, err := os.Stat("go.mod"); err != nil {
		log.Fatal("This tool must be run from the repository root.")
	}
}
