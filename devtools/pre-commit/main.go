// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/natibek/licensepy/devtools/internal"
	"github.com/natibek/licensepy/internal/cli"
)

const hookShellScript = `#!/bin/sh
echo "==> Running pre-commit check..."
go tool pre-commit
`

type check struct {
	run      []string
	onlyInCI bool
}

var checks = []check{
	{run: []string{"gofmt", "-l", "."}},
	{run: []string{"go", "vet", "./..."}},
	{run: []string{"go", "test", "./..."}},
	{run: []string{"go", "build", "./..."}, onlyInCI: true},
}

func main() { cli.Main(cli.AppFunc(realMain)) }

func realMain(ctx context.Context) error {
	internal.EnsureRoot()
	env := cli.GetEnv(ctx)
	isCI := env.Getenv("CI") == "true"

	if !isCI {
		if err := installHook(); err != nil {
			return err
		}
	}

	for i, c := range checks {
		if !isCI && c.onlyInCI {
			continue
		}
		fmt.Fprintf(env.Stdout, "[%d/%d] Running check %s\n", i+1, len(checks), strings.Join(c.run, " "))
		if err := c.exec(); err != nil {
			return err
		}
	}
	return nil
}

// installHook writes the Git pre-commit hook on the first local run.
func installHook() error {
	hookPath := filepath.Join(".git", "hooks", "pre-commit")
	if _, err := os.Stat(hookPath); !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(hookPath, []byte(hookShellScript), 0o755)
}

func (c check) exec() error {
	var buf bytes.Buffer
	cmd := exec.Command(c.run[0], c.run[1:]...)
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("check %q failed: %v:\n%v", c.run, err, buf.String())
	}
	return nil
}
