// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/natibek/licensepy/internal/check"
	"github.com/natibek/licensepy/internal/cli"
	"github.com/natibek/licensepy/internal/format"
	"github.com/natibek/licensepy/internal/logger"

	"github.com/lmittmann/tint"
)

func main() { cli.Main(new(app)) }

type app struct {
	// flags
	verbose bool

	// format flags
	checkOnly bool
	licensee  string
	year      int

	// check flags
	recursive    bool
	byPackage    bool
	printFails   bool
	ignoreConfig bool

	// shared flags
	silent bool
	jobs   int
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.verbose, "verbose", false, "Enable debug logging.")
	fs.BoolVar(&a.silent, "silent", false, "Suppress all output.")
	fs.IntVar(&a.jobs, "jobs", 0, "Process up to `n` files concurrently (0 means the number of CPUs).")

	// format
	fs.BoolVar(&a.checkOnly, "check", false, "Report files without modifying them (format).")
	fs.StringVar(&a.licensee, "licensee", "", "Override the configured `licensee` (format).")
	fs.IntVar(&a.year, "year", 0, "Override the configured license `year` (format).")

	// check
	fs.BoolVar(&a.recursive, "recursive", false, "Annotate each dependency with the licenses of its requirements (check).")
	fs.BoolVar(&a.byPackage, "by-package", false, "Group the license report by package instead of by license (check).")
	fs.BoolVar(&a.printFails, "print-fails", false, "Only report dependencies with licenses to avoid (check).")
	fs.BoolVar(&a.ignoreConfig, "ignore-config", false, "Ignore the avoid list from pyproject.toml (check).")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	if a.verbose {
		l := logger.New(nil)
		l.Level.Set(slog.LevelDebug)
		l.Attach(tint.NewHandler(env.Stderr, &tint.Options{Level: l.Level}))
		ctx = logger.Put(ctx, l)
	}

	if len(env.Args) == 0 {
		return fmt.Errorf("%w: expected a command: 'format' or 'check'", cli.ErrInvalidArgs)
	}

	var (
		n   int
		err error
	)
	switch cmd, args := env.Args[0], env.Args[1:]; cmd {
	case "format":
		n, err = format.Run(ctx, env, format.Options{
			Files:       args,
			Dir:         ".",
			Check:       a.checkOnly,
			Silent:      a.silent,
			Licensee:    a.licensee,
			Year:        a.year,
			DefaultYear: time.Now().Year(),
			Jobs:        a.jobs,
		})
	case "check":
		n, err = check.Run(ctx, env, check.Options{
			Recursive:    a.recursive,
			ByPackage:    a.byPackage,
			PrintFails:   a.printFails,
			IgnoreConfig: a.ignoreConfig,
			Silent:       a.silent,
			Jobs:         a.jobs,
			Dir:          ".",
		})
	default:
		return fmt.Errorf("%w: unknown command %q", cli.ErrInvalidArgs, cmd)
	}
	if err != nil {
		return err
	}
	if n > 0 {
		// The count of files needing fixes (or of dependencies with
		// disfavored licenses) becomes the process exit status.
		return &cli.ExitError{Code: n}
	}
	return nil
}
