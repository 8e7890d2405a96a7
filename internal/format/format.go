// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package format implements the "licensepy format" command that inserts or
// refreshes license headers in Python files.
package format

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/natibek/licensepy/internal/cli"
	"github.com/natibek/licensepy/internal/config"
	"github.com/natibek/licensepy/internal/header"
	"github.com/natibek/licensepy/internal/logger"
	"github.com/natibek/licensepy/internal/syncx"
	"github.com/natibek/licensepy/internal/unwrap"

	"github.com/charmbracelet/lipgloss"
)

const maxJobs = 32

// Options configures a format run.
type Options struct {
	// Files are explicit paths to process. When empty, Dir is walked for
	// Python files instead.
	Files []string
	// Dir is the project root. The pyproject.toml is read from here.
	Dir string
	// Check reports files without modifying them.
	Check bool
	// Silent suppresses all output.
	Silent bool
	// Licensee overrides the licensee from pyproject.toml when non-empty.
	Licensee string
	// Year overrides the license year from pyproject.toml when non-zero.
	Year int
	// DefaultYear is used when neither Year nor pyproject.toml specify one.
	DefaultYear int
	// Jobs limits the number of files processed concurrently.
	Jobs int
}

type result struct {
	path  string
	class header.Classification
}

// Run processes the configured files and returns the number of files that
// need (or needed) a header fix.
func Run(ctx context.Context, env *cli.Env, opts Options) (int, error) {
	cfg, err := config.Load(opts.Dir, opts.DefaultYear)
	if err != nil {
		return 0, err
	}
	if opts.Licensee != "" {
		cfg.Licensee = opts.Licensee
	}
	if opts.Year != 0 {
		cfg.LicenseYear = opts.Year
	}
	if cfg.LicenseHeader == "" {
		return 0, fmt.Errorf("%w: no license_header configured in pyproject.toml", cli.ErrInvalidArgs)
	}

	compare, err := header.Compare(cfg.LicenseHeader, cfg.Licensee)
	if err != nil {
		return 0, err
	}
	output, err := header.Output(cfg.LicenseHeader, cfg.Licensee, cfg.LicenseYear)
	if err != nil {
		return 0, err
	}

	files, err := targets(opts.Files, opts.Dir)
	if err != nil {
		return 0, err
	}
	logger.Debug(ctx, "collected files to format",
		slog.Int("count", len(files)),
		slog.Int("jobs", clampJobs(opts.Jobs)))

	mode := header.Fix
	if opts.Check {
		mode = header.CheckOnly
	}

	var needFix atomic.Int64
	results := syncx.Protect(&[]result{})
	wg := syncx.NewLimitedWaitGroup(clampJobs(opts.Jobs))

	for _, path := range files {
		wg.Go(func() {
			res, err := header.Process(path, compare, output, cfg.LicenseYear, mode)
			if err != nil {
				env.Logf("format: %s: %v", path, err)
				return
			}
			if res.NeedsFix {
				needFix.Add(1)
			}
			results.WriteAccess(func(all *[]result) {
				*all = append(*all, result{path: path, class: res.Class})
			})
		})
	}
	wg.Wait()

	if !opts.Silent {
		results.ReadAccess(func(all *[]result) {
			report(env, *all, opts.Check)
		})
	}
	return int(needFix.Load()), nil
}

func report(env *cli.Env, results []result, check bool) {
	slices.SortFunc(results, func(a, b result) int {
		return cmp.Compare(a.path, b.path)
	})

	r := lipgloss.NewRenderer(env.Stdout)
	var (
		found    = r.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
		missing  = r.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
		outdated = r.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	)

	var toFix int
	for _, res := range results {
		style := found
		switch res.class {
		case header.Missing:
			style = missing
		case header.Outdated:
			style = outdated
		}
		fmt.Fprintf(env.Stdout, "%s %s\n", style.Render(res.class.String()+":"), res.path)
		if res.class != header.Found {
			toFix++
		}
	}

	if check {
		fmt.Fprintf(env.Stdout, "\n%d files to fix.\n", toFix)
		return
	}
	fmt.Fprintf(env.Stdout, "\n%d files fixed.\n", toFix)
}

// Directories that never contain first-party Python sources.
var ignoreDirs = []*regexp.Regexp{
	unwrap.Value(regexp.Compile(`^dist$`)),
	unwrap.Value(regexp.Compile(`^__pycache__$`)),
	unwrap.Value(regexp.Compile(`^.*\.egg-info$`)),
	unwrap.Value(regexp.Compile(`^\..+$`)),
}

func ignored(name string) bool {
	for _, re := range ignoreDirs {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// targets resolves the set of Python files to process. Explicit paths are
// deduplicated and filtered to .py files; otherwise dir is walked, skipping
// build and cache directories.
func targets(files []string, dir string) ([]string, error) {
	if len(files) > 0 {
		var out []string
		seen := make(map[string]bool)
		for _, f := range files {
			if !strings.HasSuffix(f, ".py") || seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
		return out, nil
	}

	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && ignored(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".py") {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func clampJobs(jobs int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return min(max(jobs, 1), maxJobs)
}
