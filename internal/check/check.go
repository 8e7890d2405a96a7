// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package check implements the "licensepy check" command that audits the
// licenses of installed Python dependencies.
//
// Dependencies are discovered through the interpreter's site directories:
// every .egg-info or .dist-info entry contributes one package, whose core
// metadata file (PKG-INFO or METADATA) carries the license declaration and
// the requirement list.
package check

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/natibek/licensepy/internal/cli"
	"github.com/natibek/licensepy/internal/config"
	"github.com/natibek/licensepy/internal/logger"
	"github.com/natibek/licensepy/internal/syncx"
	"github.com/natibek/licensepy/internal/unwrap"

	"github.com/go4org/hashtriemap"
)

const maxJobs = 32

// Options configures a check run.
type Options struct {
	// Recursive annotates each package's report entry with the licenses of
	// its requirements.
	Recursive bool
	// ByPackage groups the report by package instead of by license.
	ByPackage bool
	// PrintFails limits the report to packages with disfavored licenses.
	PrintFails bool
	// IgnoreConfig skips the pyproject.toml avoid list, so no license is
	// disfavored.
	IgnoreConfig bool
	// Silent suppresses all output.
	Silent bool
	// Jobs limits the number of metadata files parsed concurrently.
	Jobs int
	// Dir is the project root the pyproject.toml is read from.
	Dir string
}

// Package is one installed distribution, as described by its core metadata.
type Package struct {
	// Name is the normalized distribution name.
	Name string
	// Licenses are the declared license identifiers, or ["?"] when the
	// metadata declares none.
	Licenses []string
	// Requirements are the normalized names of the distributions this one
	// requires in the current environment.
	Requirements []string
	// Bad reports whether any license matches the configured avoid list.
	Bad bool
}

// Run audits the installed dependencies and returns the number of packages
// carrying a disfavored license.
func Run(ctx context.Context, env *cli.Env, opts Options) (int, error) {
	var avoid []string
	if !opts.IgnoreConfig {
		cfg, err := config.Load(opts.Dir, 0)
		if err != nil {
			return 0, err
		}
		avoid = cfg.Avoid
	}

	dirs, err := siteDirs(ctx)
	if err != nil {
		return 0, err
	}
	pyVersion, err := interpreterVersion(ctx)
	if err != nil {
		return 0, err
	}
	logger.Debug(ctx, "discovered site directories",
		slog.Any("dirs", dirs),
		slog.String("python", versionString(pyVersion)))

	files, err := metadataFiles(dirs)
	if err != nil {
		return 0, err
	}

	var (
		index hashtriemap.HashTrieMap[string, *Package]
		wg    = syncx.NewLimitedWaitGroup(clampJobs(opts.Jobs))
	)
	for _, file := range files {
		wg.Go(func() {
			pkg, err := parseMetadata(file, avoid, pyVersion)
			if err != nil {
				env.Logf("check: %s: %v", file, err)
				return
			}
			index.LoadOrStore(pkg.Name, pkg)
		})
	}
	wg.Wait()

	var pkgs []*Package
	for _, pkg := range index.All() {
		pkgs = append(pkgs, pkg)
	}

	var bad int
	for _, pkg := range pkgs {
		if pkg.Bad {
			bad++
		}
	}

	if !opts.Silent {
		report(env, pkgs, &index, opts)
	}
	return bad, nil
}

// siteDirs asks the interpreter for its site directories and keeps the
// package directories among them.
func siteDirs(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, "python3", "-m", "site").Output()
	if err != nil {
		return nil, fmt.Errorf("running python3 -m site: %w", err)
	}
	dirs := parseSiteOutput(string(out))
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no site-packages directories in python3 -m site output")
	}
	return dirs, nil
}

// parseSiteOutput extracts package directories from the sys.path listing
// printed by python3 -m site. The listing quotes each entry and separates
// them with commas.
func parseSiteOutput(out string) []string {
	var dirs []string
	for _, f := range strings.FieldsFunc(out, func(r rune) bool {
		return r == '\n' || r == ',' || r == '\''
	}) {
		f = strings.TrimSpace(f)
		if strings.HasSuffix(f, "site-packages") || strings.HasSuffix(f, "dist-packages") {
			dirs = append(dirs, f)
		}
	}
	return dirs
}

// interpreterVersion parses the version of the python3 on PATH.
func interpreterVersion(ctx context.Context) ([3]int, error) {
	out, err := exec.CommandContext(ctx, "python3", "--version").CombinedOutput()
	if err != nil {
		return [3]int{}, fmt.Errorf("running python3 --version: %w", err)
	}
	fields := strings.Fields(string(out))
	if len(fields) < 2 {
		return [3]int{}, fmt.Errorf("unexpected python3 --version output %q", out)
	}
	return parseVersion(fields[len(fields)-1], [3]int{})
}

// parseVersion parses a dotted version of up to three components, filling
// components it does not specify from def.
func parseVersion(s string, def [3]int) ([3]int, error) {
	v := def
	for i, part := range strings.SplitN(s, ".", 3) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return [3]int{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
		v[i] = n
	}
	return v, nil
}

func versionString(v [3]int) string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

// metadataFiles collects the core metadata file of every distribution
// installed under the given site directories.
func metadataFiles(dirs []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			// python3 -m site lists directories that may not exist.
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			var file string
			switch {
			case strings.HasSuffix(e.Name(), ".egg-info") && e.IsDir():
				file = filepath.Join(dir, e.Name(), "PKG-INFO")
			case strings.HasSuffix(e.Name(), ".dist-info") && e.IsDir():
				file = filepath.Join(dir, e.Name(), "METADATA")
			case strings.HasSuffix(e.Name(), ".egg-info"):
				file = filepath.Join(dir, e.Name())
			default:
				continue
			}
			files = append(files, file)
		}
	}
	return files, nil
}

// pythonVersionConstraint matches one comparison against python_version in a
// requirement's environment marker.
var pythonVersionConstraint = unwrap.Value(regexp.Compile(
	`(==|<=|>=|!=|<|>)\s*"(\d+(?:\.\d+){0,2})"`))

// parseMetadata reads one core metadata file into a Package. Requirements
// gated on an extra are dropped, and python_version markers are evaluated
// against the interpreter version.
func parseMetadata(path string, avoid []string, pyVersion [3]int) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var (
		name        string
		licenses    []string
		classifiers []string
		reqs        []string
	)
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(line, "Name:"):
			name = normalizeName(strings.TrimSpace(strings.TrimPrefix(line, "Name:")))
		case strings.HasPrefix(line, "License:"), strings.HasPrefix(line, "License-Expression:"):
			// Some projects put a whole license text here; keep only
			// single-line declarations.
			_, val, _ := strings.Cut(line, ":")
			if val = strings.TrimSpace(val); val != "" && val != "UNKNOWN" {
				licenses = append(licenses, val)
			}
		case strings.HasPrefix(line, "Classifier: License :: OSI Approved ::"):
			val := strings.TrimSpace(strings.TrimPrefix(line, "Classifier: License :: OSI Approved ::"))
			if val != "" {
				classifiers = append(classifiers, val)
			}
		case strings.HasPrefix(line, "Requires-Dist:"):
			req, ok := parseRequirement(strings.TrimSpace(strings.TrimPrefix(line, "Requires-Dist:")), pyVersion)
			if ok {
				reqs = append(reqs, req)
			}
		}
		// The first blank line ends the header section; everything after
		// it is the long description.
		if line == "" {
			break
		}
	}

	if name == "" {
		return nil, fmt.Errorf("no Name field")
	}

	pkg := &Package{
		Name:         name,
		Licenses:     chooseLicenses(licenses, classifiers),
		Requirements: reqs,
	}
	for _, l := range pkg.Licenses {
		for _, a := range avoid {
			if strings.Contains(strings.ToLower(l), strings.ToLower(a)) {
				pkg.Bad = true
			}
		}
	}
	return pkg, nil
}

// chooseLicenses picks between the License fields and the OSI classifiers.
// Classifiers are the more uniform identifiers, so they win unless the
// License fields say strictly more. A package declaring neither gets "?".
func chooseLicenses(licenses, classifiers []string) []string {
	if len(licenses) > len(classifiers) {
		return licenses
	}
	if len(classifiers) == 0 {
		return []string{"?"}
	}
	return classifiers
}

// parseRequirement extracts the normalized distribution name from one
// Requires-Dist value and reports whether the requirement applies to the
// current environment.
func parseRequirement(val string, pyVersion [3]int) (string, bool) {
	name, marker, _ := strings.Cut(val, ";")
	if strings.Contains(marker, "extra") {
		return "", false
	}
	if strings.Contains(marker, "python_version") {
		for _, m := range pythonVersionConstraint.FindAllStringSubmatch(marker, -1) {
			want, err := parseVersion(m[2], pyVersion)
			if err != nil {
				continue
			}
			if !versionSatisfies(pyVersion, m[1], want) {
				return "", false
			}
		}
	}

	// Strip the version specifier and any extras from the name.
	if i := strings.IndexAny(name, " ([<>=!~"); i >= 0 {
		name = name[:i]
	}
	name = normalizeName(name)
	if name == "" {
		return "", false
	}
	return name, true
}

func versionSatisfies(have [3]int, op string, want [3]int) bool {
	c := 0
	for i := range have {
		if have[i] != want[i] {
			if have[i] < want[i] {
				c = -1
			} else {
				c = 1
			}
			break
		}
	}
	switch op {
	case "==":
		return c == 0
	case "!=":
		return c != 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	}
	return true
}

// normalizeName lowercases a distribution name and unifies the separator
// runes, following the PyPA name normalization rule.
func normalizeName(name string) string {
	return strings.ToLower(strings.NewReplacer("_", "-", ".", "-").Replace(name))
}

func clampJobs(jobs int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return min(max(jobs, 1), maxJobs)
}
