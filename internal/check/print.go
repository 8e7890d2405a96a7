// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package check

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/natibek/licensepy/internal/cli"

	"github.com/charmbracelet/lipgloss"
	"github.com/go4org/hashtriemap"
)

type printer struct {
	w     io.Writer
	good  lipgloss.Style
	bad   lipgloss.Style
	index *hashtriemap.HashTrieMap[string, *Package]
	opts  Options
}

func report(env *cli.Env, pkgs []*Package, index *hashtriemap.HashTrieMap[string, *Package], opts Options) {
	slices.SortFunc(pkgs, func(a, b *Package) int {
		return cmp.Compare(a.Name, b.Name)
	})

	r := lipgloss.NewRenderer(env.Stdout)
	p := &printer{
		w:     env.Stdout,
		good:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		bad:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		index: index,
		opts:  opts,
	}

	if opts.ByPackage {
		p.byPackage(pkgs)
	} else {
		p.byLicense(pkgs)
	}

	var bad int
	for _, pkg := range pkgs {
		if pkg.Bad {
			bad++
		}
	}
	fmt.Fprintf(p.w, "\nFound %d total dependencies.\n", len(pkgs))
	if bad > 0 {
		fmt.Fprintf(p.w, "%s\n", p.bad.Render(
			fmt.Sprintf("Found %d dependencies with licenses to avoid.", bad)))
	}
}

func (p *printer) mark(bad bool) string {
	if bad {
		return p.bad.Render("✗")
	}
	return p.good.Render("✔")
}

func (p *printer) byPackage(pkgs []*Package) {
	for _, pkg := range pkgs {
		if p.opts.PrintFails && !pkg.Bad {
			continue
		}
		fmt.Fprintf(p.w, "%s %s: %s\n", p.mark(pkg.Bad), pkg.Name, strings.Join(pkg.Licenses, ", "))
		p.requirements(pkg)
	}
}

func (p *printer) byLicense(pkgs []*Package) {
	groups := make(map[string][]*Package)
	for _, pkg := range pkgs {
		if p.opts.PrintFails && !pkg.Bad {
			continue
		}
		key := strings.Join(pkg.Licenses, ", ")
		groups[key] = append(groups[key], pkg)
	}

	for i, key := range slices.Sorted(maps.Keys(groups)) {
		if i > 0 {
			fmt.Fprintln(p.w)
		}
		// Badness is a function of the license set, so it is uniform
		// within a group.
		fmt.Fprintf(p.w, "%s %s\n", p.mark(groups[key][0].Bad), key)
		for _, pkg := range groups[key] {
			fmt.Fprintf(p.w, "    %s\n", pkg.Name)
			p.requirements(pkg)
		}
	}
}

// requirements prints one annotation line per requirement of pkg when the
// recursive report is requested.
func (p *printer) requirements(pkg *Package) {
	if !p.opts.Recursive {
		return
	}
	for _, req := range pkg.Requirements {
		dep, ok := p.index.Load(req)
		if !ok {
			fmt.Fprintf(p.w, "        requires %s (not installed)\n", req)
			continue
		}
		fmt.Fprintf(p.w, "        %s requires %s: %s\n",
			p.mark(dep.Bad), dep.Name, strings.Join(dep.Licenses, ", "))
	}
}
