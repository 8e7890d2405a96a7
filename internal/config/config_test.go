// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/natibek/licensepy/internal/testutil"
)

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(t.TempDir(), 2025)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, cfg, &Config{LicenseYear: 2025})
}

func TestLoadMissingTable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, `[project]
name = "demo"
`)

	cfg, err := Load(dir, 2024)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, cfg, &Config{LicenseYear: 2024})
}

func TestLoadFull(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, `[licensepy]
avoid = ["GPL", "AGPL"]
licensee = "Acme Corp"
license_year = 2023
license_header = "# {year} {licensee}"
`)

	cfg, err := Load(dir, 2025)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, cfg, &Config{
		Avoid:         []string{"GPL", "AGPL"},
		Licensee:      "Acme Corp",
		LicenseYear:   2023,
		LicenseHeader: "# {year} {licensee}",
	})
}

func TestLoadYearDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, `[licensepy]
license_header = "# Copyright {year}"
`)

	cfg, err := Load(dir, 2026)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, cfg.LicenseYear, 2026)
}

func TestLoadInvalidTOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write(t, dir, `[licensepy
broken`)

	if _, err := Load(dir, 2025); err == nil {
		t.Fatal("wanted an error for invalid TOML, got nil")
	}
}

func write(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
