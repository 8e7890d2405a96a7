// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package config loads licensepy settings from a project's pyproject.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the settings from the [licensepy] table of pyproject.toml.
// It is loaded once per run and read-only afterwards, so it is safe to share
// across parallel file operations.
type Config struct {
	// Avoid lists license identifiers the project does not want its
	// dependencies to carry.
	Avoid []string
	// Licensee substitutes the {licensee} placeholder in the header template.
	Licensee string
	// LicenseYear substitutes the {year} placeholder. It defaults to the
	// year passed to Load.
	LicenseYear int
	// LicenseHeader is the raw header template, with optional {year} and
	// {licensee} placeholders.
	LicenseHeader string
}

// Load reads the [licensepy] table from the pyproject.toml in dir. A missing
// file or table is not an error and yields a Config with defaultYear and
// zero values otherwise.
func Load(dir string, defaultYear int) (*Config, error) {
	cfg := &Config{LicenseYear: defaultYear}

	path := filepath.Join(dir, "pyproject.toml")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var root struct {
		Licensepy struct {
			Avoid         []string `toml:"avoid"`
			Licensee      string   `toml:"licensee"`
			LicenseYear   *int     `toml:"license_year"`
			LicenseHeader string   `toml:"license_header"`
		} `toml:"licensepy"`
	}
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.Avoid = root.Licensepy.Avoid
	cfg.Licensee = root.Licensepy.Licensee
	cfg.LicenseHeader = root.Licensepy.LicenseHeader
	if root.Licensepy.LicenseYear != nil {
		cfg.LicenseYear = *root.Licensepy.LicenseYear
	}
	return cfg, nil
}
