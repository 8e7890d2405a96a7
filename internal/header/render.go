// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package header

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMissingLicensee is returned when the template contains a {licensee}
// placeholder but no licensee value is configured.
var ErrMissingLicensee = errors.New("{licensee} placeholder in template but no licensee configured")

// Compare renders the comparison form of the template: {licensee} is
// substituted and {year} is kept verbatim as a match placeholder. Every line
// carries the comment marker and the result ends with exactly one newline.
func Compare(template, licensee string) (string, error) {
	return render(template, licensee)
}

// Output renders the header to write into files, with both {licensee} and
// {year} substituted.
func Output(template, licensee string, year int) (string, error) {
	s, err := render(template, licensee)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(s, "{year}", strconv.Itoa(year)), nil
}

func render(template, licensee string) (string, error) {
	if strings.Contains(template, "{licensee}") {
		if licensee == "" {
			return "", ErrMissingLicensee
		}
		template = strings.ReplaceAll(template, "{licensee}", licensee)
	}

	var b strings.Builder
	for line := range strings.Lines(template) {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, comment) {
			b.WriteString(comment + " ")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String(), nil
}
