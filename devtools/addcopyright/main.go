// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natibek/licensepy/devtools/internal"
	"github.com/natibek/licensepy/internal/cli"
)

const template = `// © %d Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

`

const header = `// ©`

var skipDirs = []string{"_examples", "testdata"}

func main() { cli.Main(new(app)) }

type app struct {
	dry bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&a.dry, "dry", false, "Print the files that would have a copyright header added, without making changes.")
}

func (a *app) Run(ctx context.Context) error {
	internal.EnsureRoot()
	env := cli.GetEnv(ctx)

	return filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			for _, skip := range skipDirs {
				if d.Name() == skip {
					return fs.SkipDir
				}
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if bytes.HasPrefix(content, []byte(header)) {
			// Already has a copyright header.
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr := fmt.Sprintf(template, info.ModTime().Year())

		if a.dry {
			env.Logf("Would add copyright header to file %s.", path)
			return nil
		}

		var buf bytes.Buffer
		buf.WriteString(hdr)
		buf.Write(content)
		return os.WriteFile(path, buf.Bytes(), 0o644)
	})
}
