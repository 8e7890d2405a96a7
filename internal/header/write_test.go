// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package header

import (
	"testing"

	"github.com/natibek/licensepy/internal/testutil"
)

func TestInsert(t *testing.T) {
	t.Parallel()

	const hdr = "# 2025 Acme Corp\n"

	cases := map[string]struct {
		content  string
		insertAt int
		want     string
	}{
		"empty file": {
			content:  "",
			insertAt: 0,
			want:     "# 2025 Acme Corp\n",
		},
		"before code": {
			content:  "import os\n",
			insertAt: 0,
			want:     "# 2025 Acme Corp\nimport os\n",
		},
		"after shebang": {
			content:  "#!/usr/bin/python\nimport os\n",
			insertAt: len("#!/usr/bin/python\n"),
			want:     "#!/usr/bin/python\n# 2025 Acme Corp\nimport os\n",
		},
		"blank-only prefix is dropped": {
			content:  "\n\nimport os\n",
			insertAt: 2,
			want:     "# 2025 Acme Corp\nimport os\n",
		},
		"separator before following comment": {
			content:  "# module docs\nimport os\n",
			insertAt: 0,
			want:     "# 2025 Acme Corp\n\n# module docs\nimport os\n",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := Insert([]byte(tc.content), tc.insertAt, hdr)
			testutil.AssertEqual(t, string(got), tc.want)
		})
	}
}

func TestReplace(t *testing.T) {
	t.Parallel()

	const hdr = "# 2025 Acme Corp\n"

	cases := map[string]struct {
		content string
		span    string
		want    string
	}{
		"span at top": {
			content: "# 2024 Acme Corp\nimport os\n",
			span:    "# 2024 Acme Corp\n",
			want:    "# 2025 Acme Corp\nimport os\n",
		},
		"span at end of file without trailing newline": {
			content: "#!/usr/bin/python\n\n# 2024 Acme Corp",
			span:    "# 2024 Acme Corp\n",
			want:    "#!/usr/bin/python\n\n# 2025 Acme Corp\n\n",
		},
		"separator before following comment": {
			content: "# 2024 Acme Corp\n# module docs\nimport os\n",
			span:    "# 2024 Acme Corp\n",
			want:    "# 2025 Acme Corp\n\n# module docs\nimport os\n",
		},
		"span not found leaves content alone": {
			content: "import os\n",
			span:    "# 2024 Acme Corp\n",
			want:    "import os\n",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := Replace([]byte(tc.content), tc.span, hdr)
			testutil.AssertEqual(t, string(got), tc.want)
		})
	}
}
