// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package header

import (
	"bytes"
	"strings"
)

// Extract scans content from the top and returns the leading comment block
// together with the byte offset at which a new header may be inserted.
//
// An interpreter directive ("#!") and blank lines before the block advance
// the insert offset past themselves; any other non-comment line stops the
// scan. A blank line inside the block ends it, same as a non-comment line.
// Every block line is normalized to end with a newline, even when the file's
// last line has none.
//
// Offsets are computed over the raw bytes, not reconstructed from split
// lines, so they stay exact for files without a trailing newline.
func Extract(content []byte) (block string, insertAt int) {
	var (
		b       strings.Builder
		inBlock bool
		off     int
	)
	for off < len(content) {
		var line []byte
		next := bytes.IndexByte(content[off:], '\n')
		if next < 0 {
			line, next = content[off:], len(content)
		} else {
			line, next = content[off:off+next], off+next+1
		}

		switch {
		case !inBlock && bytes.HasPrefix(line, []byte(shebang)):
			insertAt = next
		case !inBlock && len(bytes.TrimSpace(line)) == 0:
			insertAt = next
		case bytes.HasPrefix(line, []byte(comment)):
			inBlock = true
			b.Write(line)
			b.WriteByte('\n')
		default:
			return b.String(), insertAt
		}
		off = next
	}
	return b.String(), insertAt
}
