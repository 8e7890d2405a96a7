// © 2025 Nathnael Bekele. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package header

import (
	"bytes"
	"strings"
)

// Insert returns content with the rendered header written at insertAt. A
// prefix consisting only of whitespace is dropped, and a blank line keeps
// the header separate from a comment that immediately follows it.
func Insert(content []byte, insertAt int, hdr string) []byte {
	prefix, suffix := content[:insertAt], content[insertAt:]

	var b bytes.Buffer
	if len(bytes.TrimSpace(prefix)) > 0 {
		b.Write(prefix)
	}
	b.WriteString(hdr)
	if bytes.HasPrefix(suffix, []byte(comment)) {
		b.WriteByte('\n')
	}
	b.Write(suffix)
	return b.Bytes()
}

// Replace substitutes the outdated header span with the rendered header. The
// span was derived from this same content, except possibly its final newline
// when the file does not end with one; in that case the span consumes the
// rest of the file.
func Replace(content []byte, span, hdr string) []byte {
	idx := bytes.Index(content, []byte(span))
	length := len(span)
	if idx < 0 {
		trimmed := strings.TrimSuffix(span, "\n")
		idx = bytes.Index(content, []byte(trimmed))
		length = len(trimmed)
	}
	if idx < 0 {
		// Span not present; leave the content alone.
		return content
	}
	before, after := content[:idx], content[idx+length:]

	var b bytes.Buffer
	b.Write(before)
	b.WriteString(hdr)
	if len(after) == 0 || bytes.HasPrefix(after, []byte(comment)) {
		b.WriteByte('\n')
	}
	b.Write(after)
	return b.Bytes()
}
