/*
Package emit serializes bitmap font resources.

Every format writes the parts of a resource in the same fixed order:
bitmap blob, glyph table, interval table, then the font-wide scalars
(interval count, compressed flag, line height, ascender, descender and
the format tag). Renderers are written against this order.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package emit

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/epdfont/engine/layout"
)

// Emitter writes a resource in a specific format.
type Emitter interface {
	Emit(w io.Writer, r *layout.Resource) error
	Extension() string // file name extension, including the dot
}

// ForFormat returns the emitter for a format name: "py" (the default) or
// "bin".
func ForFormat(format string) (Emitter, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "", "py", "python":
		return Python{}, nil
	case "bin", "binary":
		return Binary{}, nil
	}
	return nil, core.Error(core.EINVALID, "unknown output format %q", format)
}

// Filename returns the name of the output file for a resource, derived from
// the font's name and size, e.g. "FiraSans16pt.py".
func Filename(r *layout.Resource, e Emitter) string {
	return fmt.Sprintf("%s%dpt%s", r.Name, r.Size, e.Extension())
}

// Chunks splits b into consecutive slices of n bytes; the last one may be
// shorter. The slices share b's storage.
func Chunks(b []byte, n int) [][]byte {
	if n <= 0 {
		panic("chunk size must be positive")
	}
	chunks := make([][]byte, 0, (len(b)+n-1)/n)
	for i := 0; i < len(b); i += n {
		end := i + n
		if end > len(b) {
			end = len(b)
		}
		chunks = append(chunks, b[i:end])
	}
	return chunks
}

// errWriter remembers the first write error, so formatting code does not
// have to check every write.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, v ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, v...)
}
