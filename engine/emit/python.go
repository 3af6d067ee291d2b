package emit

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/npillmayer/epdfont/engine/layout"
	"golang.org/x/text/unicode/runenames"
)

// bytesPerLine is the number of bitmap bytes per line of a bytes literal.
const bytesPerLine = 16

// Python emits a resource as a Python module for the framebuffer's gfx
// font support. The module defines <name>Bitmaps, <name>Glyphs,
// <name>Intervals and the font tuple <name><size>pt.
type Python struct{}

// Extension is ".py".
func (Python) Extension() string {
	return ".py"
}

// Emit writes r as Python source to w.
func (Python) Emit(w io.Writer, r *layout.Resource) error {
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}
	name := r.Name
	//
	ew.printf("%sBitmaps =", name)
	chunks := Chunks(r.Bitmap, bytesPerLine)
	if len(chunks) == 0 {
		ew.printf(" b''")
	}
	for _, c := range chunks {
		ew.printf(" \\\n    b'%s'", hexEscaped(c))
	}
	ew.printf("\n\n")
	//
	ew.printf("%sGlyphs = (\n", name)
	ew.printf("    # width height xAdvance left top compressedSize dataOffset\n")
	for i, g := range r.Glyphs {
		ew.printf("    (%2d, %2d, %2d, %2d, %2d, %3d, %4d), # %s\n",
			g.Width, g.Height, g.AdvanceX, g.Left, g.Top, g.CompressedSize, g.DataOffset,
			glyphComment(r.CodePoint(i)))
	}
	ew.printf(")\n\n")
	//
	ew.printf("%sIntervals = (\n", name)
	ew.printf("    # first last offset\n")
	for _, iv := range r.Intervals {
		ew.printf("    (%2d, %2d, %2d),\n", iv.First, iv.Last, iv.Offset)
	}
	ew.printf(")\n\n")
	//
	ew.printf("%s%dpt = (\n", name, r.Size)
	ew.printf("    %sBitmaps,\n", name)
	ew.printf("    %sGlyphs,\n", name)
	ew.printf("    %sIntervals,\n", name)
	ew.printf("    %d,\n", len(r.Intervals))
	ew.printf("    %s,\n", pythonBool(r.Compressed))
	ew.printf("    %d,\n", r.LineHeight)
	ew.printf("    %d,\n", r.Ascender)
	ew.printf("    %d,\n", r.Descender)
	ew.printf("    %d,\n", layout.FormatTag)
	ew.printf(") # bitmap glyph intervals intervalCount compressed yAdvance ascender descender\n")
	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

func hexEscaped(b []byte) string {
	var sb strings.Builder
	sb.Grow(4 * len(b))
	for _, c := range b {
		fmt.Fprintf(&sb, "\\x%02X", c)
	}
	return sb.String()
}

func pythonBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// glyphComment names a glyph in a line comment. Printable characters stand
// for themselves; others are spelled by their Unicode name.
func glyphComment(cp rune) string {
	switch {
	case cp < 0:
		return "?"
	case cp == '\\':
		return "<backslash>"
	case unicode.IsPrint(cp):
		return string(cp)
	}
	if name := runenames.Name(cp); name != "" && !strings.HasPrefix(name, "<") {
		return "<" + name + ">"
	}
	return fmt.Sprintf("<U+%04X>", cp)
}
