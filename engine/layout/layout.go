/*
Package layout assembles the tables of a bitmap font resource.

A resource consists of a bitmap blob, holding the packed (and possibly
compressed) bitmaps of all glyphs back to back, a glyph table with one
record per glyph, and an interval table mapping code points to glyph
table indices. The tables are built in a single pass over the glyphs,
threading an Accumulator through the pass:

    acc := layout.Accumulator{}
    for … {
        acc, err = acc.Add(glyph, data)
    }

Offsets of the glyph table are contiguous: the data of glyph i+1 starts
where the data of glyph i ends, and the data of glyph 0 starts at 0.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"math"

	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/epdfont/core/font"
	"github.com/npillmayer/epdfont/engine/bitmap"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'epdfont.layout'.
func tracer() tracing.Trace {
	return tracing.Select("epdfont.layout")
}

// FormatTag is written as the last scalar of a resource. Renderers check for
// it to recognize the legacy 7-field layout.
const FormatTag = 7

// GlyphProps is a record of the glyph table.
//
// Field order is part of the resource format: width, height, advance_x,
// left, top, compressed_size, data_offset.
type GlyphProps struct {
	Width          uint16 // bitmap width in pixels
	Height         uint16 // bitmap height in pixels
	AdvanceX       int16  // distance to the next glyph's origin
	Left           int16  // x distance from origin to the bitmap's left edge
	Top            int16  // y distance from origin up to the bitmap's top edge
	CompressedSize uint32 // number of bytes in the bitmap blob
	DataOffset     uint32 // start of the glyph's bytes in the bitmap blob
}

// Metadata holds the font-wide scalars of a resource.
type Metadata struct {
	Compressed bool
	LineHeight uint16
	Ascender   uint16
	Descender  int16
	BitDepth   uint8
}

// Resource is a complete bitmap font, ready to be emitted.
type Resource struct {
	Name      string // font name, used for identifiers of emitted sources
	Size      int    // point size
	Bitmap    []byte
	Glyphs    []GlyphProps
	Intervals []CodePointInterval
	Metadata
}

// CodePoint returns the code point of glyph #index, or -1 if index is not
// covered by the interval table.
func (r *Resource) CodePoint(index int) rune {
	for _, iv := range r.Intervals {
		n := int(iv.Last-iv.First) + 1
		if index >= int(iv.Offset) && index < int(iv.Offset)+n {
			return rune(iv.First) + rune(index-int(iv.Offset))
		}
	}
	return -1
}

// Props builds a glyph table record from a rasterized glyph and the
// placement of its data. The advance is floored from 26.6 fixed point,
// bearings are taken verbatim. Values which do not fit the record's fields
// produce an error with code core.ERANGE.
func Props(g font.Glyph, offset, size uint32) (GlyphProps, error) {
	adv := font.FloorPx(g.Advance)
	if err := checkUnsigned(g.CodePoint, "width", g.Width); err != nil {
		return GlyphProps{}, err
	}
	if err := checkUnsigned(g.CodePoint, "height", g.Height); err != nil {
		return GlyphProps{}, err
	}
	for _, v := range []struct {
		name  string
		value int
	}{{"advance", adv}, {"left bearing", g.Left}, {"top bearing", g.Top}} {
		if v.value < math.MinInt16 || v.value > math.MaxInt16 {
			return GlyphProps{}, core.Error(core.ERANGE,
				"%s of glyph for code point %d is out of range: %d", v.name, g.CodePoint, v.value)
		}
	}
	return GlyphProps{
		Width:          uint16(g.Width),
		Height:         uint16(g.Height),
		AdvanceX:       int16(adv),
		Left:           int16(g.Left),
		Top:            int16(g.Top),
		CompressedSize: size,
		DataOffset:     offset,
	}, nil
}

func checkUnsigned(cp rune, name string, v int) error {
	if v < 0 || v > math.MaxUint16 {
		return core.Error(core.ERANGE, "%s of glyph for code point %d is out of range: %d", name, cp, v)
	}
	return nil
}

// NewMetadata converts font-wide metrics to the scalars of a resource.
func NewMetadata(m font.Metrics, compressed bool) (Metadata, error) {
	if m.LineHeight < 0 || m.LineHeight > math.MaxUint16 {
		return Metadata{}, core.Error(core.ERANGE, "line height out of range: %d", m.LineHeight)
	}
	if m.Ascender < 0 || m.Ascender > math.MaxUint16 {
		return Metadata{}, core.Error(core.ERANGE, "ascender out of range: %d", m.Ascender)
	}
	if m.Descender < math.MinInt16 || m.Descender > math.MaxInt16 {
		return Metadata{}, core.Error(core.ERANGE, "descender out of range: %d", m.Descender)
	}
	return Metadata{
		Compressed: compressed,
		LineHeight: uint16(m.LineHeight),
		Ascender:   uint16(m.Ascender),
		Descender:  int16(m.Descender),
		BitDepth:   bitmap.BitDepth,
	}, nil
}
