package layout

import (
	"math"

	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/epdfont/core/font"
)

// Accumulator is the state of a pass over the glyphs of a resource. Cursor
// is the length of the bitmap blob so far, i.e. the offset where the data of
// the next glyph goes.
//
// An Accumulator is a value; Add returns its successor. Accumulators share
// their slices with their successors and must be used linearly.
type Accumulator struct {
	Cursor uint32
	Glyphs []GlyphProps
	Blob   []byte
}

// Add appends the data of glyph g to the blob and records its glyph table
// entry, with DataOffset at the current cursor.
func (acc Accumulator) Add(g font.Glyph, data []byte) (Accumulator, error) {
	if uint64(acc.Cursor)+uint64(len(data)) > math.MaxUint32 {
		return acc, core.Error(core.ERANGE, "bitmap data exceeds 4 GiB at code point %d", g.CodePoint)
	}
	props, err := Props(g, acc.Cursor, uint32(len(data)))
	if err != nil {
		return acc, err
	}
	next := Accumulator{
		Cursor: acc.Cursor + uint32(len(data)),
		Glyphs: append(acc.Glyphs, props),
		Blob:   append(acc.Blob, data...),
	}
	tracer().Debugf("glyph %d: %d bytes at offset %d", g.CodePoint, props.CompressedSize, props.DataOffset)
	return next, nil
}

// Resource finishes the pass: the accumulated glyphs are combined with the
// interval table of set and font-wide metadata. The number of glyphs has to
// match the number of code points in set.
func (acc Accumulator) Resource(name string, size int, set IntervalSet, meta Metadata) (*Resource, error) {
	if len(acc.Glyphs) != set.GlyphCount() {
		return nil, core.Error(core.EINTERNAL, "have %d glyphs for %d code points",
			len(acc.Glyphs), set.GlyphCount())
	}
	return &Resource{
		Name:      name,
		Size:      size,
		Bitmap:    acc.Blob,
		Glyphs:    acc.Glyphs,
		Intervals: set.Table(),
		Metadata:  meta,
	}, nil
}

// Verify checks the invariants of a resource: contiguous glyph data covering
// exactly the bitmap blob, and an interval table whose offsets account for
// every glyph.
func (r *Resource) Verify() error {
	var cursor uint32
	for i, g := range r.Glyphs {
		if g.DataOffset != cursor {
			return core.Error(core.EINTERNAL, "glyph #%d starts at %d, expected %d", i, g.DataOffset, cursor)
		}
		cursor += g.CompressedSize
	}
	if int(cursor) != len(r.Bitmap) {
		return core.Error(core.EINTERNAL, "glyph data covers %d bytes of %d", cursor, len(r.Bitmap))
	}
	var offset uint32
	for i, iv := range r.Intervals {
		if iv.First > iv.Last || (i > 0 && r.Intervals[i-1].Last >= iv.First) {
			return core.Error(core.EINTERNAL, "interval #%d is out of order", i)
		}
		if iv.Offset != offset {
			return core.Error(core.EINTERNAL, "interval #%d has offset %d, expected %d", i, iv.Offset, offset)
		}
		offset += iv.Last - iv.First + 1
	}
	if int(offset) != len(r.Glyphs) {
		return core.Error(core.EINTERNAL, "intervals cover %d glyphs of %d", offset, len(r.Glyphs))
	}
	return nil
}
