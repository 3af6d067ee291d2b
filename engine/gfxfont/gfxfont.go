/*
Package gfxfont reads bitmap font resources the way the framebuffer
renderer does: glyphs are found by code point through the interval table,
their data is taken from the bitmap blob by offset and size only, then
inflated (for compressed fonts) and unpacked row by row.

Clients use it to check a converted font before shipping it to a device.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gfxfont

import (
	"image"
	"image/color"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/epdfont/engine/bitmap"
	"github.com/npillmayer/epdfont/engine/layout"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'epdfont.layout'.
func tracer() tracing.Trace {
	return tracing.Select("epdfont.layout")
}

// Font is a read-only view of a resource.
type Font struct {
	res       *layout.Resource
	intervals *redblacktree.Tree // first code point → interval record
}

// New wraps a resource. The resource is verified first.
func New(r *layout.Resource) (*Font, error) {
	if err := r.Verify(); err != nil {
		return nil, err
	}
	if r.BitDepth != 0 && r.BitDepth != bitmap.BitDepth {
		return nil, core.Error(core.EINVALID, "unsupported bit depth %d", r.BitDepth)
	}
	f := &Font{
		res:       r,
		intervals: redblacktree.NewWith(utils.UInt32Comparator),
	}
	for _, iv := range r.Intervals {
		f.intervals.Put(iv.First, iv)
	}
	return f, nil
}

// Resource returns the underlying resource.
func (f *Font) Resource() *layout.Resource {
	return f.res
}

// GlyphIndex finds the index of the glyph for cp in the glyph table.
func (f *Font) GlyphIndex(cp rune) (int, bool) {
	if cp < 0 {
		return 0, false
	}
	node, found := f.intervals.Floor(uint32(cp))
	if !found {
		return 0, false
	}
	iv := node.Value.(layout.CodePointInterval)
	if !iv.Contains(cp) {
		return 0, false
	}
	return int(iv.Offset) + int(uint32(cp)-iv.First), true
}

// Glyph returns the glyph table record for cp.
func (f *Font) Glyph(cp rune) (layout.GlyphProps, bool) {
	i, ok := f.GlyphIndex(cp)
	if !ok {
		return layout.GlyphProps{}, false
	}
	return f.res.Glyphs[i], true
}

// Bitmap returns the packed 4bpp bitmap of a glyph, inflated if the font
// is compressed.
func (f *Font) Bitmap(g layout.GlyphProps) ([]byte, error) {
	end := uint64(g.DataOffset) + uint64(g.CompressedSize)
	if end > uint64(len(f.res.Bitmap)) {
		return nil, core.Error(core.EINVALID, "glyph data at %d+%d exceeds bitmap blob of %d bytes",
			g.DataOffset, g.CompressedSize, len(f.res.Bitmap))
	}
	data := f.res.Bitmap[g.DataOffset:end]
	if f.res.Compressed {
		var err error
		if data, err = bitmap.Decompress(data); err != nil {
			return nil, err
		}
	}
	if len(data) != bitmap.PackedSize(int(g.Width), int(g.Height)) {
		return nil, core.Error(core.EINVALID, "glyph bitmap has %d bytes, expected %d for %d×%d",
			len(data), bitmap.PackedSize(int(g.Width), int(g.Height)), g.Width, g.Height)
	}
	return data, nil
}

// Alpha returns the 4-bit intensity of pixel (x,y) of a glyph's bitmap.
func Alpha(g layout.GlyphProps, packed []byte, x, y int) uint8 {
	return bitmap.Nibble(packed, int(g.Width), x, y)
}

// TextSize measures the ink box of a string, in pixels. Code points
// missing from the font are skipped.
func (f *Font) TextSize(s string) (w, h int) {
	minx, miny, maxx, maxy := 100000, 100000, -100000, -100000
	x, n := 0, 0
	for _, cp := range s {
		g, ok := f.Glyph(cp)
		if !ok {
			continue
		}
		n++
		x1 := x + int(g.Left)
		y1 := -int(g.Top)
		x2, y2 := x1+int(g.Width), y1+int(g.Height)
		minx, miny = min(minx, x1), min(miny, y1)
		maxx, maxy = max(maxx, x2), max(maxy, y2)
		x += int(g.AdvanceX)
	}
	if n == 0 {
		return 0, 0
	}
	return max(maxx, x) - min(minx, 0), maxy - miny
}

// Draw renders s into dst with its baseline at y, starting at x. Ink is
// drawn black on the existing background, scaling 4-bit intensities to 8 bit.
// It returns the pen position after the last glyph.
func (f *Font) Draw(dst *image.Gray, s string, x, y int) (int, error) {
	b := dst.Bounds()
	for _, cp := range s {
		g, ok := f.Glyph(cp)
		if !ok {
			tracer().Infof("cannot find glyph for code point %d", cp)
			continue
		}
		packed, err := f.Bitmap(g)
		if err != nil {
			return x, err
		}
		for gy := 0; gy < int(g.Height); gy++ {
			yy := y - int(g.Top) + gy
			if yy < b.Min.Y || yy >= b.Max.Y {
				continue
			}
			for gx := 0; gx < int(g.Width); gx++ {
				xx := x + int(g.Left) + gx
				if xx < b.Min.X || xx >= b.Max.X {
					continue
				}
				a := Alpha(g, packed, gx, gy)
				bg := dst.GrayAt(xx, yy).Y
				v := int(bg) - int(bg)*int(a)/15
				dst.SetGray(xx, yy, color.Gray{Y: uint8(v)})
			}
		}
		x += int(g.AdvanceX)
	}
	return x, nil
}
