/*
Package fonttest provides synthetic faces for testing packages which consume
faces, without the need for font files.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fonttest

import (
	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/epdfont/core/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Face is a synthetic face. It contains every code point in its
// coverage and renders glyphs of a fixed size with a deterministic
// intensity pattern.
type Face struct {
	Label     string
	Coverage  map[rune]bool
	Width     int
	Height    int
	Advance   fixed.Int26_6
	Left, Top int
	Font      font.Metrics
	Rendered  []rune // code points rasterized so far, in order
}

// NewFace creates a synthetic face covering all code points of the
// inclusive ranges given as pairs (first, last, first, last, …).
func NewFace(label string, width, height int, ranges ...rune) *Face {
	f := &Face{
		Label:    label,
		Coverage: make(map[rune]bool),
		Width:    width,
		Height:   height,
		Advance:  fixed.I(width + 1),
		Top:      height,
		Font:     font.Metrics{LineHeight: height + 4, Ascender: height, Descender: -3},
	}
	for i := 0; i+1 < len(ranges); i += 2 {
		for cp := ranges[i]; cp <= ranges[i+1]; cp++ {
			f.Coverage[cp] = true
		}
	}
	return f
}

// Name is part of interface fontstack.Face.
func (f *Face) Name() string {
	return f.Label
}

// GlyphIndex is part of interface fontstack.Face.
func (f *Face) GlyphIndex(cp rune) (sfnt.GlyphIndex, error) {
	if !f.Coverage[cp] {
		return 0, nil
	}
	return sfnt.GlyphIndex(cp&0x7fff) | 1, nil
}

// Metrics is part of interface fontstack.Face.
func (f *Face) Metrics() font.Metrics {
	return f.Font
}

// Rasterize is part of interface fontstack.Face. Pixel (x,y) of a glyph has
// intensity Pattern(cp, x, y).
func (f *Face) Rasterize(cp rune) (font.Glyph, error) {
	if !f.Coverage[cp] {
		return font.Glyph{}, core.GlyphNotFound(cp, 1)
	}
	f.Rendered = append(f.Rendered, cp)
	g := font.Glyph{
		CodePoint: cp,
		Width:     f.Width,
		Height:    f.Height,
		Pix:       make([]byte, f.Width*f.Height),
		Advance:   f.Advance,
		Left:      f.Left,
		Top:       f.Top,
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			g.Pix[y*f.Width+x] = Pattern(cp, x, y)
		}
	}
	return g, nil
}

// Pattern is the 8-bit intensity of pixel (x,y) of synthetic glyph cp.
func Pattern(cp rune, x, y int) byte {
	return byte((int(cp)*31 + x*17 + y*59) & 0xff)
}
