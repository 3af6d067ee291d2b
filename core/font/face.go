package font

import (
	"fmt"
	"image"

	"github.com/npillmayer/epdfont/core"
	"golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SizeToFixed converts a point size to 26.6 fixed point.
func SizeToFixed(pt int) fixed.Int26_6 {
	return fixed.Int26_6(pt << 6)
}

// FloorPx converts a 26.6 value to pixels, rounding towards -∞.
func FloorPx(v fixed.Int26_6) int {
	return v.Floor()
}

// CeilPx converts a 26.6 value to pixels, rounding towards +∞.
func CeilPx(v fixed.Int26_6) int {
	return v.Ceil()
}

// Metrics holds the font-wide metrics of a face, in pixels.
type Metrics struct {
	LineHeight int // distance between baselines
	Ascender   int // height above the baseline
	Descender  int // extent below the baseline, negative
}

// Glyph is the rasterized image of a code point, together with its metrics.
// Pix holds Width×Height 8-bit intensities, row-major.
//
// Left and Top are the offsets from the pen position to the upper left corner
// of the bitmap, with Top measured upwards.
type Glyph struct {
	CodePoint     rune
	Width, Height int
	Pix           []byte
	Advance       fixed.Int26_6
	Left, Top     int
}

// Face is a scalable font prepared for a point size at a device resolution.
// A Face is not safe for concurrent use.
type Face struct {
	scalable *ScalableFont
	face     xfont.Face
	size     int
	dpi      float64
	buf      sfnt.Buffer
}

// PrepareFace creates a face for size points at DeviceDPI.
func (sf *ScalableFont) PrepareFace(size int) (*Face, error) {
	return sf.PrepareFaceAt(size, DeviceDPI)
}

// PrepareFaceAt creates a face for size points at a given resolution.
// The rasterizer receives the size in 26.6 fixed point and does not hint
// outlines, so advances keep their fractional part until converted with
// FloorPx.
func (sf *ScalableFont) PrepareFaceAt(size int, dpi float64) (*Face, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if dpi <= 0 {
		return nil, core.Error(core.EINVALID, "device resolution must be positive, is %g", dpi)
	}
	options := &opentype.FaceOptions{
		Size:    float64(SizeToFixed(size)) / 64,
		DPI:     dpi,
		Hinting: xfont.HintingNone,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("prepared face %s at %dpt/%gdpi", sf.Fontname, size, dpi)
	return &Face{
		scalable: sf,
		face:     f,
		size:     size,
		dpi:      dpi,
	}, nil
}

// ScalableFontParent returns the outline font the face has been derived from.
func (f *Face) ScalableFontParent() *ScalableFont {
	return f.scalable
}

// PtSize returns the face's size in points.
func (f *Face) PtSize() int {
	return f.size
}

// Name returns a descriptive name for the face.
func (f *Face) Name() string {
	return fmt.Sprintf("%s %dpt", f.scalable.Fontname, f.size)
}

// GlyphIndex returns the glyph index for cp. Zero means the face does
// not contain cp.
func (f *Face) GlyphIndex(cp rune) (sfnt.GlyphIndex, error) {
	return f.scalable.SFNT.GlyphIndex(&f.buf, cp)
}

// Metrics returns the font-wide metrics of the face, converted to pixels.
func (f *Face) Metrics() Metrics {
	m := f.face.Metrics()
	return Metrics{
		LineHeight: CeilPx(m.Height),
		Ascender:   CeilPx(m.Ascent),
		Descender:  FloorPx(-m.Descent),
	}
}

// Rasterize renders the glyph for cp. If the face does not contain cp,
// an error matching core.ErrGlyphNotFound is returned.
func (f *Face) Rasterize(cp rune) (Glyph, error) {
	gid, err := f.GlyphIndex(cp)
	if err != nil {
		return Glyph{}, core.WrapError(err, core.EINVALID, "cannot look up code point %d in %s", cp, f.Name())
	}
	if gid == 0 {
		return Glyph{}, core.GlyphNotFound(cp, 1)
	}
	dr, mask, maskp, advance, ok := f.face.Glyph(fixed.Point26_6{}, cp)
	if !ok {
		return Glyph{}, core.GlyphNotFound(cp, 1)
	}
	g := Glyph{
		CodePoint: cp,
		Width:     dr.Dx(),
		Height:    dr.Dy(),
		Advance:   advance,
		Left:      dr.Min.X,
		Top:       -dr.Min.Y,
	}
	if dr.Empty() {
		g.Width, g.Height = 0, 0
		return g, nil
	}
	dst := image.NewAlpha(image.Rect(0, 0, g.Width, g.Height))
	draw.Draw(dst, dst.Bounds(), mask, maskp, draw.Src)
	g.Pix = dst.Pix
	return g, nil
}

// Close releases the rasterizer resources of the face.
func (f *Face) Close() error {
	return f.face.Close()
}
