package gfxfont

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/epdfont/core/font"
	"github.com/npillmayer/epdfont/engine/bitmap"
	"github.com/npillmayer/epdfont/engine/layout"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

// makeResource builds a resource of solid glyphs for the given intervals.
// Glyph i is (i%3+1) pixels wide, 3 pixels high and has intensity i%16.
func makeResource(t *testing.T, compress bool, set layout.IntervalSet) *layout.Resource {
	c := bitmap.NewCompressor(compress)
	acc := layout.Accumulator{}
	i := 0
	err := set.CodePoints(func(cp rune) error {
		w, h := i%3+1, 3
		g := font.Glyph{CodePoint: cp, Width: w, Height: h, Pix: make([]byte, w*h),
			Advance: fixed.I(w + 1), Top: h}
		for j := range g.Pix {
			g.Pix[j] = byte(i%16) << 4
		}
		data, err := c.Compress(bitmap.Pack(g.Pix, w, h))
		if err != nil {
			return err
		}
		acc, err = acc.Add(g, data)
		i++
		return err
	})
	require.NoError(t, err)
	meta, err := layout.NewMetadata(font.Metrics{LineHeight: 5, Ascender: 3, Descender: -1}, c.Compressed())
	require.NoError(t, err)
	r, err := acc.Resource("Test", 8, set, meta)
	require.NoError(t, err)
	return r
}

func TestGlyphLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epdfont.layout")
	defer teardown()
	//
	set := layout.IntervalSet{{First: 32, Last: 40}, {First: 160, Last: 162}, {First: 0x2500, Last: 0x2501}}
	f, err := New(makeResource(t, false, set))
	require.NoError(t, err)
	for _, tc := range []struct {
		cp    rune
		index int
		ok    bool
	}{
		{32, 0, true}, {40, 8, true}, {41, 0, false}, {31, 0, false},
		{160, 9, true}, {162, 11, true}, {163, 0, false},
		{0x2500, 12, true}, {0x2501, 13, true}, {0x2502, 0, false}, {-1, 0, false},
	} {
		i, ok := f.GlyphIndex(tc.cp)
		assert.Equal(t, tc.ok, ok, "code point %d", tc.cp)
		if tc.ok {
			assert.Equal(t, tc.index, i, "code point %d", tc.cp)
			assert.Equal(t, tc.cp, f.Resource().CodePoint(i))
		}
	}
}

func TestBitmapRoundTrip(t *testing.T) {
	set := layout.IntervalSet{{First: 65, Last: 90}}
	for _, compress := range []bool{false, true} {
		f, err := New(makeResource(t, compress, set))
		require.NoError(t, err)
		for cp := rune(65); cp <= 90; cp++ {
			g, ok := f.Glyph(cp)
			require.True(t, ok)
			packed, err := f.Bitmap(g)
			require.NoError(t, err)
			i := int(cp - 65)
			for y := 0; y < int(g.Height); y++ {
				for x := 0; x < int(g.Width); x++ {
					assert.Equal(t, uint8(i%16), Alpha(g, packed, x, y))
				}
			}
		}
	}
}

func TestCorruptResource(t *testing.T) {
	r := makeResource(t, true, layout.IntervalSet{{First: 65, Last: 67}})
	r.Bitmap[0] ^= 0xff // zlib header
	f, err := New(r)
	require.NoError(t, err)
	g, _ := f.Glyph('A')
	_, err = f.Bitmap(g)
	assert.Error(t, err)
	//
	r = makeResource(t, false, layout.IntervalSet{{First: 65, Last: 67}})
	r.BitDepth = 2
	_, err = New(r)
	assert.Equal(t, core.EINVALID, core.Code(err))
	//
	r = makeResource(t, false, layout.IntervalSet{{First: 65, Last: 67}})
	r.Glyphs[1].DataOffset++
	_, err = New(r)
	assert.Error(t, err)
}

func TestTextSizeAndDraw(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epdfont.layout")
	defer teardown()
	//
	f, err := New(makeResource(t, true, layout.IntervalSet{{First: 65, Last: 70}}))
	require.NoError(t, err)
	// A: 1px wide, intensity 0; B: 2px, 1; C: 3px, 2
	w, h := f.TextSize("ABC")
	assert.Equal(t, 2+3+4, w)
	assert.Equal(t, 3, h)
	w, h = f.TextSize("xyz")
	assert.Zero(t, w)
	assert.Zero(t, h)
	//
	img := image.NewGray(image.Rect(0, 0, 20, 10))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Gray{Y: 0xff}), image.Point{}, draw.Src)
	x, err := f.Draw(img, "ABC?", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 10, x, "unknown '?' is skipped")
	assert.Equal(t, uint8(0xff), img.GrayAt(1, 2).Y, "intensity 0 leaves the background")
	assert.Equal(t, uint8(0xff-0xff/15), img.GrayAt(3, 2).Y, "glyph B starts at pen position 3")
	assert.Equal(t, uint8(0xff-0xff*2/15), img.GrayAt(6, 4).Y)
	assert.Equal(t, uint8(0xff), img.GrayAt(6, 5).Y, "baseline row is not inked")
}
