package font

import (
	"errors"
	"testing"

	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

func TestFixedPointConversion(t *testing.T) {
	assert.Equal(t, fixed.Int26_6(16*64), SizeToFixed(16))
	assert.Equal(t, 2, FloorPx(fixed.Int26_6(191)))  // 2.98
	assert.Equal(t, 3, CeilPx(fixed.Int26_6(129)))   // 2.02
	assert.Equal(t, -3, FloorPx(fixed.Int26_6(-129))) // -2.02
	assert.Equal(t, 2, CeilPx(fixed.Int26_6(128)))
}

func TestFallbackFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epdfont.fonts")
	defer teardown()
	//
	f := FallbackFont()
	require.NotNil(t, f)
	assert.Equal(t, "Go Sans", f.Fontname)
	assert.True(t, f.HasGlyph('A'))
	assert.False(t, f.HasGlyph(0x1F600), "Go Sans should not contain emoji")
}

func TestFaceSizeValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epdfont.fonts")
	defer teardown()
	//
	_, err := FallbackFont().PrepareFace(0)
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = FallbackFont().PrepareFaceAt(12, 0)
	assert.Error(t, err)
}

func TestFaceMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epdfont.fonts")
	defer teardown()
	//
	face, err := FallbackFont().PrepareFace(16)
	require.NoError(t, err)
	defer face.Close()
	m := face.Metrics()
	t.Logf("metrics of %s = %+v", face.Name(), m)
	assert.Greater(t, m.LineHeight, 0)
	assert.Greater(t, m.Ascender, 0)
	assert.Less(t, m.Descender, 0)
	assert.GreaterOrEqual(t, m.LineHeight, m.Ascender)
}

func TestRasterizeGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epdfont.fonts")
	defer teardown()
	//
	face, err := FallbackFont().PrepareFace(16)
	require.NoError(t, err)
	defer face.Close()
	g, err := face.Rasterize('A')
	require.NoError(t, err)
	assert.Equal(t, 'A', g.CodePoint)
	assert.Greater(t, g.Width, 0)
	assert.Greater(t, g.Height, 0)
	assert.Len(t, g.Pix, g.Width*g.Height)
	assert.Greater(t, g.Top, 0, "'A' sits on the baseline")
	assert.Greater(t, FloorPx(g.Advance), 0)
	var ink int
	for _, v := range g.Pix {
		ink += int(v)
	}
	assert.Greater(t, ink, 0, "expected some ink for 'A'")
}

func TestRasterizeSpace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epdfont.fonts")
	defer teardown()
	//
	face, err := FallbackFont().PrepareFace(12)
	require.NoError(t, err)
	defer face.Close()
	g, err := face.Rasterize(' ')
	require.NoError(t, err)
	assert.Equal(t, 0, g.Width*g.Height)
	assert.Empty(t, g.Pix)
	assert.Greater(t, FloorPx(g.Advance), 0)
}

func TestRasterizeMissing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epdfont.fonts")
	defer teardown()
	//
	face, err := FallbackFont().PrepareFace(12)
	require.NoError(t, err)
	defer face.Close()
	_, err = face.Rasterize(0x1F600)
	assert.True(t, errors.Is(err, core.ErrGlyphNotFound))
}

func TestMonospaceAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epdfont.fonts")
	defer teardown()
	//
	mono, err := ParseOpenTypeFont(gomono.TTF)
	require.NoError(t, err)
	face, err := mono.PrepareFace(14)
	require.NoError(t, err)
	defer face.Close()
	i, err := face.Rasterize('i')
	require.NoError(t, err)
	m, err := face.Rasterize('m')
	require.NoError(t, err)
	assert.Equal(t, i.Advance, m.Advance, "Go Mono should have equal advances")
}
