package resources

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestNormalizeFontname(t *testing.T) {
	for k, v := range map[string]string{
		"Go-Regular.ttf":           "goregular",
		"fonts/Fira Sans Bold.otf": "firasansbold",
		"  gomono ":                "gomono",
	} {
		assert.Equal(t, v, NormalizeFontname(k), "normalizing %q", k)
	}
}

func TestLocatePackagedFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epdfont.resources")
	defer teardown()
	//
	f, err := LocateFont("Go-Mono")
	require.NoError(t, err)
	assert.Equal(t, "packaged:gomono", f.Filepath)
	assert.True(t, f.HasGlyph('x'))
	assert.Contains(t, PackagedFonts(), "goregular")
}

func TestLocateFontFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epdfont.resources")
	defer teardown()
	//
	fontpath := filepath.Join(t.TempDir(), "Regular.ttf")
	require.NoError(t, os.WriteFile(fontpath, goregular.TTF, 0644))
	f, err := LocateFont(fontpath)
	require.NoError(t, err)
	assert.Equal(t, fontpath, f.Filepath)
}

func TestLoadFacesFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epdfont.resources")
	defer teardown()
	//
	broken := filepath.Join(t.TempDir(), "broken.ttf")
	require.NoError(t, os.WriteFile(broken, []byte("not a font"), 0644))
	_, err := LoadFaces([]string{"goregular", broken}, 12, 150)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrFaceLoad))
	assert.Contains(t, core.UserMessage(err), broken)
	//
	_, err = LoadFaces([]string{"goregular", "no-such-font-anywhere-xyz"}, 12, 150)
	assert.True(t, errors.Is(err, core.ErrFaceLoad))
	//
	_, err = LoadFaces(nil, 12, 150)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestLoadFaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "epdfont.resources")
	defer teardown()
	//
	faces, err := LoadFaces([]string{"gobold", "goregular"}, 10, 150)
	require.NoError(t, err)
	defer CloseFaces(faces)
	require.Len(t, faces, 2)
	assert.Equal(t, 10, faces[0].PtSize())
	assert.Equal(t, "packaged:gobold", faces[0].ScalableFontParent().Filepath)
}
