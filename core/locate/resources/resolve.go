package resources

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/epdfont/core/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// packaged are the fonts which are always available, independent of the
// platform.
var packaged = map[string][]byte{
	"goregular":    goregular.TTF,
	"gobold":       gobold.TTF,
	"goitalic":     goitalic.TTF,
	"gobolditalic": gobolditalic.TTF,
	"gomedium":     gomedium.TTF,
	"gomono":       gomono.TTF,
	"gomonobold":   gomonobold.TTF,
	"gosmallcaps":  gosmallcaps.TTF,
}

// PackagedFonts returns the names of the packaged fonts, sorted.
func PackagedFonts() []string {
	names := make([]string, 0, len(packaged))
	for name := range packaged {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NotFound returns an application error for a missing font.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, "font not found: %s", res)
}

// NormalizeFontname strips a font name of its extension, spaces, hyphens and
// casing, so that "Go-Regular.ttf" and "go regular" map to the same key.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(path.Base(fname))
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	fname = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(fname)
	return fname
}

// LocateFont finds and parses the font for a font stack entry.
func LocateFont(entry string) (*font.ScalableFont, error) {
	if fi, err := os.Stat(entry); err == nil && !fi.IsDir() {
		tracer().Debugf("%s is a font file", entry)
		return font.LoadOpenTypeFont(entry)
	}
	if data, ok := packaged[NormalizeFontname(entry)]; ok {
		tracer().Debugf("%s is a packaged font", entry)
		f, err := font.ParseOpenTypeFont(data)
		if err != nil {
			return nil, err
		}
		f.Filepath = "packaged:" + NormalizeFontname(entry)
		return f, nil
	}
	fpath, err := findfont.Find(entry) // try to find as system font
	if err == nil && fpath != "" {
		tracer().Debugf("%s is a system font at %s", entry, fpath)
		return font.LoadOpenTypeFont(fpath)
	}
	return nil, NotFound(entry)
}

// LoadFaces locates every entry of a font stack and prepares a face of
// size points at dpi for it. Faces keep the order of the entries.
//
// If any entry fails, faces already prepared are closed and an error
// matching core.ErrFaceLoad, naming the offending entry, is returned.
func LoadFaces(entries []string, size int, dpi float64) ([]*font.Face, error) {
	if len(entries) == 0 {
		return nil, core.Error(core.EINVALID, "font stack is empty")
	}
	faces := make([]*font.Face, 0, len(entries))
	fail := func(err error) ([]*font.Face, error) {
		CloseFaces(faces)
		return nil, err
	}
	for i, entry := range entries {
		sf, err := LocateFont(entry)
		if err != nil {
			tracer().Errorf("cannot load font #%d %s: %v", i, entry, err)
			return fail(core.FaceLoadFailure(entry, i, err))
		}
		face, err := sf.PrepareFaceAt(size, dpi)
		if err != nil {
			if core.Code(err) == core.EINVALID && !errors.Is(err, core.ErrFaceLoad) {
				return fail(err)
			}
			return fail(core.FaceLoadFailure(entry, i, err))
		}
		tracer().Infof("font #%d is %s", i, sf)
		faces = append(faces, face)
	}
	return faces, nil
}

// CloseFaces closes all faces, ignoring errors.
func CloseFaces(faces []*font.Face) {
	for _, f := range faces {
		if err := f.Close(); err != nil {
			tracer().Errorf("closing face %s: %v", f.Name(), err)
		}
	}
}
