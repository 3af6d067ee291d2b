/*
Package font is for loading outline fonts and rendering their glyphs into
grayscale bitmaps at a fixed device resolution.

We stick to the following nomenclature:

* A "scalable font" is an outline font as read from a TrueType or OpenType
file. An example is "Fira Sans bold".

* A "face" is a scalable font prepared for a certain point size at a certain
device resolution. An example is "Fira Sans bold 16pt @ 150 dpi".

Linear metrics are handled in 26.6 fixed point, as the rasterizer does.
Conversion to integer pixels floors advance-like quantities and ceils
vertical extents (line height, ascender). The descender, being negative,
is floored as well.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"fmt"
	"os"
	"sync"

	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'epdfont.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("epdfont.fonts")
}

// DeviceDPI is the resolution of the target display. The e-paper panels
// we render for have about 150 dpi.
const DeviceDPI = 150

// ScalableFont is an outline font, not yet prepared for a size.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// LoadOpenTypeFont reads and parses a TrueType or OpenType font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses font data.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// HasGlyph is a predicate: does the font map cp to a glyph other than .notdef?
func (sf *ScalableFont) HasGlyph(cp rune) bool {
	var buf sfnt.Buffer
	gid, err := sf.SFNT.GlyphIndex(&buf, cp)
	return err == nil && gid != 0
}

func (sf *ScalableFont) String() string {
	if sf.Filepath != "" {
		return fmt.Sprintf("%s (%s)", sf.Fontname, sf.Filepath)
	}
	return sf.Fontname
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font which is always present. Currently we use
// Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	gofont, err := ParseOpenTypeFont(goregular.TTF)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	gofont.Fontname = "Go Sans"
	gofont.Filepath = "internal"
	return gofont
}

// checkSize validates a point size requested for a face.
func checkSize(size int) error {
	if size <= 0 {
		return core.Error(core.EINVALID, "font size must be a positive number of points, is %d", size)
	}
	return nil
}
