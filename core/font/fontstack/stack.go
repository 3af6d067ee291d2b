package fontstack

import (
	"fmt"
	"strings"

	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/epdfont/core/font"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// Face is what the resolver needs from a face. *font.Face implements it.
type Face interface {
	Name() string
	GlyphIndex(cp rune) (sfnt.GlyphIndex, error)
	Metrics() font.Metrics
	Rasterize(cp rune) (font.Glyph, error)
}

var _ Face = (*font.Face)(nil)

// DescenderProbe is the code point whose face determines the font-wide
// metrics. The vertical bar reaches down to the "real" descender in most
// fonts, whereas the ink of iterated glyphs would skew it.
const DescenderProbe = '|'

// Stack is an ordered list of faces, highest priority first.
// Faces are read-only once put on a stack.
type Stack struct {
	faces []Face
}

// Resolution is the result of resolving a code point.
type Resolution struct {
	Face      Face            // the face serving the code point
	FaceIndex int             // position of Face on the stack
	Glyph     sfnt.GlyphIndex // glyph index within Face, never 0
}

// New creates a stack from faces, which must contain at least one face.
func New(faces ...Face) (*Stack, error) {
	if len(faces) == 0 {
		return nil, core.Error(core.EINVALID, "font stack must contain at least one font")
	}
	for i, f := range faces {
		if f == nil {
			return nil, core.Error(core.EINVALID, "font #%d of font stack is nil", i)
		}
	}
	s := &Stack{faces: make([]Face, len(faces))}
	copy(s.faces, faces)
	return s, nil
}

// Len returns the number of faces on the stack.
func (s *Stack) Len() int {
	return len(s.faces)
}

// Face returns face #i.
func (s *Stack) Face(i int) Face {
	return s.faces[i]
}

// Resolve scans the stack in priority order and returns the first face
// containing cp. Each fall-through to a lower priority face emits a notice.
// If no face contains cp, an error matching core.ErrGlyphNotFound is returned.
func (s *Stack) Resolve(cp rune) (Resolution, error) {
	for i, f := range s.faces {
		gid, err := f.GlyphIndex(cp)
		if err != nil {
			return Resolution{}, core.WrapError(err, core.EINVALID,
				"font #%d (%s) cannot look up code point %d", i, f.Name(), cp)
		}
		if gid > 0 {
			return Resolution{Face: f, FaceIndex: i, Glyph: gid}, nil
		}
		if i+1 < len(s.faces) {
			tracer().Infof("falling back to font %d for %s", i+1, printable(cp))
		}
	}
	tracer().Errorf("code point %d not found in font stack", cp)
	return Resolution{}, core.GlyphNotFound(cp, len(s.faces))
}

// Rasterize resolves cp and renders it from the face serving it.
func (s *Stack) Rasterize(cp rune) (font.Glyph, Resolution, error) {
	r, err := s.Resolve(cp)
	if err != nil {
		return font.Glyph{}, r, err
	}
	g, err := r.Face.Rasterize(cp)
	if err != nil {
		return font.Glyph{}, r, core.WrapError(err, core.Code(err),
			"font #%d (%s) cannot render code point %d", r.FaceIndex, r.Face.Name(), cp)
	}
	return g, r, nil
}

// Descender resolves DescenderProbe through the stack. The metrics of the
// face returned are used as the font-wide metrics of a conversion.
func (s *Stack) Descender() (Resolution, error) {
	return s.Resolve(DescenderProbe)
}

// Metrics returns the font-wide metrics of the face serving DescenderProbe.
func (s *Stack) Metrics() (font.Metrics, error) {
	r, err := s.Descender()
	if err != nil {
		return font.Metrics{}, err
	}
	m := r.Face.Metrics()
	tracer().Debugf("font metrics taken from font #%d (%s): %+v", r.FaceIndex, r.Face.Name(), m)
	return m, nil
}

// LogFaceList is a helper function to dump the faces of a stack to the
// trace (log-level Info).
func (s *Stack) LogFaceList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- font stack ---")
	for i, f := range s.faces {
		tracer().Infof("font [%d] = %s", i, f.Name())
	}
	tracer().Infof("------------------")
	tracer().SetTraceLevel(level)
}

func (s *Stack) String() string {
	names := make([]string, len(s.faces))
	for i, f := range s.faces {
		names[i] = f.Name()
	}
	return fmt.Sprintf("[%s]", strings.Join(names, ", "))
}

func printable(cp rune) string {
	if cp > 32 && cp != 127 {
		return fmt.Sprintf("%c", cp)
	}
	return fmt.Sprintf("U+%04X", cp)
}
