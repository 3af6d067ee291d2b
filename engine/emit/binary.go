package emit

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/epdfont/engine/layout"
)

// Magic ends every binary resource.
var Magic = [4]byte{'G', 'F', 'X', '4'}

// trailer closes a binary resource. It sits at the end of the file, after
// the interval table, so readers find it at a fixed distance from the end.
type trailer struct {
	BitmapSize    uint32
	GlyphCount    uint32
	IntervalCount uint32
	Compressed    uint8
	BitDepth      uint8
	LineHeight    uint16
	Ascender      uint16
	Descender     int16
	FormatTag     uint8
	Reserved      [3]uint8
	Magic         [4]byte
}

// Sizes of the binary records.
var (
	glyphRecordSize    = binary.Size(layout.GlyphProps{})
	intervalRecordSize = binary.Size(layout.CodePointInterval{})
	trailerSize        = binary.Size(trailer{})
)

// Binary emits a resource as little-endian records: the bitmap blob, the
// glyph table, the interval table and a trailer with counts and font-wide
// scalars.
type Binary struct{}

// Extension is ".bin".
func (Binary) Extension() string {
	return ".bin"
}

// Emit writes r in binary form to w.
func (Binary) Emit(w io.Writer, r *layout.Resource) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(r.Bitmap); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, r.Glyphs); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, r.Intervals); err != nil {
		return err
	}
	t := trailer{
		BitmapSize:    uint32(len(r.Bitmap)),
		GlyphCount:    uint32(len(r.Glyphs)),
		IntervalCount: uint32(len(r.Intervals)),
		BitDepth:      r.BitDepth,
		LineHeight:    r.LineHeight,
		Ascender:      r.Ascender,
		Descender:     r.Descender,
		FormatTag:     layout.FormatTag,
		Magic:         Magic,
	}
	if r.Compressed {
		t.Compressed = 1
	}
	if err := binary.Write(bw, binary.LittleEndian, t); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadBinary decodes a resource written by Binary. Name and size are not
// part of the binary format and are left empty.
func ReadBinary(data []byte) (*layout.Resource, error) {
	if len(data) < trailerSize {
		return nil, core.Error(core.EINVALID, "binary resource too short: %d bytes", len(data))
	}
	var t trailer
	tail := bytes.NewReader(data[len(data)-trailerSize:])
	if err := binary.Read(tail, binary.LittleEndian, &t); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read resource trailer")
	}
	if t.Magic != Magic {
		return nil, core.Error(core.EINVALID, "not a binary font resource")
	}
	expected := int(t.BitmapSize) + int(t.GlyphCount)*glyphRecordSize +
		int(t.IntervalCount)*intervalRecordSize + trailerSize
	if expected != len(data) {
		return nil, core.Error(core.EINVALID, "binary resource has %d bytes, trailer announces %d",
			len(data), expected)
	}
	r := &layout.Resource{
		Bitmap:    make([]byte, t.BitmapSize),
		Glyphs:    make([]layout.GlyphProps, t.GlyphCount),
		Intervals: make([]layout.CodePointInterval, t.IntervalCount),
		Metadata: layout.Metadata{
			Compressed: t.Compressed != 0,
			LineHeight: t.LineHeight,
			Ascender:   t.Ascender,
			Descender:  t.Descender,
			BitDepth:   t.BitDepth,
		},
	}
	body := bytes.NewReader(data[:len(data)-trailerSize])
	if _, err := io.ReadFull(body, r.Bitmap); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read bitmap blob")
	}
	if err := binary.Read(body, binary.LittleEndian, r.Glyphs); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read glyph table")
	}
	if err := binary.Read(body, binary.LittleEndian, r.Intervals); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot read interval table")
	}
	return r, nil
}
