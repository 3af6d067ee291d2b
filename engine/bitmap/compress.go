package bitmap

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/npillmayer/epdfont/core"
)

// Compressor transforms the packed bytes of a single glyph. Every glyph is
// compressed on its own, so the renderer can decode any glyph without
// touching its neighbours.
type Compressor interface {
	Compress(packed []byte) ([]byte, error)
	Compressed() bool // does Compress change the data?
}

// Identity passes packed bytes through unchanged.
type Identity struct{}

// Compress returns packed unchanged.
func (Identity) Compress(packed []byte) ([]byte, error) {
	return packed, nil
}

// Compressed is false for Identity.
func (Identity) Compressed() bool {
	return false
}

// Zlib compresses each glyph into a complete zlib stream.
// The zero value uses zlib.DefaultCompression.
type Zlib struct {
	Level int
}

// Compress deflates packed into a fresh zlib stream.
func (z Zlib) Compress(packed []byte) ([]byte, error) {
	level := z.Level
	if level == 0 {
		level = zlib.DefaultCompression
	}
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid compression level %d", z.Level)
	}
	if _, err = w.Write(packed); err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "compressing glyph data")
	}
	if err = w.Close(); err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "compressing glyph data")
	}
	return buf.Bytes(), nil
}

// Compressed is true for Zlib.
func (Zlib) Compressed() bool {
	return true
}

// NewCompressor returns Zlib if compress is set, Identity otherwise.
func NewCompressor(compress bool) Compressor {
	if compress {
		return Zlib{}
	}
	return Identity{}
}

// Decompress inflates the zlib stream of a single glyph.
func Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "glyph data is not a zlib stream")
	}
	defer r.Close()
	packed, err := io.ReadAll(r)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "corrupt glyph data")
	}
	return packed, nil
}
