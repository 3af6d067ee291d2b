/*
Package convert runs the conversion of a font stack to a bitmap font
resource.

A conversion resolves every code point of the configured intervals through
the font stack, rasterizes it, packs it to 4 bits per pixel, optionally
compresses it and appends it to the resource's bitmap blob. Font-wide
metrics are taken from the face serving the vertical bar. Any failure
aborts the conversion; there are no placeholder glyphs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package convert

import (
	"context"
	"os"
	"path/filepath"

	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/epdfont/core/font/fontstack"
	"github.com/npillmayer/epdfont/core/locate/resources"
	"github.com/npillmayer/epdfont/core/parameters"
	"github.com/npillmayer/epdfont/engine/bitmap"
	"github.com/npillmayer/epdfont/engine/emit"
	"github.com/npillmayer/epdfont/engine/layout"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'epdfont.convert'.
func tracer() tracing.Trace {
	return tracing.Select("epdfont.convert")
}

// Options control a conversion of an already loaded font stack.
type Options struct {
	Name      string
	Size      int
	Compress  bool
	Intervals layout.IntervalSet // defaults to layout.DefaultIntervals if nil
}

// Convert builds a resource from a font stack. Glyphs are produced in the
// order of opts.Intervals. Cancellation of ctx is checked between glyphs.
func Convert(ctx context.Context, stack *fontstack.Stack, opts Options) (*layout.Resource, error) {
	set := opts.Intervals
	if set == nil {
		set = layout.DefaultIntervals
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	compressor := bitmap.NewCompressor(opts.Compress)
	var packedTotal int
	acc := layout.Accumulator{}
	err := set.CodePoints(func(cp rune) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		g, _, err := stack.Rasterize(cp)
		if err != nil {
			return err
		}
		packed := bitmap.Pack(g.Pix, g.Width, g.Height)
		packedTotal += len(packed)
		data, err := compressor.Compress(packed)
		if err != nil {
			return err
		}
		acc, err = acc.Add(g, data)
		return err
	})
	if err != nil {
		return nil, err
	}
	m, err := stack.Metrics()
	if err != nil {
		return nil, err
	}
	meta, err := layout.NewMetadata(m, compressor.Compressed())
	if err != nil {
		return nil, err
	}
	r, err := acc.Resource(opts.Name, opts.Size, set, meta)
	if err != nil {
		return nil, err
	}
	if err = r.Verify(); err != nil {
		return nil, err
	}
	tracer().Infof("converted %d glyphs in %d intervals: %d bytes packed, %d bytes in blob",
		len(r.Glyphs), len(r.Intervals), packedTotal, len(r.Bitmap))
	return r, nil
}

// Run performs a complete conversion: it loads the font stack of p, converts
// it and writes the resource to p.OutputDir. It returns the path of the
// output file.
//
// The output file is written under a temporary name first and renamed only
// after the resource has been completely written, so a failed run leaves no
// output behind.
func Run(ctx context.Context, p parameters.Parameters) (string, error) {
	p = p.WithDefaults()
	if err := p.Validate(); err != nil {
		return "", err
	}
	set, err := layout.ParseIntervals(p.Intervals)
	if err != nil {
		return "", err
	}
	emitter, err := emit.ForFormat(p.Format)
	if err != nil {
		return "", err
	}
	faces, err := resources.LoadFaces(p.Stack, p.Size, p.DPI)
	if err != nil {
		return "", err
	}
	defer resources.CloseFaces(faces)
	sfaces := make([]fontstack.Face, len(faces))
	for i, f := range faces {
		sfaces[i] = f
	}
	stack, err := fontstack.New(sfaces...)
	if err != nil {
		return "", err
	}
	stack.LogFaceList()
	r, err := Convert(ctx, stack, Options{
		Name:      p.Name,
		Size:      p.Size,
		Compress:  p.Compress,
		Intervals: set,
	})
	if err != nil {
		return "", err
	}
	path := filepath.Join(p.OutputDir, emit.Filename(r, emitter))
	if err = writeFile(path, r, emitter); err != nil {
		return "", err
	}
	tracer().Infof("wrote %s", path)
	return path, nil
}

func writeFile(path string, r *layout.Resource, emitter emit.Emitter) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create output file in %s", filepath.Dir(path))
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = emitter.Emit(tmp, r); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write %s", path)
	}
	if err = tmp.Close(); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write %s", path)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write %s", path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot move output to %s", path)
	}
	return nil
}
