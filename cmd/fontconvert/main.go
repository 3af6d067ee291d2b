/*
Command fontconvert converts outline fonts to 4-bit bitmap fonts for the
e-paper framebuffer renderer.

Usage:

    fontconvert [flags] name size font [font …]

The fonts form a font stack: code points missing from the first font are
taken from the second one, and so on. Fonts are given as file paths, as
names of packaged Go fonts (e.g. "goregular"), or as names of fonts
installed on the system.

Flags may be given before, between or after the positional arguments:

    -compress          compress glyph bitmaps with zlib
    -intervals ranges  code point ranges, default "32-126,160-255"
    -format py|bin     output format, default "py"
    -o dir             output directory, default "."
    -trace level       trace level [Debug|Info|Error], default "Error"

The output file is named after the font, e.g. "FiraSans16pt.py".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/epdfont/core/parameters"
	"github.com/npillmayer/epdfont/engine/convert"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'epdfont.convert'
func tracer() tracing.Trace {
	return tracing.Select("epdfont.convert")
}

const usage = "usage: fontconvert [-compress] [-intervals ranges] [-format py|bin] [-o dir] name size font [font …]"

func main() {
	initDisplay()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	path, err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		core.UserError(err)
		os.Exit(exitCode(err))
	}
	pterm.Success.Printfln("wrote %s", path)
}

// run parses the command line, configures tracing and runs the conversion.
func run(ctx context.Context, args []string) (string, error) {
	fs := flag.NewFlagSet("fontconvert", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	compress := fs.Bool("compress", false, "Compress glyph bitmaps")
	intervals := fs.String("intervals", parameters.DefaultIntervals, "Code point ranges to convert")
	format := fs.String("format", parameters.DefaultFormat, "Output format [py|bin]")
	outdir := fs.String("o", ".", "Output directory")
	tlevel := fs.String("trace", "Error", "Trace level [Debug|Info|Error]")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return "", core.WrapError(err, core.EINVALID, usage)
	}
	if len(positional) < 3 {
		return "", core.Error(core.EINVALID, usage)
	}
	if err := configureTracing(*tlevel); err != nil {
		return "", err
	}
	conf := testconfig.Conf{
		parameters.KeyName:      positional[0],
		parameters.KeySize:      positional[1],
		parameters.KeyStack:     strings.Join(positional[2:], ","),
		parameters.KeyCompress:  fmt.Sprintf("%t", *compress),
		parameters.KeyIntervals: *intervals,
		parameters.KeyFormat:    *format,
		parameters.KeyOutputDir: *outdir,
	}
	p, err := parameters.FromConfig(conf)
	if err != nil {
		return "", err
	}
	// font files may contain commas
	p.Stack = positional[2:]
	tracer().Infof("converting %s %dpt from %d font(s)", p.Name, p.Size, len(p.Stack))
	return convert.Run(ctx, p)
}

// parseInterspersed parses flags which may appear anywhere on the command
// line and returns the positional arguments.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func configureTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":         "go",
		"trace.epdfont.convert":   level,
		"trace.epdfont.fonts":     level,
		"trace.epdfont.layout":    level,
		"trace.epdfont.resources": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return core.WrapError(err, core.EINTERNAL, "error configuring tracing")
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

func exitCode(err error) int {
	if code := core.Code(err); code > 0 && code < 256 {
		return code
	}
	return 1
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
