/*
Package parameters holds the parameters of a font conversion.

Parameters may be set directly or read from a configuration. Configuration
keys are

   font-name     name of the font, prefix of identifiers in the output
   font-size     size in points
   font-stack    comma-separated list of font files or names, highest priority first
   compress      "true" to compress glyph bitmaps
   intervals     code point ranges, e.g. "32-126,160-255"
   output-dir    directory to write the output file to
   format        output format, "py" or "bin"
   dpi           device resolution

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/npillmayer/epdfont/core"
	"github.com/npillmayer/schuko"
)

// Configuration keys
const (
	KeyName      = "font-name"
	KeySize      = "font-size"
	KeyStack     = "font-stack"
	KeyCompress  = "compress"
	KeyIntervals = "intervals"
	KeyOutputDir = "output-dir"
	KeyFormat    = "format"
	KeyDPI       = "dpi"
)

// Defaults
const (
	DefaultIntervals = "32-126,160-255" // printable ASCII and Latin-1 supplement
	DefaultDPI       = 150.0
	DefaultFormat    = "py"
)

// Parameters are the inputs of a conversion. Name, Size, Stack and Compress
// are mandatory; the others fall back to defaults when left empty.
type Parameters struct {
	Name      string
	Size      int
	Stack     []string
	Compress  bool
	Intervals string
	OutputDir string
	Format    string
	DPI       float64
}

// New creates parameters with defaults for the optional fields.
func New(name string, size int, stack []string, compress bool) Parameters {
	return Parameters{
		Name:      name,
		Size:      size,
		Stack:     stack,
		Compress:  compress,
		Intervals: DefaultIntervals,
		OutputDir: ".",
		Format:    DefaultFormat,
		DPI:       DefaultDPI,
	}
}

// WithDefaults returns a copy of p with empty optional fields set to defaults.
func (p Parameters) WithDefaults() Parameters {
	if p.Intervals == "" {
		p.Intervals = DefaultIntervals
	}
	if p.OutputDir == "" {
		p.OutputDir = "."
	}
	if p.Format == "" {
		p.Format = DefaultFormat
	}
	if p.DPI == 0 {
		p.DPI = DefaultDPI
	}
	return p
}

// Validate checks the parameters. Errors have code core.EINVALID.
func (p Parameters) Validate() error {
	if !isIdentifier(p.Name) {
		return core.Error(core.EINVALID, "font name must be an identifier, is %q", p.Name)
	}
	if p.Size <= 0 {
		return core.Error(core.EINVALID, "font size must be a positive number of points, is %d", p.Size)
	}
	if len(p.Stack) == 0 {
		return core.Error(core.EINVALID, "font stack must contain at least one font")
	}
	for i, entry := range p.Stack {
		if strings.TrimSpace(entry) == "" {
			return core.Error(core.EINVALID, "font #%d of font stack is empty", i)
		}
	}
	if p.DPI < 0 {
		return core.Error(core.EINVALID, "resolution must be positive, is %g", p.DPI)
	}
	return nil
}

// FromConfig reads parameters from a configuration. Missing optional keys
// are set to defaults. The result is not yet validated.
func FromConfig(conf schuko.Configuration) (Parameters, error) {
	p := Parameters{
		Name:      strings.TrimSpace(conf.GetString(KeyName)),
		Intervals: conf.GetString(KeyIntervals),
		OutputDir: conf.GetString(KeyOutputDir),
		Format:    conf.GetString(KeyFormat),
	}
	var err error
	if s := conf.GetString(KeySize); s != "" {
		if p.Size, err = strconv.Atoi(strings.TrimSpace(s)); err != nil {
			return p, core.WrapError(err, core.EINVALID, "font size is not a number: %q", s)
		}
	}
	for _, entry := range strings.Split(conf.GetString(KeyStack), ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			p.Stack = append(p.Stack, entry)
		}
	}
	if s := conf.GetString(KeyCompress); s != "" {
		if p.Compress, err = strconv.ParseBool(strings.TrimSpace(s)); err != nil {
			return p, core.WrapError(err, core.EINVALID, "compress is not a boolean: %q", s)
		}
	}
	if s := conf.GetString(KeyDPI); s != "" {
		if p.DPI, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return p, core.WrapError(err, core.EINVALID, "dpi is not a number: %q", s)
		}
	}
	return p.WithDefaults(), nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
