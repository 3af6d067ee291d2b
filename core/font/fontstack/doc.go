/*
Package fontstack resolves code points against an ordered stack of faces.

The first face of a stack has the highest priority. A code point is served
by the first face which maps it to a glyph; falling through to a face of
lower priority is reported as a notice on the trace, but is not an error.
A code point which no face contains is fatal for a conversion.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontstack

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'epdfont.fonts'
func tracer() tracing.Trace {
	return tracing.Select("epdfont.fonts")
}
