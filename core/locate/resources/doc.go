/*
Package resources locates the font files named on a font stack.

An entry of a font stack is resolved in the following order:

   1. as a path to a TrueType/OpenType file,
   2. as the name of a packaged Go font ("goregular", "gomono", …),
   3. as the name of a system font, found by searching the platform's
      font directories.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'epdfont.resources'.
func tracer() tracing.Trace {
	return tracing.Select("epdfont.resources")
}
