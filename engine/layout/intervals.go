package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/epdfont/core"
)

// Interval is an inclusive range of code points.
type Interval struct {
	First, Last uint32
}

// Len is the number of code points in the interval.
func (iv Interval) Len() int {
	return int(iv.Last-iv.First) + 1
}

func (iv Interval) String() string {
	return fmt.Sprintf("U+%04X–U+%04X", iv.First, iv.Last)
}

// CodePointInterval is a record of the interval table. Offset is the index of
// the glyph for First in the glyph table, so that the glyph of a code point
// cp within the interval is at Offset + (cp - First).
//
// Field order is part of the resource format.
type CodePointInterval struct {
	First  uint32
	Last   uint32
	Offset uint32
}

// Contains is a predicate: is cp within the interval?
func (ci CodePointInterval) Contains(cp rune) bool {
	return uint32(cp) >= ci.First && uint32(cp) <= ci.Last
}

// IntervalSet is an ordered set of code point ranges to convert.
type IntervalSet []Interval

// DefaultIntervals covers printable ASCII and the Latin-1 supplement.
var DefaultIntervals = IntervalSet{
	{32, 126},
	{160, 255},
}

// Validate checks that the set is non-empty and that its intervals are
// well-formed, strictly ascending and do not overlap. Errors match
// core.ErrInvalidIntervals.
func (set IntervalSet) Validate() error {
	if len(set) == 0 {
		return core.InvalidIntervals("no code point intervals configured")
	}
	for i, iv := range set {
		if iv.First > iv.Last {
			return core.InvalidIntervals("interval #%d %s is reversed", i, iv)
		}
		if iv.Last > 0x10ffff {
			return core.InvalidIntervals("interval #%d %s exceeds the Unicode range", i, iv)
		}
		if i > 0 && set[i-1].Last >= iv.First {
			return core.InvalidIntervals("interval #%d %s overlaps or precedes interval %s",
				i, iv, set[i-1])
		}
	}
	return nil
}

// GlyphCount is the number of code points in all intervals.
func (set IntervalSet) GlyphCount() int {
	n := 0
	for _, iv := range set {
		n += iv.Len()
	}
	return n
}

// Table builds the interval table, assigning every interval the cumulative
// count of glyphs of all earlier intervals as its offset.
func (set IntervalSet) Table() []CodePointInterval {
	table := make([]CodePointInterval, len(set))
	var offset uint32
	for i, iv := range set {
		table[i] = CodePointInterval{First: iv.First, Last: iv.Last, Offset: offset}
		offset += uint32(iv.Len())
	}
	return table
}

// CodePoints calls f for every code point of the set, in glyph table order.
// Iteration stops at the first error, which is returned.
func (set IntervalSet) CodePoints(f func(cp rune) error) error {
	for _, iv := range set {
		for cp := iv.First; cp <= iv.Last; cp++ {
			if err := f(rune(cp)); err != nil {
				return err
			}
			if cp == iv.Last { // guard against wrap-around at MaxUint32
				break
			}
		}
	}
	return nil
}

func (set IntervalSet) String() string {
	s := make([]string, len(set))
	for i, iv := range set {
		s[i] = fmt.Sprintf("%d-%d", iv.First, iv.Last)
	}
	return strings.Join(s, ",")
}

// ParseIntervals reads an interval set from a configuration string of
// comma-separated ranges, e.g. "32-126,160-255,0x2500-0x259F". A single
// number denotes a range of one code point. The result is validated.
func ParseIntervals(s string) (IntervalSet, error) {
	var set IntervalSet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		first, last := part, part
		if dash := strings.Index(part, "-"); dash > 0 {
			first, last = part[:dash], part[dash+1:]
		}
		f, err := strconv.ParseUint(strings.TrimSpace(first), 0, 32)
		if err != nil {
			return nil, core.InvalidIntervals("cannot read interval %q", part)
		}
		l, err := strconv.ParseUint(strings.TrimSpace(last), 0, 32)
		if err != nil {
			return nil, core.InvalidIntervals("cannot read interval %q", part)
		}
		set = append(set, Interval{First: uint32(f), Last: uint32(l)})
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}
