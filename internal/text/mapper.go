package text

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Mapper converts byte offsets into a UTF-8 source buffer to (line, column)
// locations, where column counts Unicode scalar values from the start of
// the line (spec: "column counts characters (Unicode scalar values) from
// the line start").
//
// Line starts include the beginning of the buffer and every position
// immediately following a '\n'; a trailing '\n' produces a final empty
// line. src_loc is monotone in the offset, and src_loc(len) equals the
// location just past the last character.
//
// Grounded on internal/text.LineIndex's lineStarts + binary-search shape,
// generalized from byte columns to scalar-value columns — Felix positions
// never cross an LSP boundary, so the UTF-16 conversion half of the
// teacher's type is dropped (see DESIGN.md).
type Mapper struct {
	src        []byte
	lineStarts []Offset
}

// NewMapper builds a mapper over src.
func NewMapper(src []byte) *Mapper {
	starts := []Offset{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, Offset(i+1))
		}
	}
	return &Mapper{src: src, lineStarts: starts}
}

// Len returns the source length in bytes.
func (m *Mapper) Len() Offset {
	if m == nil {
		return 0
	}
	return Offset(len(m.src))
}

// LineCount returns the number of logical lines in the source.
func (m *Mapper) LineCount() int {
	if m == nil {
		return 0
	}
	return len(m.lineStarts)
}

// SrcLoc converts a byte offset to a Point. Offsets past the end of the
// buffer (including the sentinel u32::MAX mentioned in the data model) are
// canonicalized to the location just past the last character.
func (m *Mapper) SrcLoc(off Offset) Point {
	if m == nil {
		return Point{}
	}
	max := Offset(len(m.src))
	if off > max {
		off = max
	}

	line := m.lineForOffset(off)
	start := m.lineStarts[line]
	col, err := scalarColumn(m.src[start:off])
	if err != nil {
		col = int(off - start)
	}
	return Point{Line: line, Column: col}
}

// lineForOffset returns the largest line index i such that lineStarts[i] <= off.
func (m *Mapper) lineForOffset(off Offset) int {
	i, found := slices.BinarySearch(m.lineStarts, off)
	if found {
		return i
	}
	return i - 1
}

// scalarColumn counts the Unicode scalar values in b, erroring on malformed
// UTF-8 so callers can fall back to a byte count rather than panicking.
func scalarColumn(b []byte) (int, error) {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			return 0, fmt.Errorf("invalid UTF-8 sequence")
		}
		n++
		b = b[size:]
	}
	return n, nil
}
