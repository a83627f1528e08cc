// Package buffer provides the text storage the editor operates on: line-based
// buffers with a cursor, grouped undo history and a workspace that owns every
// open buffer under a stable identifier.
package buffer

import "fmt"

// Position is a zero-indexed location in a buffer. Offsets count grapheme
// clusters, not bytes or runes.
type Position struct {
	Line   int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Offset+1)
}

// Less reports whether p comes before o.
func (p Position) Less(o Position) bool {
	return p.Line < o.Line || (p.Line == o.Line && p.Offset < o.Offset)
}

// Add advances p by d, the way inserting text spanning d would.
func (p Position) Add(d Distance) Position {
	if d.Lines > 0 {
		return Position{Line: p.Line + d.Lines, Offset: d.Offset}
	}
	return Position{Line: p.Line, Offset: p.Offset + d.Offset}
}

// Distance measures the extent of a piece of text.
type Distance struct {
	Lines  int
	Offset int
}

// DistanceOf returns the distance spanned by s.
func DistanceOf(s string) Distance {
	var d Distance
	last := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			d.Lines++
			last = i + 1
		}
	}
	d.Offset = graphemeCount(s[last:])
	return d
}

// Range is a half-open span [Start, End) with Start never after End.
type Range struct {
	start Position
	end   Position
}

// NewRange builds a range from two positions in any order.
func NewRange(a, b Position) Range {
	if b.Less(a) {
		a, b = b, a
	}
	return Range{start: a, end: b}
}

func (r Range) Start() Position { return r.start }
func (r Range) End() Position   { return r.end }

// Includes reports whether p lies within the range.
func (r Range) Includes(p Position) bool {
	return !p.Less(r.start) && p.Less(r.end)
}

// Empty reports whether the range spans nothing.
func (r Range) Empty() bool { return r.start == r.end }

// LineRange is an inclusive span of whole lines.
type LineRange struct {
	Start int
	End   int
}

// NewLineRange orders the two lines.
func NewLineRange(a, b int) LineRange {
	if b < a {
		a, b = b, a
	}
	return LineRange{Start: a, End: b}
}

// ToRange converts the line range to a range that starts at the first line and
// ends at the start of the line after the last one.
func (lr LineRange) ToRange() Range {
	return NewRange(Position{Line: lr.Start}, Position{Line: lr.End + 1})
}

// Includes reports whether line lies within the range.
func (lr LineRange) Includes(line int) bool {
	return line >= lr.Start && line <= lr.End
}
