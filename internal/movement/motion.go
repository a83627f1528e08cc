package movement

import (
	"github.com/xonecas/amble/internal/buffer"
)

type tokenSpan struct {
	start, end int
	whitespace bool
}

func spans(line string) []tokenSpan {
	var out []tokenSpan
	offset := 0
	for _, tok := range Lex(line) {
		n := len(buffer.Graphemes(tok.Text))
		out = append(out, tokenSpan{start: offset, end: offset + n, whitespace: tok.Whitespace})
		offset += n
	}
	return out
}

// NextTokenStart finds the start of the first non-whitespace token after p,
// crossing lines when needed.
func NextTokenStart(b *buffer.Buffer, p buffer.Position) (buffer.Position, bool) {
	for line := p.Line; line < b.LineCount(); line++ {
		text, _ := b.Line(line)
		for _, s := range spans(text) {
			if s.whitespace {
				continue
			}
			if line > p.Line || s.start > p.Offset {
				return buffer.Position{Line: line, Offset: s.start}, true
			}
		}
	}
	return p, false
}

// PreviousTokenStart finds the start of the last non-whitespace token before
// p, crossing lines when needed.
func PreviousTokenStart(b *buffer.Buffer, p buffer.Position) (buffer.Position, bool) {
	for line := p.Line; line >= 0; line-- {
		text, _ := b.Line(line)
		ss := spans(text)
		for i := len(ss) - 1; i >= 0; i-- {
			s := ss[i]
			if s.whitespace {
				continue
			}
			if line < p.Line || s.start < p.Offset {
				return buffer.Position{Line: line, Offset: s.start}, true
			}
		}
	}
	return p, false
}

// NextTokenEnd finds the position just past the end of the token at or after
// p on the same line.
func NextTokenEnd(b *buffer.Buffer, p buffer.Position) (buffer.Position, bool) {
	text, ok := b.Line(p.Line)
	if !ok {
		return p, false
	}
	for _, s := range spans(text) {
		if !s.whitespace && s.end > p.Offset {
			return buffer.Position{Line: p.Line, Offset: s.end}, true
		}
	}
	return p, false
}

// TokenAt returns the range of the token under p, if any.
func TokenAt(b *buffer.Buffer, p buffer.Position) (buffer.Range, bool) {
	text, ok := b.Line(p.Line)
	if !ok {
		return buffer.Range{}, false
	}
	for _, s := range spans(text) {
		if p.Offset >= s.start && p.Offset < s.end {
			return buffer.NewRange(
				buffer.Position{Line: p.Line, Offset: s.start},
				buffer.Position{Line: p.Line, Offset: s.end},
			), true
		}
	}
	return buffer.Range{}, false
}

// FirstWord returns the offset of the first non-whitespace grapheme of line,
// or the line length when it is blank.
func FirstWord(line string) int {
	offset := 0
	for _, g := range buffer.Graphemes(line) {
		if g != " " && g != "\t" {
			return offset
		}
		offset++
	}
	return offset
}
