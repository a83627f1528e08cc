package view

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/xonecas/amble/internal/buffer"
)

// Cell is one screen position. A wide grapheme occupies its cell and marks the
// following one as a continuation with empty Content.
type Cell struct {
	Content string
	Style   Style
	Colors  Colors
}

var emptyCell = Cell{Content: " ", Colors: Default}

// TerminalBuffer is an off-screen grid of cells drawn before a frame is sent
// to the terminal.
type TerminalBuffer struct {
	width, height int
	cells         []Cell
}

// NewTerminalBuffer returns a blank grid of the given size.
func NewTerminalBuffer(width, height int) *TerminalBuffer {
	tb := &TerminalBuffer{width: width, height: height, cells: make([]Cell, width*height)}
	tb.Clear()
	return tb
}

func (tb *TerminalBuffer) Width() int  { return tb.width }
func (tb *TerminalBuffer) Height() int { return tb.height }

// Clear blanks every cell.
func (tb *TerminalBuffer) Clear() {
	for i := range tb.cells {
		tb.cells[i] = emptyCell
	}
}

// Set writes a cell; positions outside the grid are ignored.
func (tb *TerminalBuffer) Set(pos buffer.Position, c Cell) bool {
	if pos.Line < 0 || pos.Line >= tb.height || pos.Offset < 0 || pos.Offset >= tb.width {
		return false
	}
	tb.cells[pos.Line*tb.width+pos.Offset] = c
	return true
}

// Get returns the cell at pos, or false outside the grid.
func (tb *TerminalBuffer) Get(pos buffer.Position) (Cell, bool) {
	if pos.Line < 0 || pos.Line >= tb.height || pos.Offset < 0 || pos.Offset >= tb.width {
		return Cell{}, false
	}
	return tb.cells[pos.Line*tb.width+pos.Offset], true
}

// Print writes content one grapheme per cell starting at pos and returns the
// number of columns used.
func (tb *TerminalBuffer) Print(pos buffer.Position, style Style, colors Colors, content string) int {
	col := pos.Offset
	for _, g := range buffer.Graphemes(content) {
		w := max(runewidth.StringWidth(g), 1)
		if col+w > tb.width {
			break
		}
		tb.Set(buffer.Position{Line: pos.Line, Offset: col}, Cell{Content: g, Style: style, Colors: colors})
		for i := 1; i < w; i++ {
			tb.Set(buffer.Position{Line: pos.Line, Offset: col + i}, Cell{Style: style, Colors: colors})
		}
		col += w
	}
	return col - pos.Offset
}

// String renders the grid as plain text, one row per line with trailing
// blanks removed.
func (tb *TerminalBuffer) String() string {
	var sb strings.Builder
	for row := 0; row < tb.height; row++ {
		var line strings.Builder
		for _, c := range tb.cells[row*tb.width : (row+1)*tb.width] {
			line.WriteString(c.Content)
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
