package view

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/amble/internal/buffer"
)

// StatusLineEntry is one segment of the status line.
type StatusLineEntry struct {
	Content string
	Style   Style
	Colors  Colors
}

// Presenter composes one frame. Everything is drawn into an off-screen grid
// and sent to the terminal by Present.
type Presenter struct {
	view   *View
	cells  *TerminalBuffer
	cursor *buffer.Position
}

func (p *Presenter) Width() int  { return p.cells.Width() }
func (p *Presenter) Height() int { return p.cells.Height() }

// Cells exposes the frame being composed.
func (p *Presenter) Cells() *TerminalBuffer { return p.cells }

// PrintBuffer draws the visible region of b and places the cursor on it.
func (p *Presenter) PrintBuffer(b *buffer.Buffer, highlights []buffer.Range, mapper LexemeMapper) error {
	state, err := p.view.stateFor(b)
	if err != nil {
		return err
	}
	r := NewBufferRenderer(b, p.cells, p.view.theme, state.cache, state.region.LineOffset(), p.view.BufferHeight(), p.view.opts)
	r.Highlight(highlights)
	if mapper != nil {
		r.MapLexemes(mapper)
	}
	cursor, err := r.Render()
	if err != nil {
		return err
	}
	p.cursor = cursor
	return nil
}

// PrintStatusLine draws entries on the bottom row. All entries but the last
// are packed from the left; the last is right-aligned.
func (p *Presenter) PrintStatusLine(entries []StatusLineEntry) {
	row := p.cells.Height() - 1
	width := p.cells.Width()
	for col := 0; col < width; col++ {
		p.cells.Set(buffer.Position{Line: row, Offset: col}, Cell{Content: " ", Colors: Focused})
	}
	if len(entries) == 0 {
		return
	}

	col := 0
	for _, e := range entries[:len(entries)-1] {
		if e.Content == "" {
			continue
		}
		text := " " + sanitize(e.Content) + " "
		text = ansi.Truncate(text, max(width-col, 0), "…")
		col += p.cells.Print(buffer.Position{Line: row, Offset: col}, e.Style, e.Colors, text)
	}

	last := entries[len(entries)-1]
	if last.Content == "" {
		return
	}
	text := " " + sanitize(last.Content) + " "
	w := ansi.StringWidth(text)
	if start := width - w; start >= col {
		p.cells.Print(buffer.Position{Line: row, Offset: start}, last.Style, last.Colors, text)
	}
}

// sanitize strips escape sequences and newlines from status content.
func sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.NewReplacer("\n", " ", "\r", "", "\t", " ").Replace(s)
}

// Print draws text at a screen position.
func (p *Presenter) Print(pos buffer.Position, style Style, colors Colors, text string) int {
	return p.cells.Print(pos, style, colors, text)
}

// SetCursor overrides the cursor placement; nil hides it.
func (p *Presenter) SetCursor(pos *buffer.Position) {
	p.cursor = pos
}

// Present flushes the frame to the terminal.
func (p *Presenter) Present() {
	t := p.view.terminal
	t.Clear()
	for row := 0; row < p.cells.Height(); row++ {
		for col := 0; col < p.cells.Width(); col++ {
			pos := buffer.Position{Line: row, Offset: col}
			c, _ := p.cells.Get(pos)
			if c.Content == "" {
				continue
			}
			fg, bg := p.view.theme.Map(c.Colors)
			t.Print(pos, c.Style, fg, bg, c.Content)
		}
	}
	t.SetCursor(p.cursor)
	t.Present()
}
