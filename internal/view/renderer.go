package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/mattn/go-runewidth"

	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/highlight"
)

// RenderOptions are the preference values the renderer honours.
type RenderOptions struct {
	TabWidth        int
	LineLengthGuide int
	LineWrapping    bool
}

// BufferRenderer draws the visible part of a buffer into a TerminalBuffer.
// Lexing resumes from the nearest cached checkpoint at or before the first
// visible line, and checkpoints are recorded for lines it lexes past.
type BufferRenderer struct {
	buf        *buffer.Buffer
	cells      *TerminalBuffer
	theme      *Theme
	cache      *RenderCache
	highlights []buffer.Range
	mapper     LexemeMapper
	opts       RenderOptions

	first, last int // buffer lines to draw
	height      int // screen rows available
	gutter      int

	bufferPos   buffer.Position
	screenPos   buffer.Position
	lineStarted int
	cursor      *buffer.Position
	clipped     bool // the rest of the current line is past the right edge
	done        bool
}

// NewBufferRenderer prepares to draw b into cells from line scrollOffset, using
// at most height rows.
func NewBufferRenderer(b *buffer.Buffer, cells *TerminalBuffer, theme *Theme, cache *RenderCache, scrollOffset, height int, opts RenderOptions) *BufferRenderer {
	if opts.TabWidth < 1 {
		opts.TabWidth = 1
	}
	return &BufferRenderer{
		buf:         b,
		cells:       cells,
		theme:       theme,
		cache:       cache,
		opts:        opts,
		first:       scrollOffset,
		height:      min(height, cells.Height()),
		lineStarted: -1,
	}
}

// Highlight draws ranges as selections or search matches.
func (r *BufferRenderer) Highlight(ranges []buffer.Range) *BufferRenderer {
	r.highlights = ranges
	return r
}

// MapLexemes routes every lexeme through m before drawing.
func (r *BufferRenderer) MapLexemes(m LexemeMapper) *BufferRenderer {
	r.mapper = m
	return r
}

// Render draws the buffer and returns the screen position of its cursor, or
// nil if the cursor is not on screen.
func (r *BufferRenderer) Render() (*buffer.Position, error) {
	lineCount := r.buf.LineCount()
	if r.first >= lineCount || r.height <= 0 {
		return nil, nil
	}
	r.gutter = len(strconv.Itoa(lineCount)) + 2
	r.last = min(r.first+r.height, lineCount) - 1

	resume, state := 0, highlight.RootState
	if line, cached, ok := r.cache.Nearest(r.first); ok && line < lineCount {
		resume, state = line, cached.State
	}
	text, _ := r.buf.Read(buffer.NewRange(buffer.Position{Line: resume}, buffer.Position{Line: r.last + 1}))
	if err := r.checkpoint(resume, state, text); err != nil {
		return nil, err
	}

	it, err := r.buf.Lexer().Tokenise(&chroma.TokeniseOptions{State: state, EnsureLF: true}, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise buffer: %w", err)
	}

	r.bufferPos = buffer.Position{Line: resume}
	for tok := it(); tok != chroma.EOF && !r.done; tok = it() {
		r.token(tok)
	}
	if !r.done && r.bufferPos.Line >= r.first {
		r.startLine()
		r.finishLine()
	}
	return r.cursor, nil
}

func (r *BufferRenderer) token(tok chroma.Token) {
	style, colors := r.theme.Token(tok.Type)
	for i, part := range strings.Split(tok.Value, "\n") {
		if i > 0 {
			r.newline()
			if r.done {
				return
			}
		}
		if part != "" {
			r.segment(part, style, colors)
		}
	}
}

// checkpoint caches the lexer state of every checkpoint line in text that is
// not cached yet. Lines starting inside a construct that needs more than one
// lexer state are left out, so resuming always matches a full relex.
func (r *BufferRenderer) checkpoint(resume int, state, text string) error {
	missing := false
	for line := (resume/RenderCacheFrequency + 1) * RenderCacheFrequency; line <= r.last; line += RenderCacheFrequency {
		if _, ok := r.cache.Get(line); !ok {
			missing = true
			break
		}
	}
	if !missing {
		return nil
	}

	states, err := highlight.LineStates(r.buf.Grammar(), state, text)
	if err != nil {
		return fmt.Errorf("track lexer state: %w", err)
	}
	for i, s := range states {
		line := resume + i
		if line == 0 || line%RenderCacheFrequency != 0 {
			continue
		}
		if _, ok := r.cache.Get(line); !ok {
			r.cache.Set(line, RenderState{State: s})
		}
	}
	return nil
}

func (r *BufferRenderer) segment(text string, style Style, colors Colors) {
	graphemes := buffer.Graphemes(text)
	if r.bufferPos.Line < r.first {
		r.bufferPos.Offset += len(graphemes)
		return
	}
	r.startLine()
	if r.mapper == nil {
		r.printGraphemes(graphemes, style, colors)
		return
	}

	// The mapper only sees graphemes that will be drawn.
	n := r.visible(graphemes)
	if n > 0 {
		for _, m := range r.mapper.MapLexeme(strings.Join(graphemes[:n], ""), r.bufferPos) {
			switch m.Kind {
			case MappedFocused:
				r.printGraphemes(buffer.Graphemes(m.Text), StyleBold, Focused)
			default:
				r.printGraphemes(buffer.Graphemes(m.Text), StyleDefault, Blank)
			}
		}
	}
	r.printGraphemes(graphemes[n:], StyleDefault, Blank)
}

// visible counts the leading graphemes that fit in the rest of the screen.
func (r *BufferRenderer) visible(graphemes []string) int {
	if r.done || r.clipped {
		return 0
	}
	row, col := r.screenPos.Line, r.screenPos.Offset
	for i, g := range graphemes {
		w := r.width(g, col)
		if col+w > r.cells.Width() {
			if !r.opts.LineWrapping {
				return i
			}
			row, col = row+1, r.gutter
			if row >= r.height {
				return i
			}
		}
		col += w
	}
	return len(graphemes)
}

func (r *BufferRenderer) width(g string, col int) int {
	if g == "\t" {
		return r.opts.TabWidth - (col-r.gutter)%r.opts.TabWidth
	}
	return max(runewidth.StringWidth(g), 1)
}

func (r *BufferRenderer) printGraphemes(graphemes []string, style Style, colors Colors) {
	for _, g := range graphemes {
		if r.done {
			return
		}
		st, co := r.charStyle(style, colors)
		w := r.width(g, r.screenPos.Offset)
		if g == "\t" {
			g = strings.Repeat(" ", w)
		}
		r.put(g, w, st, co)
		r.bufferPos.Offset++
	}
}

// put draws content of the given width at the current screen position,
// wrapping first if it would not fit. Without wrapping the rest of the line is
// clipped.
func (r *BufferRenderer) put(content string, width int, style Style, colors Colors) {
	if r.clipped {
		return
	}
	if r.screenPos.Offset+width > r.cells.Width() {
		if !r.opts.LineWrapping {
			r.clipped = true
			return
		}
		r.wrap()
		if r.done {
			return
		}
	}
	if r.bufferPos == r.buf.Cursor.Position {
		r.setCursor()
	}
	r.cells.Print(r.screenPos, style, colors, content)
	r.screenPos.Offset += width
}

func (r *BufferRenderer) charStyle(style Style, colors Colors) (Style, Colors) {
	cursor := r.buf.Cursor.Position
	for _, h := range r.highlights {
		if h.Includes(r.bufferPos) {
			if h.Includes(cursor) {
				return StyleBold, SelectMode
			}
			return StyleInverted, Default
		}
	}
	if r.bufferPos.Line == cursor.Line {
		switch colors.Kind {
		case ColorsCustomForeground:
			return style, CustomFocusedForeground(colors.Fg)
		case ColorsDefault:
			return style, Focused
		}
	}
	return style, colors
}

func (r *BufferRenderer) newline() {
	if r.bufferPos.Line >= r.first {
		r.startLine()
		r.finishLine()
	}
	if r.bufferPos.Line >= r.last {
		r.done = true
		return
	}
	r.bufferPos = buffer.Position{Line: r.bufferPos.Line + 1}
}

func (r *BufferRenderer) startLine() {
	line := r.bufferPos.Line
	if r.done || r.lineStarted == line {
		return
	}
	if r.lineStarted >= 0 {
		r.screenPos.Line++
	}
	if r.screenPos.Line >= r.height {
		r.done = true
		return
	}
	r.lineStarted = line
	r.screenPos.Offset = 0
	r.clipped = false

	colors := CustomForeground(r.theme.LineNumberColor())
	if line == r.buf.Cursor.Line {
		colors = Focused
	}
	number := fmt.Sprintf(" %*d ", r.gutter-2, line+1)
	r.cells.Print(r.screenPos, StyleDefault, colors, number)
	r.screenPos.Offset = r.gutter
}

func (r *BufferRenderer) finishLine() {
	if r.done {
		return
	}
	if r.bufferPos == r.buf.Cursor.Position {
		if r.screenPos.Offset >= r.cells.Width() && r.opts.LineWrapping {
			r.wrap()
			if r.done {
				return
			}
		}
		r.setCursor()
	}

	row := r.screenPos.Line
	if r.bufferPos.Line == r.buf.Cursor.Line {
		for col := r.screenPos.Offset; col < r.cells.Width(); col++ {
			r.cells.Set(buffer.Position{Line: row, Offset: col}, Cell{Content: " ", Colors: Focused})
		}
	}
	if guide := r.opts.LineLengthGuide; guide > 0 {
		col := r.gutter + guide
		if col >= r.screenPos.Offset && col < r.cells.Width() {
			r.cells.Set(buffer.Position{Line: row, Offset: col}, Cell{Content: " ", Colors: Focused})
		}
	}
}

func (r *BufferRenderer) wrap() {
	r.screenPos.Line++
	r.screenPos.Offset = r.gutter
	if r.screenPos.Line >= r.height {
		r.done = true
	}
}

func (r *BufferRenderer) setCursor() {
	pos := r.screenPos
	r.cursor = &pos
}
