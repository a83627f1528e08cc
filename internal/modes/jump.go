package modes

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/movement"
	"github.com/xonecas/amble/internal/view"
)

// Jump labels visible tokens with short tags; typing a tag moves the cursor to
// its token.
//
// In the first phase single-letter tags cover tokens on the lines from the
// cursor line down. Typing PhaseSwitchChar moves to the second phase, where
// two-letter tags cover every visible token longer than one character.
type Jump struct {
	Input      string
	FirstPhase bool
	CursorLine int
	// Selection is the select mode active when the jump started, restored
	// once the jump completes. Nil when there was none.
	Selection SelectionMode

	tags         map[string]buffer.Position
	tagGenerator TagGenerator
	singleChars  SingleCharacterTagGenerator
}

func (*Jump) Name() string { return "jump" }

// NewJump starts a first-phase jump from cursorLine, folding in the previous
// mode when it is a selection.
func NewJump(cursorLine int, previous Mode) *Jump {
	j := &Jump{
		FirstPhase: true,
		CursorLine: cursorLine,
		tags:       make(map[string]buffer.Position),
	}
	if sel, ok := previous.(SelectionMode); ok {
		j.Selection = sel
	}
	j.ResetDisplay()
	return j
}

// ResetDisplay forgets the tags of the previous frame. It runs before every
// render so tags are issued in screen order.
func (j *Jump) ResetDisplay() {
	clear(j.tags)
	j.tagGenerator.Reset()
	j.singleChars.Reset()
}

// PushSearchChar records a typed character. PhaseSwitchChar typed during the
// first phase switches phases instead of being recorded.
func (j *Jump) PushSearchChar(c rune) {
	if c == PhaseSwitchChar && j.FirstPhase {
		j.FirstPhase = false
		return
	}
	j.Input += string(c)
}

// MatchTag reports the position tagged with the current input. It returns
// false while the input is too short to resolve and for input that names no
// tag.
func (j *Jump) MatchTag() (buffer.Position, bool) {
	switch n := utf8.RuneCountInString(j.Input); {
	case n == 0:
		return buffer.Position{}, false
	case n == 1 && !j.FirstPhase:
		return buffer.Position{}, false
	}
	pos, ok := j.tags[j.Input]
	return pos, ok
}

// TagPosition returns the position a tag was drawn at during the last render.
func (j *Jump) TagPosition(tag string) (buffer.Position, bool) {
	pos, ok := j.tags[tag]
	return pos, ok
}

// Restore returns the mode to switch to once the jump completes.
func (j *Jump) Restore() Mode {
	if j.Selection != nil {
		return j.Selection
	}
	return Normal{}
}

// MapLexeme splits lexeme into movement tokens and replaces the leading
// characters of each eligible one with a fresh tag.
func (j *Jump) MapLexeme(lexeme string, pos buffer.Position) []view.MappedLexeme {
	var out []view.MappedLexeme
	offset := pos.Offset
	for _, tok := range movement.Lex(lexeme) {
		width := uniseg.GraphemeClusterCount(tok.Text)
		tokPos := buffer.Position{Line: pos.Line, Offset: offset}
		offset += width

		if tok.Whitespace {
			out = append(out, view.MappedLexeme{Kind: view.MappedBlank, Text: tok.Text})
			continue
		}

		tag, ok := j.nextTag(tokPos, width)
		if !ok {
			out = append(out, view.MappedLexeme{Kind: view.MappedBlank, Text: tok.Text})
			continue
		}
		j.tags[tag] = tokPos

		graphemes := buffer.Graphemes(tok.Text)
		tagLen := utf8.RuneCountInString(tag)
		out = append(out, view.MappedLexeme{Kind: view.MappedFocused, Text: tag})
		if tagLen < len(graphemes) {
			rest := strings.Join(graphemes[tagLen:], "")
			out = append(out, view.MappedLexeme{Kind: view.MappedBlank, Text: rest})
		}
	}
	return out
}

func (j *Jump) nextTag(pos buffer.Position, width int) (string, bool) {
	if j.FirstPhase {
		if pos.Line < j.CursorLine {
			return "", false
		}
		return j.singleChars.Next()
	}
	if width < 2 {
		return "", false
	}
	return j.tagGenerator.Next()
}
