// Package modes defines the editor's modal states. Exactly one mode is
// active at a time; switching replaces the value, and state that survives a
// switch (a selection folded into jump mode) is moved, never shared.
package modes

import (
	"path/filepath"

	"github.com/xonecas/amble/internal/buffer"
)

// Mode is the active interpretation context for input. Name selects the
// keymap section consulted for key presses.
type Mode interface {
	Name() string
}

// Normal is the default mode.
type Normal struct{}

func (Normal) Name() string { return "normal" }

// Insert types characters into the current buffer.
type Insert struct{}

func (Insert) Name() string { return "insert" }

// Exit asks the event loop to stop after the current event.
type Exit struct{}

func (Exit) Name() string { return "exit" }

// LineJump collects a line number to jump to.
type LineJump struct {
	Input string
}

func (*LineJump) Name() string { return "line_jump" }

// SelectionMode is implemented by the modes that can be folded into a jump and
// restored once it completes.
type SelectionMode interface {
	Mode
	// Range returns the selected span given the current cursor position.
	Range(cursor buffer.Position) buffer.Range
	selection()
}

// Select highlights the span between Anchor and the cursor.
type Select struct {
	Anchor buffer.Position
}

func (*Select) Name() string { return "select" }
func (*Select) selection()   {}

// Range returns the selected text between the anchor and cursor.
func (s *Select) Range(cursor buffer.Position) buffer.Range {
	return buffer.NewRange(s.Anchor, cursor)
}

// SelectLine highlights whole lines between Anchor and the cursor line.
type SelectLine struct {
	Anchor int
}

func (*SelectLine) Name() string { return "select_line" }
func (*SelectLine) selection()   {}

// ToRange returns the selected lines.
func (s *SelectLine) ToRange(cursor buffer.Position) buffer.LineRange {
	return buffer.NewLineRange(s.Anchor, cursor.Line)
}

// Range covers the selected lines including the trailing newline of the last
// one.
func (s *SelectLine) Range(cursor buffer.Position) buffer.Range {
	return s.ToRange(cursor).ToRange()
}

// Path edits the current buffer's path.
type Path struct {
	Input string
	// SaveOnAccept saves the buffer once the path is accepted, used when
	// saving a buffer that had no path.
	SaveOnAccept bool
}

func (*Path) Name() string { return "path" }

// NewPath pre-fills the input with the buffer path, or the workspace
// directory when the buffer has none.
func NewPath(bufferPath, workspacePath string, saveOnAccept bool) *Path {
	input := bufferPath
	if input == "" {
		input = workspacePath + string(filepath.Separator)
	}
	return &Path{Input: input, SaveOnAccept: saveOnAccept}
}

// PushChar appends to the input.
func (p *Path) PushChar(c rune) { p.Input += string(c) }

// PopChar removes the last character of the input.
func (p *Path) PopChar() { p.Input = popRune(p.Input) }

// Confirm holds a deferred command that runs when the user accepts.
type Confirm[C any] struct {
	Command C
}

func (*Confirm[C]) Name() string { return "confirm" }

func popRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
