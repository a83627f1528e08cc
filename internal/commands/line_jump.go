package commands

import (
	"fmt"
	"strconv"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/modes"
)

var lineJumpCommands = map[string]app.Command{
	"line_jump.push_search_char": PushLineJumpChar,
	"line_jump.backspace":        LineJumpBackspace,
	"line_jump.accept_input":     AcceptLineJump,
}

func lineJumpMode(a *app.Application) (*modes.LineJump, error) {
	m, ok := a.Mode.(*modes.LineJump)
	if !ok {
		return nil, fmt.Errorf("not in line jump mode")
	}
	return m, nil
}

// PushLineJumpChar appends the typed character to the line number.
func PushLineJumpChar(a *app.Application) error {
	m, err := lineJumpMode(a)
	if err != nil {
		return err
	}
	c, err := lastChar(a)
	if err != nil {
		return err
	}
	m.Input += string(c)
	return nil
}

// LineJumpBackspace drops the last character of the line number.
func LineJumpBackspace(a *app.Application) error {
	m, err := lineJumpMode(a)
	if err != nil {
		return err
	}
	if r := []rune(m.Input); len(r) > 0 {
		m.Input = string(r[:len(r)-1])
	}
	return nil
}

// AcceptLineJump moves to the typed 1-based line, clamped to the buffer, and
// centres it. The cursor keeps its column where the line is long enough. Input
// that is not a number leaves the prompt open.
func AcceptLineJump(a *app.Application) error {
	m, err := lineJumpMode(a)
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(m.Input)
	if err != nil {
		return fmt.Errorf("invalid line number %q", m.Input)
	}
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	if err := SwitchToNormalMode(a); err != nil {
		return err
	}
	line := min(max(n-1, 0), b.LineCount()-1)
	b.Cursor.MoveTo(buffer.Position{Line: line, Offset: min(b.Cursor.Offset, b.LineLength(line))})
	return ScrollToCenter(a)
}
