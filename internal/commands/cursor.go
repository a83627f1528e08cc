package commands

import (
	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/movement"
)

var cursorCommands = map[string]app.Command{
	"cursor.move_up":                         moveCursor((*buffer.Cursor).MoveUp),
	"cursor.move_down":                       moveCursor((*buffer.Cursor).MoveDown),
	"cursor.move_left":                       moveCursor((*buffer.Cursor).MoveLeft),
	"cursor.move_right":                      moveCursor((*buffer.Cursor).MoveRight),
	"cursor.move_to_start_of_line":           MoveToStartOfLine,
	"cursor.move_to_end_of_line":             MoveToEndOfLine,
	"cursor.move_to_first_line":              MoveToFirstLine,
	"cursor.move_to_last_line":               MoveToLastLine,
	"cursor.move_to_first_word_of_line":      MoveToFirstWordOfLine,
	"cursor.move_to_start_of_next_token":     MoveToStartOfNextToken,
	"cursor.move_to_start_of_previous_token": MoveToStartOfPreviousToken,
	"cursor.move_to_end_of_current_token":    MoveToEndOfCurrentToken,
	"cursor.append_to_current_token":         AppendToCurrentToken,
	"cursor.insert_at_end_of_line":           InsertAtEndOfLine,
	"cursor.insert_at_first_word_of_line":    InsertAtFirstWordOfLine,
	"cursor.insert_with_newline":             InsertWithNewline,
	"cursor.insert_with_newline_above":       InsertWithNewlineAbove,
}

func moveCursor(move func(*buffer.Cursor) bool) app.Command {
	return func(a *app.Application) error {
		b, err := a.CurrentBuffer()
		if err != nil {
			return err
		}
		move(b.Cursor)
		return scrollToCursor(a)
	}
}

func MoveToStartOfLine(a *app.Application) error {
	return moveCursor(func(c *buffer.Cursor) bool { c.MoveToStartOfLine(); return true })(a)
}

func MoveToEndOfLine(a *app.Application) error {
	return moveCursor(func(c *buffer.Cursor) bool { c.MoveToEndOfLine(); return true })(a)
}

func MoveToFirstLine(a *app.Application) error {
	return moveCursor(func(c *buffer.Cursor) bool { c.MoveToFirstLine(); return true })(a)
}

func MoveToLastLine(a *app.Application) error {
	return moveCursor(func(c *buffer.Cursor) bool { c.MoveToLastLine(); return true })(a)
}

func moveTo(a *app.Application, find func(*buffer.Buffer, buffer.Position) (buffer.Position, bool)) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	if p, ok := find(b, b.Cursor.Position); ok {
		b.Cursor.MoveTo(p)
	}
	return scrollToCursor(a)
}

// MoveToFirstWordOfLine moves past the indentation of the cursor line.
func MoveToFirstWordOfLine(a *app.Application) error {
	return moveTo(a, func(b *buffer.Buffer, p buffer.Position) (buffer.Position, bool) {
		line, ok := b.Line(p.Line)
		if !ok {
			return p, false
		}
		return buffer.Position{Line: p.Line, Offset: movement.FirstWord(line)}, true
	})
}

// MoveToStartOfNextToken moves to the start of the next word or symbol run.
func MoveToStartOfNextToken(a *app.Application) error {
	return moveTo(a, movement.NextTokenStart)
}

func MoveToStartOfPreviousToken(a *app.Application) error {
	return moveTo(a, movement.PreviousTokenStart)
}

func MoveToEndOfCurrentToken(a *app.Application) error {
	return moveTo(a, movement.NextTokenEnd)
}

// AppendToCurrentToken starts inserting after the token under the cursor.
func AppendToCurrentToken(a *app.Application) error {
	if err := MoveToEndOfCurrentToken(a); err != nil {
		return err
	}
	return SwitchToInsertMode(a)
}

// InsertAtEndOfLine starts inserting at the end of the cursor line.
func InsertAtEndOfLine(a *app.Application) error {
	if err := MoveToEndOfLine(a); err != nil {
		return err
	}
	return SwitchToInsertMode(a)
}

// InsertAtFirstWordOfLine starts inserting after the indentation.
func InsertAtFirstWordOfLine(a *app.Application) error {
	if err := MoveToFirstWordOfLine(a); err != nil {
		return err
	}
	return SwitchToInsertMode(a)
}

// InsertWithNewline opens an indented line below the cursor line and starts
// typing on it.
func InsertWithNewline(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	line, err := currentLine(b)
	if err != nil {
		return err
	}
	if err := SwitchToInsertMode(a); err != nil {
		return err
	}
	indent := leadingWhitespace(line)
	n := b.Cursor.Line
	b.InsertAt(buffer.Position{Line: n, Offset: b.LineLength(n)}, "\n"+indent)
	b.Cursor.MoveTo(buffer.Position{Line: n + 1, Offset: len([]rune(indent))})
	return scrollToCursor(a)
}

// InsertWithNewlineAbove opens an indented line above the cursor line and
// starts typing on it.
func InsertWithNewlineAbove(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	line, err := currentLine(b)
	if err != nil {
		return err
	}
	if err := SwitchToInsertMode(a); err != nil {
		return err
	}
	indent := leadingWhitespace(line)
	n := b.Cursor.Line
	b.InsertAt(buffer.Position{Line: n}, indent+"\n")
	b.Cursor.MoveTo(buffer.Position{Line: n, Offset: len([]rune(indent))})
	return scrollToCursor(a)
}
