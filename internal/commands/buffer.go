package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/modes"
	"github.com/xonecas/amble/internal/movement"
)

var bufferCommands = map[string]app.Command{
	"buffer.save":                    Save,
	"buffer.reload":                  Reload,
	"buffer.close":                   Close,
	"buffer.backspace":               Backspace,
	"buffer.delete":                  Delete,
	"buffer.insert_char":             InsertChar,
	"buffer.insert_newline":          InsertNewline,
	"buffer.insert_tab":              InsertTab,
	"buffer.delete_token":            DeleteToken,
	"buffer.delete_current_line":     DeleteCurrentLine,
	"buffer.copy_current_line":       CopyCurrentLine,
	"buffer.delete_rest_of_line":     DeleteRestOfLine,
	"buffer.change_rest_of_line":     ChangeRestOfLine,
	"buffer.change_token":            ChangeToken,
	"buffer.indent_line":             IndentLine,
	"buffer.outdent_line":            OutdentLine,
	"buffer.toggle_line_comment":     ToggleLineComment,
	"buffer.merge_next_line":         MergeNextLine,
	"buffer.paste":                   Paste,
	"buffer.paste_above":             PasteAbove,
	"buffer.undo":                    Undo,
	"buffer.redo":                    Redo,
	"buffer.start_command_group":     StartCommandGroup,
	"buffer.end_command_group":       EndCommandGroup,
	"buffer.ensure_trailing_newline": EnsureTrailingNewline,
}

// Save writes the buffer to disk. A buffer without a path switches to Path
// mode and is saved once a path is accepted.
func Save(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	if b.Path == "" {
		a.SwitchMode(modes.NewPath("", a.Workspace.Path, true))
		return nil
	}
	if err := b.Save(); err != nil {
		return fmt.Errorf("save %s: %w", a.Workspace.RelativePath(b), err)
	}
	a.RefreshGitStatus(b)
	return nil
}

// Reload replaces the buffer with the file on disk.
func Reload(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	if err := b.Reload(); err != nil {
		return fmt.Errorf("reload %s: %w", a.Workspace.RelativePath(b), err)
	}
	return nil
}

// Close closes the buffer, asking for confirmation when it has unsaved
// changes.
func Close(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	if b.Modified() {
		a.SwitchMode(&modes.Confirm[app.Command]{Command: closeBuffer})
		return nil
	}
	return closeBuffer(a)
}

func closeBuffer(a *app.Application) error {
	return a.CloseCurrentBuffer()
}

// Backspace deletes the character before the cursor, joining with the
// previous line at the start of a line.
func Backspace(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	switch p := b.Cursor.Position; {
	case p.Offset > 0:
		b.Cursor.MoveLeft()
	case p.Line > 0:
		b.Cursor.MoveTo(buffer.Position{Line: p.Line - 1, Offset: b.LineLength(p.Line - 1)})
	default:
		return nil
	}
	b.Delete()
	return scrollToCursor(a)
}

// Delete removes the grapheme under the cursor.
func Delete(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	b.Delete()
	return scrollToCursor(a)
}

// InsertChar types the last key pressed.
func InsertChar(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	c, err := lastChar(a)
	if err != nil {
		return err
	}
	b.Insert(string(c))
	b.Cursor.MoveRight()
	return scrollToCursor(a)
}

// InsertNewline breaks the line, carrying its indentation to the new line.
func InsertNewline(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	line, err := currentLine(b)
	if err != nil {
		return err
	}
	indent := leadingWhitespace(line)
	if b.Cursor.Offset < len([]rune(indent)) {
		indent = ""
	}
	b.Insert("\n" + indent)
	b.Cursor.MoveTo(buffer.Position{Line: b.Cursor.Line + 1, Offset: len([]rune(indent))})
	return scrollToCursor(a)
}

// InsertTab inserts a tab, or spaces to the next tab stop with soft tabs.
func InsertTab(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	text := tabText(a, b.Cursor.Offset)
	b.Insert(text)
	b.Cursor.MoveTo(buffer.Position{Line: b.Cursor.Line, Offset: b.Cursor.Offset + len([]rune(text))})
	return scrollToCursor(a)
}

func tabText(a *app.Application, offset int) string {
	prefs := a.Preferences
	if !prefs.SoftTabs {
		return "\t"
	}
	return strings.Repeat(" ", prefs.TabWidth-offset%prefs.TabWidth)
}

// DeleteToken deletes from the cursor to the start of the next token, or to
// the end of the line when there is none.
func DeleteToken(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	p := b.Cursor.Position
	end := buffer.Position{Line: p.Line, Offset: b.LineLength(p.Line)}
	if next, ok := movement.NextTokenStart(b, p); ok && next.Line == p.Line {
		end = next
	}
	if end == p {
		b.Delete()
	} else {
		b.DeleteRange(buffer.NewRange(p, end))
	}
	return scrollToCursor(a)
}

// DeleteCurrentLine cuts the line into the clipboard as a block.
func DeleteCurrentLine(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	if err := CopyCurrentLine(a); err != nil {
		return err
	}
	line := b.Cursor.Line
	r := buffer.LineRange{Start: line, End: line}.ToRange()
	if line > 0 && line == b.LineCount()-1 {
		// The last line has no newline of its own; take the previous one.
		r = buffer.NewRange(buffer.Position{Line: line - 1, Offset: b.LineLength(line - 1)}, b.End())
	}
	b.DeleteRange(r)
	b.Cursor.MoveTo(buffer.Position{Line: min(line, b.LineCount()-1)})
	return scrollToCursor(a)
}

// CopyCurrentLine copies the line into the clipboard as a block.
func CopyCurrentLine(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	line, err := currentLine(b)
	if err != nil {
		return err
	}
	a.Clipboard.Set(app.ClipboardContent{Text: line + "\n", Block: true})
	return nil
}

// DeleteRestOfLine removes everything from the cursor to the end of its line.
func DeleteRestOfLine(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	p := b.Cursor.Position
	b.DeleteRange(buffer.NewRange(p, buffer.Position{Line: p.Line, Offset: b.LineLength(p.Line)}))
	return nil
}

// ChangeRestOfLine deletes to the end of the line and starts inserting.
func ChangeRestOfLine(a *app.Application) error {
	if err := DeleteRestOfLine(a); err != nil {
		return err
	}
	return SwitchToInsertMode(a)
}

// ChangeToken deletes the token under the cursor and starts inserting.
func ChangeToken(a *app.Application) error {
	if err := DeleteToken(a); err != nil {
		return err
	}
	return SwitchToInsertMode(a)
}

// targetLines is the line selection in SelectLine mode, else the cursor line.
func targetLines(a *app.Application, b *buffer.Buffer) buffer.LineRange {
	if sel, ok := a.Mode.(*modes.SelectLine); ok {
		return sel.ToRange(b.Cursor.Position)
	}
	return buffer.LineRange{Start: b.Cursor.Line, End: b.Cursor.Line}
}

// IndentLine indents the current or selected lines by one tab stop.
func IndentLine(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	indent := tabText(a, 0)
	width := len([]rune(indent))
	lines := targetLines(a, b)

	defer beginGroup(a, b)()
	for n := lines.Start; n <= lines.End; n++ {
		if line, _ := b.Line(n); line == "" {
			continue
		}
		b.InsertAt(buffer.Position{Line: n}, indent)
	}
	if b.LineLength(b.Cursor.Line) > 0 {
		b.Cursor.MoveTo(buffer.Position{Line: b.Cursor.Line, Offset: b.Cursor.Offset + width})
	}
	return nil
}

// OutdentLine removes up to one tab stop of leading whitespace from the
// current or selected lines.
func OutdentLine(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	lines := targetLines(a, b)
	cursor := b.Cursor.Position

	defer beginGroup(a, b)()
	for n := lines.Start; n <= lines.End; n++ {
		line, _ := b.Line(n)
		removed := 0
		for _, r := range line {
			if removed == a.Preferences.TabWidth || (r != ' ' && r != '\t') {
				break
			}
			removed++
			if r == '\t' {
				break
			}
		}
		if removed == 0 {
			continue
		}
		b.DeleteRange(buffer.NewRange(buffer.Position{Line: n}, buffer.Position{Line: n, Offset: removed}))
		if n == cursor.Line {
			cursor.Offset = max(cursor.Offset-removed, 0)
		}
	}
	b.Cursor.MoveTo(cursor)
	return nil
}

// ToggleLineComment comments out the current or selected lines with the
// prefix configured for the file type, or uncomments them when every
// non-blank line already is.
func ToggleLineComment(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	prefix, ok := a.Preferences.LineCommentPrefixFor(b.Path)
	if !ok {
		return errors.New("no line comment prefix for the current buffer")
	}
	lines := targetLines(a, b)

	commented, indent := true, -1
	for n := lines.Start; n <= lines.End; n++ {
		line, _ := b.Line(n)
		if strings.TrimSpace(line) == "" {
			continue
		}
		ws := len([]rune(leadingWhitespace(line)))
		if indent < 0 || ws < indent {
			indent = ws
		}
		if !strings.HasPrefix(strings.TrimLeft(line, " \t"), prefix) {
			commented = false
		}
	}
	if indent < 0 {
		return nil
	}

	cursor := b.Cursor.Position
	defer beginGroup(a, b)()
	for n := lines.Start; n <= lines.End; n++ {
		line, _ := b.Line(n)
		if strings.TrimSpace(line) == "" {
			continue
		}
		delta := 0
		if commented {
			start := len([]rune(leadingWhitespace(line)))
			rest := strings.TrimLeft(line, " \t")[len(prefix):]
			width := len([]rune(prefix))
			if strings.HasPrefix(rest, " ") {
				width++
			}
			b.DeleteRange(buffer.NewRange(buffer.Position{Line: n, Offset: start}, buffer.Position{Line: n, Offset: start + width}))
			delta = -width
		} else {
			b.InsertAt(buffer.Position{Line: n, Offset: indent}, prefix+" ")
			delta = len([]rune(prefix)) + 1
		}
		if n == cursor.Line {
			cursor.Offset = max(cursor.Offset+delta, 0)
		}
	}
	b.Cursor.MoveTo(cursor)
	return nil
}

// MergeNextLine joins the next line onto the current one, separated by a
// single space.
func MergeNextLine(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	line := b.Cursor.Line
	next, ok := b.Line(line + 1)
	if !ok {
		return errors.New("no line below the current one")
	}
	end := b.LineLength(line)
	trimmed := len([]rune(leadingWhitespace(next)))

	defer beginGroup(a, b)()
	b.DeleteRange(buffer.NewRange(buffer.Position{Line: line, Offset: end}, buffer.Position{Line: line + 1, Offset: trimmed}))
	sep := " "
	if end == 0 || trimmed == len([]rune(next)) {
		sep = ""
	}
	b.InsertAt(buffer.Position{Line: line, Offset: end}, sep)
	b.Cursor.MoveTo(buffer.Position{Line: line, Offset: end})
	return nil
}

// Paste inserts the clipboard at the cursor, or below the current line when
// it holds whole lines.
func Paste(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	content := a.Clipboard.Get()
	if content.Text == "" {
		return errors.New("nothing to paste")
	}
	if !content.Block {
		b.Insert(content.Text)
		return scrollToCursor(a)
	}

	line := b.Cursor.Line
	if line+1 < b.LineCount() {
		b.InsertAt(buffer.Position{Line: line + 1}, content.Text)
	} else {
		b.InsertAt(buffer.Position{Line: line, Offset: b.LineLength(line)}, "\n"+strings.TrimSuffix(content.Text, "\n"))
	}
	b.Cursor.MoveTo(buffer.Position{Line: line + 1})
	return scrollToCursor(a)
}

// PasteAbove inserts the clipboard at the cursor, or above the current line
// when it holds whole lines.
func PasteAbove(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	content := a.Clipboard.Get()
	if content.Text == "" {
		return errors.New("nothing to paste")
	}
	if !content.Block {
		b.Insert(content.Text)
		return scrollToCursor(a)
	}
	line := b.Cursor.Line
	b.InsertAt(buffer.Position{Line: line}, content.Text)
	b.Cursor.MoveTo(buffer.Position{Line: line})
	return scrollToCursor(a)
}

// Undo reverts the last operation group.
func Undo(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	if !b.Undo() {
		log.Debug().Msg("Nothing to undo")
	}
	return scrollToCursor(a)
}

// Redo reapplies the last undone operation group.
func Redo(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	if !b.Redo() {
		log.Debug().Msg("Nothing to redo")
	}
	return scrollToCursor(a)
}

// StartCommandGroup begins an operation group; edits until EndCommandGroup undo together.
func StartCommandGroup(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	b.StartOperationGroup()
	return nil
}

// EndCommandGroup closes the open operation group.
func EndCommandGroup(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	b.EndOperationGroup()
	return nil
}

// EnsureTrailingNewline adds a newline at the end of the buffer if it lacks
// one.
func EnsureTrailingNewline(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	if b.LineLength(b.LineCount()-1) > 0 {
		b.InsertAt(b.End(), "\n")
	}
	return nil
}

// beginGroup opens an undo group unless insert mode already holds one, and
// returns the function that closes it.
func beginGroup(a *app.Application, b *buffer.Buffer) func() {
	if _, ok := a.Mode.(modes.Insert); ok {
		return func() {}
	}
	b.StartOperationGroup()
	return b.EndOperationGroup
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
