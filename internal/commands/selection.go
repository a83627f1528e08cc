package commands

import (
	"errors"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/modes"
)

// ErrNotSelectMode is returned by selection commands run outside Select or
// SelectLine mode.
var ErrNotSelectMode = errors.New("not in a select mode")

var selectionCommands = map[string]app.Command{
	"selection.delete":     DeleteSelection,
	"selection.change":     ChangeSelection,
	"selection.copy":       CopySelection,
	"selection.select_all": SelectAll,
}

func selectedRange(a *app.Application) (*buffer.Buffer, buffer.Range, error) {
	b, err := a.CurrentBuffer()
	if err != nil {
		return nil, buffer.Range{}, err
	}
	sel, ok := a.Mode.(modes.SelectionMode)
	if !ok {
		return nil, buffer.Range{}, ErrNotSelectMode
	}
	return b, sel.Range(b.Cursor.Position), nil
}

// CopySelection copies the selected text. Line selections are copied as a
// block.
func CopySelection(a *app.Application) error {
	b, r, err := selectedRange(a)
	if err != nil {
		return err
	}
	text, ok := b.Read(r)
	if !ok {
		return nil
	}
	_, block := a.Mode.(*modes.SelectLine)
	if block && text != "" && text[len(text)-1] != '\n' {
		text += "\n"
	}
	a.Clipboard.Set(app.ClipboardContent{Text: text, Block: block})
	return nil
}

// DeleteSelection copies the selection, removes it and returns to Normal
// mode with the cursor at the start of the removed span.
func DeleteSelection(a *app.Application) error {
	if err := CopySelection(a); err != nil {
		return err
	}
	b, r, err := selectedRange(a)
	if err != nil {
		return err
	}
	b.DeleteRange(r)
	start := r.Start()
	if _, lines := a.Mode.(*modes.SelectLine); lines {
		start.Offset = 0
	}
	b.Cursor.MoveTo(start)
	a.SwitchMode(modes.Normal{})
	return scrollToCursor(a)
}

// ChangeSelection deletes the selection and enters Insert mode.
func ChangeSelection(a *app.Application) error {
	if err := DeleteSelection(a); err != nil {
		return err
	}
	return SwitchToInsertMode(a)
}

// SelectAll selects every line of the buffer.
func SelectAll(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	b.Cursor.MoveToLastLine()
	a.SwitchMode(&modes.SelectLine{Anchor: 0})
	return scrollToCursor(a)
}
