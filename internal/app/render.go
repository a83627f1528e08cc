package app

import (
	"fmt"

	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/modes"
	"github.com/xonecas/amble/internal/view"
)

const splash = "amble"

// Render draws one frame for the active mode.
func (a *Application) Render() error {
	p := a.View.BuildPresenter()
	b := a.Workspace.CurrentBuffer()

	var err error
	switch m := a.Mode.(type) {
	case *modes.Jump:
		err = a.presentJump(p, b, m)
	case *modes.Select:
		err = a.presentBuffer(p, b, selectionHighlights(b, m))
	case *modes.SelectLine:
		err = a.presentBuffer(p, b, selectionHighlights(b, m))
	case *modes.Search:
		err = a.presentSearch(p, b, m)
	case *modes.LineJump:
		err = a.presentPrompt(p, b, "Go to line: ", m.Input)
	case *modes.Path:
		err = a.presentPrompt(p, b, "Path: ", m.Input)
	case *modes.Confirm[Command]:
		err = a.presentConfirm(p, b)
	case modes.SearchSelect:
		err = a.presentSearchSelect(p, b, m)
	default:
		err = a.presentBuffer(p, b, nil)
	}
	if err != nil {
		return err
	}
	p.Present()
	return nil
}

func selectionHighlights(b *buffer.Buffer, sel modes.SelectionMode) []buffer.Range {
	if b == nil {
		return nil
	}
	return []buffer.Range{sel.Range(b.Cursor.Position)}
}

// drawBuffer prints b, or the splash screen when no buffer is open.
func (a *Application) drawBuffer(p *view.Presenter, b *buffer.Buffer, highlights []buffer.Range, mapper view.LexemeMapper) error {
	if b == nil {
		row := p.Height() / 2
		col := max((p.Width()-len(splash))/2, 0)
		p.Print(buffer.Position{Line: row, Offset: col}, view.StyleBold, view.Default, splash)
		p.SetCursor(nil)
		return nil
	}
	return p.PrintBuffer(b, highlights, mapper)
}

func (a *Application) drawStatus(p *view.Presenter, b *buffer.Buffer) {
	if err := a.lastError; err != nil {
		p.PrintStatusLine(errorEntries(err))
		return
	}
	p.PrintStatusLine(a.statusEntries(b))
}

func (a *Application) presentBuffer(p *view.Presenter, b *buffer.Buffer, highlights []buffer.Range) error {
	if err := a.drawBuffer(p, b, highlights, nil); err != nil {
		return err
	}
	a.drawStatus(p, b)
	return nil
}

func (a *Application) presentJump(p *view.Presenter, b *buffer.Buffer, j *modes.Jump) error {
	j.ResetDisplay()
	var highlights []buffer.Range
	if j.Selection != nil && b != nil {
		highlights = selectionHighlights(b, j.Selection)
	}
	if err := a.drawBuffer(p, b, highlights, j); err != nil {
		return err
	}
	p.SetCursor(nil)
	a.drawStatus(p, b)
	return nil
}

func (a *Application) presentSearch(p *view.Presenter, b *buffer.Buffer, s *modes.Search) error {
	if err := a.drawBuffer(p, b, s.Results.Items(), nil); err != nil {
		return err
	}
	if s.InsertMode {
		a.drawPrompt(p, "Search: ", s.Input)
		return nil
	}
	if a.lastError != nil {
		a.drawStatus(p, b)
		return nil
	}
	label, colors := modeLabel(s)
	summary := fmt.Sprintf("%s  %d of %d matches", s.Input, s.Results.SelectedIndex()+1, s.Results.Len())
	if s.Results.Empty() {
		summary = s.Input + "  no matches"
	}
	p.PrintStatusLine([]view.StatusLineEntry{
		{Content: label, Style: view.StyleBold, Colors: colors},
		{Content: summary, Colors: view.Focused},
		{},
	})
	return nil
}

func (a *Application) presentPrompt(p *view.Presenter, b *buffer.Buffer, prompt, input string) error {
	if err := a.drawBuffer(p, b, nil, nil); err != nil {
		return err
	}
	a.drawPrompt(p, prompt, input)
	return nil
}

// drawPrompt turns the status line into an input field with the cursor at
// its end.
func (a *Application) drawPrompt(p *view.Presenter, prompt, input string) {
	if a.lastError != nil {
		p.PrintStatusLine(errorEntries(a.lastError))
		return
	}
	row := p.Height() - 1
	p.PrintStatusLine(nil)
	text := " " + prompt + input
	width := p.Print(buffer.Position{Line: row, Offset: 0}, view.StyleDefault, view.Focused, text)
	p.SetCursor(&buffer.Position{Line: row, Offset: min(width, p.Width()-1)})
}

func (a *Application) presentConfirm(p *view.Presenter, b *buffer.Buffer) error {
	if err := a.drawBuffer(p, b, nil, nil); err != nil {
		return err
	}
	p.PrintStatusLine([]view.StatusLineEntry{
		{Content: "Are you sure? (y/n)", Style: view.StyleBold, Colors: view.Warning},
		{},
	})
	p.SetCursor(nil)
	return nil
}

// presentSearchSelect lists the results above the query prompt at the bottom
// of the screen, best match nearest the prompt.
func (a *Application) presentSearchSelect(p *view.Presenter, b *buffer.Buffer, m modes.SearchSelect) error {
	if err := a.drawBuffer(p, b, nil, nil); err != nil {
		return err
	}

	promptRow := p.Height() - 1
	results := m.Results()
	rows := make([]string, 0, len(results))
	if len(results) == 0 {
		rows = append(rows, m.Message())
	} else {
		rows = append(rows, results...)
	}

	for i, text := range rows {
		row := promptRow - 1 - i
		if row < 0 {
			break
		}
		colors, style := view.Default, view.StyleDefault
		if len(results) > 0 && i == m.SelectedIndex() {
			colors, style = view.Focused, view.StyleBold
		}
		a.clearRow(p, row, colors)
		p.Print(buffer.Position{Line: row, Offset: 1}, style, colors, text)
	}

	if a.lastError != nil {
		p.PrintStatusLine(errorEntries(a.lastError))
		p.SetCursor(nil)
		return nil
	}
	label, colors := modeLabel(m)
	p.PrintStatusLine(nil)
	col := p.Print(buffer.Position{Line: promptRow}, view.StyleBold, colors, " "+label+" ")
	col += p.Print(buffer.Position{Line: promptRow, Offset: col}, view.StyleDefault, view.Focused, " "+m.Query())
	if m.InsertMode() {
		p.SetCursor(&buffer.Position{Line: promptRow, Offset: min(col, p.Width()-1)})
	} else {
		p.SetCursor(nil)
	}
	return nil
}

func (a *Application) clearRow(p *view.Presenter, row int, colors view.Colors) {
	for col := 0; col < p.Width(); col++ {
		p.Cells().Set(buffer.Position{Line: row, Offset: col}, view.Cell{Content: " ", Colors: colors})
	}
}
