package app

import (
	"fmt"

	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/modes"
	"github.com/xonecas/amble/internal/view"
)

func modeLabel(m modes.Mode) (string, view.Colors) {
	switch m := m.(type) {
	case modes.Insert:
		return "INSERT", view.Insert
	case *modes.Select, *modes.SelectLine:
		return "SELECT", view.SelectMode
	case *modes.Jump:
		return "JUMP", view.Inverted
	case *modes.LineJump:
		return "GO TO LINE", view.Inverted
	case *modes.Search:
		return "SEARCH", view.SearchMode
	case *modes.Path:
		return "PATH", view.PathMode
	case *modes.Confirm[Command]:
		return "CONFIRM", view.Warning
	case modes.SearchSelect:
		return m.Title(), view.SearchMode
	}
	return "NORMAL", view.Inverted
}

// statusEntries builds the status line for b: mode, path, modified marker,
// git status and cursor position.
func (a *Application) statusEntries(b *buffer.Buffer) []view.StatusLineEntry {
	label, colors := modeLabel(a.Mode)
	entries := []view.StatusLineEntry{
		{Content: label, Style: view.StyleBold, Colors: colors},
	}
	if b == nil {
		return append(entries, view.StatusLineEntry{})
	}

	path := a.Workspace.RelativePath(b)
	if path == "" {
		path = "untitled"
	}
	if b.Modified() {
		path += " *"
	}
	entries = append(entries, view.StatusLineEntry{Content: path, Colors: view.Focused})

	if status := a.gitStatus[b.Path]; status.String() != "" {
		entries = append(entries, view.StatusLineEntry{Content: "[" + status.String() + "]", Colors: view.Focused})
	}

	position := fmt.Sprintf("%d:%d", b.Cursor.Line+1, b.Cursor.Offset+1)
	return append(entries, view.StatusLineEntry{Content: position, Colors: view.Focused})
}

// errorEntries replaces the status line with err.
func errorEntries(err error) []view.StatusLineEntry {
	return []view.StatusLineEntry{
		{Content: err.Error(), Style: view.StyleBold, Colors: view.Warning},
		{},
	}
}
