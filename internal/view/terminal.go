package view

import (
	"github.com/gdamore/tcell/v2"

	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/input"
)

const (
	MinWidth  = 10
	MinHeight = 2
)

// Terminal is the output surface and event source the editor draws to.
// Positions are screen coordinates: Line is the row, Offset the column.
type Terminal interface {
	// Listen returns at most one event, waiting briefly if none is pending.
	Listen() (input.Event, bool)
	Clear()
	Present()
	Width() int
	Height() int
	// SetCursor moves the cursor; nil hides it.
	SetCursor(pos *buffer.Position)
	Print(pos buffer.Position, style Style, fg, bg tcell.Color, content string)
	Close()
}
