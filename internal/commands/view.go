package commands

import (
	"fmt"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/buffer"
)

const scrollLines = 10

var viewCommands = map[string]app.Command{
	"view.scroll_up":        ScrollUp,
	"view.scroll_down":      ScrollDown,
	"view.scroll_to_cursor": ScrollToCursor,
	"view.scroll_to_center": ScrollToCenter,
	"view.page_up":          PageUp,
	"view.page_down":        PageDown,
}

// ScrollUp moves the viewport up without moving the cursor.
func ScrollUp(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	return a.View.ScrollUp(b, scrollLines)
}

// ScrollDown moves the viewport down without moving the cursor.
func ScrollDown(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	return a.View.ScrollDown(b, scrollLines)
}

// ScrollToCursor scrolls just enough to show the cursor line.
func ScrollToCursor(a *app.Application) error {
	return scrollToCursor(a)
}

// ScrollToCenter scrolls the cursor line to the middle of the viewport.
func ScrollToCenter(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	if err := a.View.ScrollToCenter(b); err != nil {
		return fmt.Errorf("scroll to center: %w", err)
	}
	return nil
}

// PageUp moves the view and the cursor up by half a screen.
func PageUp(a *app.Application) error {
	return page(a, -1)
}

// PageDown moves the view and the cursor down by half a screen.
func PageDown(a *app.Application) error {
	return page(a, 1)
}

func page(a *app.Application, direction int) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	amount := max(a.View.BufferHeight()/2, 1)
	if direction < 0 {
		err = a.View.ScrollUp(b, amount)
	} else {
		err = a.View.ScrollDown(b, amount)
	}
	if err != nil {
		return err
	}
	line := min(max(b.Cursor.Line+direction*amount, 0), b.LineCount()-1)
	b.Cursor.MoveTo(buffer.Position{Line: line, Offset: min(b.Cursor.Offset, b.LineLength(line))})
	return scrollToCursor(a)
}
