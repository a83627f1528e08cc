package view

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/input"
)

const listenTimeout = 100 * time.Millisecond

// TcellTerminal drives the real terminal through tcell.
type TcellTerminal struct {
	screen tcell.Screen

	// mu guards the screen's output path and the last cursor state.
	mu     sync.Mutex
	cursor *buffer.Position

	events        chan input.Event
	resizePending atomic.Bool
	quit          chan struct{}
	closeOnce     sync.Once
}

// NewTcellTerminal initialises the controlling terminal.
func NewTcellTerminal() (*TcellTerminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return NewTerminalWithScreen(screen)
}

// NewTerminalWithScreen wraps an uninitialised screen, such as a simulation
// screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) (*TcellTerminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()

	t := &TcellTerminal{
		screen: screen,
		events: make(chan input.Event, 64),
		quit:   make(chan struct{}),
	}
	go t.pump()
	return t, nil
}

// pump decodes tcell events until the screen is finalised. A resize is only
// queued when no earlier resize is still waiting to be read.
func (t *TcellTerminal) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		var out input.Event
		switch ev := ev.(type) {
		case *tcell.EventKey:
			key, ok := translateKey(ev)
			if !ok {
				continue
			}
			out = input.KeyEvent{Key: key}
		case *tcell.EventResize:
			if !t.resizePending.CompareAndSwap(false, true) {
				continue
			}
			out = input.ResizeEvent{}
		default:
			continue
		}
		select {
		case t.events <- out:
		case <-t.quit:
			return
		}
	}
}

func translateKey(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return input.Ctrl(ev.Rune()), true
		}
		return input.Char(ev.Rune()), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.Special(input.KeyBackspace), true
	case tcell.KeyTab:
		return input.Special(input.KeyTab), true
	case tcell.KeyEnter:
		return input.Special(input.KeyEnter), true
	case tcell.KeyEscape:
		return input.Special(input.KeyEsc), true
	case tcell.KeyLeft:
		return input.Special(input.KeyLeft), true
	case tcell.KeyRight:
		return input.Special(input.KeyRight), true
	case tcell.KeyUp:
		return input.Special(input.KeyUp), true
	case tcell.KeyDown:
		return input.Special(input.KeyDown), true
	case tcell.KeyHome:
		return input.Special(input.KeyHome), true
	case tcell.KeyEnd:
		return input.Special(input.KeyEnd), true
	case tcell.KeyPgUp:
		return input.Special(input.KeyPageUp), true
	case tcell.KeyPgDn:
		return input.Special(input.KeyPageDown), true
	case tcell.KeyDelete:
		return input.Special(input.KeyDelete), true
	case tcell.KeyInsert:
		return input.Special(input.KeyInsert), true
	case tcell.KeyCtrlSpace:
		return input.Ctrl(' '), true
	}
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return input.Ctrl(rune('a' + (k - tcell.KeyCtrlA))), true
	}
	return input.Key{}, false
}

// Listen waits briefly for the next input event.
func (t *TcellTerminal) Listen() (input.Event, bool) {
	select {
	case ev := <-t.events:
		if _, ok := ev.(input.ResizeEvent); ok {
			t.resizePending.Store(false)
		}
		return ev, true
	case <-time.After(listenTimeout):
		return nil, false
	}
}

func (t *TcellTerminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

// Present flushes drawn cells to the terminal.
func (t *TcellTerminal) Present() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *TcellTerminal) Width() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, _ := t.screen.Size()
	return max(w, MinWidth)
}

func (t *TcellTerminal) Height() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, h := t.screen.Size()
	return max(h, MinHeight)
}

// SetCursor shows the cursor at pos, or hides it when pos is nil.
func (t *TcellTerminal) SetCursor(pos *buffer.Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if pos == nil {
		t.screen.HideCursor()
		t.cursor = nil
		return
	}
	p := *pos
	t.screen.ShowCursor(p.Offset, p.Line)
	t.cursor = &p
}

// Print draws content at pos in the given style and colors.
func (t *TcellTerminal) Print(pos buffer.Position, style Style, fg, bg tcell.Color, content string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := tcell.StyleDefault.Foreground(fg).Background(bg)
	switch style {
	case StyleBold:
		st = st.Bold(true)
	case StyleInverted:
		st = st.Reverse(true)
	case StyleItalic:
		st = st.Italic(true)
	}

	x := pos.Offset
	for _, g := range buffer.Graphemes(content) {
		runes := []rune(g)
		t.screen.SetContent(x, pos.Line, runes[0], runes[1:], st)
		x += max(runewidth.StringWidth(g), 1)
	}
}

// Close restores the terminal. It is safe to call more than once.
func (t *TcellTerminal) Close() {
	t.closeOnce.Do(func() {
		close(t.quit)
		t.screen.Fini()
	})
}
