package view

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/input"
)

func newSimTerminal(t *testing.T) (*TcellTerminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	term, err := NewTerminalWithScreen(screen)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(term.Close)
	return term, screen
}

func waitQueued(t *testing.T, term *TcellTerminal, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for len(term.events) < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d queued events, have %d", n, len(term.events))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func listenFor(t *testing.T, term *TcellTerminal) input.Event {
	t.Helper()
	for i := 0; i < 20; i++ {
		if ev, ok := term.Listen(); ok {
			return ev
		}
	}
	t.Fatal("no event received")
	return nil
}

func TestTcellTerminalDecodesKeys(t *testing.T) {
	term, screen := newSimTerminal(t)
	drain(term)

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlR, 0, tcell.ModCtrl)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyPgDn, 0, tcell.ModNone)

	want := []input.Key{
		input.Char('x'),
		input.Ctrl('r'),
		input.Special(input.KeyEnter),
		input.Special(input.KeyPageDown),
	}
	for _, w := range want {
		ev := listenFor(t, term)
		ke, ok := ev.(input.KeyEvent)
		if !ok {
			t.Fatalf("event = %#v, want key", ev)
		}
		if ke.Key != w {
			t.Errorf("key = %v, want %v", ke.Key, w)
		}
	}
}

func drain(term *TcellTerminal) {
	for {
		select {
		case <-term.events:
			term.resizePending.Store(false)
		case <-time.After(50 * time.Millisecond):
			return
		}
	}
}

func TestTcellTerminalCoalescesResizes(t *testing.T) {
	term, screen := newSimTerminal(t)
	drain(term)

	for i := 0; i < 3; i++ {
		screen.PostEvent(tcell.NewEventResize(40+i, 10))
	}
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	waitQueued(t, term, 2)

	if _, ok := listenFor(t, term).(input.ResizeEvent); !ok {
		t.Fatal("expected a single resize first")
	}
	if ke, ok := listenFor(t, term).(input.KeyEvent); !ok || ke.Key != input.Char('q') {
		t.Fatal("expected the key after the coalesced resize")
	}
}

func TestTcellTerminalPrintAndBounds(t *testing.T) {
	term, screen := newSimTerminal(t)
	screen.SetSize(40, 5)

	term.Print(buffer.Position{Line: 1, Offset: 2}, StyleBold, tcell.ColorRed, tcell.ColorBlack, "hé")
	term.SetCursor(&buffer.Position{Line: 1, Offset: 3})
	term.Present()

	cells, w, _ := screen.GetContents()
	if got := cells[1*w+2].Runes; len(got) == 0 || got[0] != 'h' {
		t.Errorf("cell (1,2) = %q", got)
	}
	if got := cells[1*w+3].Runes; len(got) == 0 || got[0] != 'é' {
		t.Errorf("cell (1,3) = %q", got)
	}
	if x, y, visible := screen.GetCursor(); !visible || x != 3 || y != 1 {
		t.Errorf("cursor = %d,%d visible=%v", x, y, visible)
	}

	screen.SetSize(3, 1)
	if term.Width() != MinWidth || term.Height() != MinHeight {
		t.Errorf("size = %dx%d, want minimums", term.Width(), term.Height())
	}
	term.Close()
	term.Close()
}
