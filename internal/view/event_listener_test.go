package view

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/input"
)

type scriptedTerminal struct {
	queue chan input.Event
}

func (s *scriptedTerminal) Listen() (input.Event, bool) {
	select {
	case ev := <-s.queue:
		return ev, true
	case <-time.After(5 * time.Millisecond):
		return nil, false
	}
}

func (s *scriptedTerminal) Clear()                     {}
func (s *scriptedTerminal) Present()                   {}
func (s *scriptedTerminal) Width() int                 { return 40 }
func (s *scriptedTerminal) Height() int                { return 10 }
func (s *scriptedTerminal) SetCursor(*buffer.Position) {}
func (s *scriptedTerminal) Close()                     {}

func (s *scriptedTerminal) Print(buffer.Position, Style, tcell.Color, tcell.Color, string) {}

func TestEventListenerForwardsInOrderUntilKilled(t *testing.T) {
	term := &scriptedTerminal{queue: make(chan input.Event, 8)}
	events := make(chan input.Event)
	kill := make(chan struct{})
	StartEventListener(term, events, kill)

	term.queue <- input.KeyEvent{Key: input.Char('a')}
	term.queue <- input.ResizeEvent{}
	term.queue <- input.KeyEvent{Key: input.Char('b')}

	want := []input.Event{input.KeyEvent{Key: input.Char('a')}, input.ResizeEvent{}, input.KeyEvent{Key: input.Char('b')}}
	for i, w := range want {
		select {
		case got := <-events:
			if got != w {
				t.Fatalf("event %d = %#v, want %#v", i, got, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("event %d not forwarded", i)
		}
	}

	close(kill)
	time.Sleep(20 * time.Millisecond)
	term.queue <- input.KeyEvent{Key: input.Char('c')}
	select {
	case ev := <-events:
		t.Fatalf("listener forwarded %#v after the kill switch", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
