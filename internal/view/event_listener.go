package view

import "github.com/xonecas/amble/internal/input"

// EventListener forwards terminal events to the main loop until its kill
// switch fires.
type EventListener struct {
	terminal   Terminal
	events     chan<- input.Event
	killswitch <-chan struct{}
}

// StartEventListener runs a listener on its own goroutine.
func StartEventListener(terminal Terminal, events chan<- input.Event, killswitch <-chan struct{}) {
	l := &EventListener{terminal: terminal, events: events, killswitch: killswitch}
	go l.listen()
}

func (l *EventListener) listen() {
	for {
		select {
		case <-l.killswitch:
			return
		default:
		}

		ev, ok := l.terminal.Listen()
		if !ok {
			continue
		}
		select {
		case l.events <- ev:
		case <-l.killswitch:
			return
		}
	}
}
