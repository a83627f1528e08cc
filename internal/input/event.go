package input

// Event is a value produced by the terminal listener or a background task and
// consumed by the main loop.
type Event interface {
	event()
}

// KeyEvent carries one decoded keypress.
type KeyEvent struct {
	Key Key
}

// ResizeEvent signals the terminal changed size. Multiple pending resizes are
// delivered as one.
type ResizeEvent struct{}

// OpenModeIndexComplete delivers the result of the background workspace
// index started when Open mode was entered. Source is the mode that started
// the run; a result for any other mode is stale.
type OpenModeIndexComplete struct {
	Source any
	Paths  []string
	Err    error
}

func (KeyEvent) event()              {}
func (ResizeEvent) event()           {}
func (OpenModeIndexComplete) event() {}
