// Package view renders buffers to the terminal: the terminal abstraction and
// its tcell implementation, theme color mapping, the incremental buffer
// renderer with its per-buffer highlight cache and scroll regions, and the
// listener that feeds terminal events to the main loop.
package view

import (
	"errors"

	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/input"
)

// ErrScrollToCursorFailed is returned when a buffer was never initialized in
// the view.
var ErrScrollToCursorFailed = errors.New("couldn't scroll to cursor: buffer not known to the view")

const statusLineHeight = 1

type bufferState struct {
	cache  *RenderCache
	region *ScrollableRegion
}

// View owns the terminal, the theme and the rendering state of every open
// buffer, keyed by buffer ID.
type View struct {
	terminal Terminal
	theme    *Theme
	opts     RenderOptions
	buffers  map[buffer.ID]*bufferState
	lastKey  *input.Key

	events     chan input.Event
	killswitch chan struct{}
}

// New creates a view and starts listening for terminal events.
func New(terminal Terminal, theme string, opts RenderOptions) *View {
	v := &View{
		terminal:   terminal,
		theme:      NewTheme(theme),
		opts:       opts,
		buffers:    make(map[buffer.ID]*bufferState),
		events:     make(chan input.Event, 32),
		killswitch: make(chan struct{}),
	}
	StartEventListener(terminal, v.events, v.killswitch)
	return v
}

// Events is the main loop's event source.
func (v *View) Events() <-chan input.Event { return v.events }

// EventSender lets background tasks post events to the main loop.
func (v *View) EventSender() chan<- input.Event { return v.events }

// Close stops the listener and restores the terminal.
func (v *View) Close() {
	select {
	case <-v.killswitch:
	default:
		close(v.killswitch)
	}
	v.terminal.Close()
}

func (v *View) Width() int  { return v.terminal.Width() }
func (v *View) Height() int { return v.terminal.Height() }

// BufferHeight is the number of rows available to buffer content.
func (v *View) BufferHeight() int {
	return max(v.terminal.Height()-statusLineHeight, 1)
}

func (v *View) Theme() *Theme { return v.theme }

// SetTheme switches themes. Cached highlight checkpoints stay valid: they
// record lexer positions, not colors.
func (v *View) SetTheme(name string) {
	v.theme = NewTheme(name)
}

func (v *View) SetOptions(opts RenderOptions) { v.opts = opts }

// BuildPresenter starts a new frame sized to the terminal.
func (v *View) BuildPresenter() *Presenter {
	return &Presenter{
		view:  v,
		cells: NewTerminalBuffer(v.terminal.Width(), v.terminal.Height()),
	}
}

// InitializeBuffer registers b and hooks its change notifications to cache
// invalidation.
func (v *View) InitializeBuffer(b *buffer.Buffer) {
	state := &bufferState{cache: NewRenderCache(), region: NewScrollableRegion(v.BufferHeight())}
	v.buffers[b.ID] = state
	b.OnChange = func(p buffer.Position) {
		state.cache.InvalidateFrom(p.Line)
	}
}

// ForgetBuffer drops the cache and scroll state of a closed buffer.
func (v *View) ForgetBuffer(id buffer.ID) {
	delete(v.buffers, id)
}

func (v *View) stateFor(b *buffer.Buffer) (*bufferState, error) {
	state, ok := v.buffers[b.ID]
	if !ok {
		return nil, ErrScrollToCursorFailed
	}
	state.region.SetHeight(v.BufferHeight())
	return state, nil
}

// RenderCache returns the highlight cache of b.
func (v *View) RenderCache(b *buffer.Buffer) (*RenderCache, bool) {
	state, ok := v.buffers[b.ID]
	if !ok {
		return nil, false
	}
	return state.cache, true
}

// InvalidateRenderCache forgets every checkpoint of b, e.g. after its syntax
// changes.
func (v *View) InvalidateRenderCache(b *buffer.Buffer) {
	if state, ok := v.buffers[b.ID]; ok {
		state.cache.InvalidateFrom(0)
	}
}

// ScrollToCursor scrolls the region of b just enough to show its cursor line.
func (v *View) ScrollToCursor(b *buffer.Buffer) error {
	state, err := v.stateFor(b)
	if err != nil {
		return err
	}
	state.region.ScrollIntoView(b.Cursor.Line)
	return nil
}

// ScrollToCenter puts the cursor line of b in the middle of its region.
func (v *View) ScrollToCenter(b *buffer.Buffer) error {
	state, err := v.stateFor(b)
	if err != nil {
		return err
	}
	state.region.ScrollToCenter(b.Cursor.Line)
	return nil
}

// ScrollUp scrolls the region of b up by amount lines.
func (v *View) ScrollUp(b *buffer.Buffer, amount int) error {
	state, err := v.stateFor(b)
	if err != nil {
		return err
	}
	state.region.ScrollUp(amount)
	return nil
}

// ScrollDown scrolls the region of b down by amount lines, stopping at its
// last line.
func (v *View) ScrollDown(b *buffer.Buffer, amount int) error {
	state, err := v.stateFor(b)
	if err != nil {
		return err
	}
	state.region.ScrollDown(amount, b.LineCount())
	return nil
}

// VisibleRegion returns the first line shown for b and the viewport height.
func (v *View) VisibleRegion(b *buffer.Buffer) (offset, height int, err error) {
	state, err := v.stateFor(b)
	if err != nil {
		return 0, 0, err
	}
	return state.region.LineOffset(), state.region.Height(), nil
}

// SetLineOffset restores a remembered scroll offset for b.
func (v *View) SetLineOffset(b *buffer.Buffer, offset int) error {
	state, err := v.stateFor(b)
	if err != nil {
		return err
	}
	state.region.SetLineOffset(offset)
	return nil
}

// SetLastKey records k for the status line.
func (v *View) SetLastKey(k input.Key) { v.lastKey = &k }

// LastKey returns the most recent key pressed, if any.
func (v *View) LastKey() (input.Key, bool) {
	if v.lastKey == nil {
		return input.Key{}, false
	}
	return *v.lastKey, true
}
