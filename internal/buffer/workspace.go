package buffer

import (
	"errors"
	"path/filepath"
	"sort"

	"github.com/alecthomas/chroma/v2/lexers"
)

// ErrNoBuffer is returned by workspace operations that need an open buffer.
var ErrNoBuffer = errors.New("no buffer open")

// Workspace owns the open buffers of a project directory.
type Workspace struct {
	Path string

	buffers []*Buffer
	current int
	nextID  ID
}

// NewWorkspace returns an empty workspace rooted at path.
func NewWorkspace(path string) *Workspace {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &Workspace{Path: path, nextID: 1}
}

// OpenBuffer makes the buffer for path current, opening it if needed.
func (w *Workspace) OpenBuffer(path string) (*Buffer, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.Path, path)
	}
	path = filepath.Clean(path)
	for i, b := range w.buffers {
		if b.Path == path {
			w.current = i
			return b, nil
		}
	}
	b, err := Open(path)
	if err != nil {
		return nil, err
	}
	w.AddBuffer(b)
	return b, nil
}

// AddBuffer assigns b an identifier and makes it current.
func (w *Workspace) AddBuffer(b *Buffer) {
	b.ID = w.nextID
	w.nextID++
	w.buffers = append(w.buffers, b)
	w.current = len(w.buffers) - 1
}

// CurrentBuffer returns the selected buffer, or nil when none is open.
func (w *Workspace) CurrentBuffer() *Buffer {
	if len(w.buffers) == 0 {
		return nil
	}
	return w.buffers[w.current]
}

// CloseCurrentBuffer drops the selected buffer and returns it.
func (w *Workspace) CloseCurrentBuffer() (*Buffer, error) {
	if len(w.buffers) == 0 {
		return nil, ErrNoBuffer
	}
	b := w.buffers[w.current]
	w.buffers = append(w.buffers[:w.current], w.buffers[w.current+1:]...)
	if w.current >= len(w.buffers) && w.current > 0 {
		w.current--
	}
	return b, nil
}

// NextBuffer selects the following buffer, wrapping around.
func (w *Workspace) NextBuffer() {
	if len(w.buffers) > 0 {
		w.current = (w.current + 1) % len(w.buffers)
	}
}

// PreviousBuffer selects the preceding buffer, wrapping around.
func (w *Workspace) PreviousBuffer() {
	if len(w.buffers) > 0 {
		w.current = (w.current + len(w.buffers) - 1) % len(w.buffers)
	}
}

// Buffers returns the open buffers in the order they were added.
func (w *Workspace) Buffers() []*Buffer {
	return w.buffers
}

// RelativePath shortens b's path to be relative to the workspace.
func (w *Workspace) RelativePath(b *Buffer) string {
	if b.Path == "" {
		return ""
	}
	if rel, err := filepath.Rel(w.Path, b.Path); err == nil {
		return rel
	}
	return b.Path
}

// Syntaxes lists the names of every known lexer, sorted.
func (w *Workspace) Syntaxes() []string {
	names := lexers.Names(false)
	sort.Strings(names)
	return names
}
