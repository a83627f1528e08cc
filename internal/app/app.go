// Package app holds the editor's application state and runs its event loop:
// each event is dispatched through the keymap of the active mode, then the
// screen is redrawn.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/config"
	"github.com/xonecas/amble/internal/git"
	"github.com/xonecas/amble/internal/input"
	"github.com/xonecas/amble/internal/modes"
	"github.com/xonecas/amble/internal/store"
	"github.com/xonecas/amble/internal/view"
)

// Precondition failures. They abort the rest of a command sequence and are
// shown in the status line.
var (
	ErrBufferMissing           = errors.New("no buffer available")
	ErrCurrentLineMissing      = errors.New("the current line couldn't be found in the buffer")
	ErrPathMissing             = errors.New("the buffer has no path")
	ErrSearchQueryMissing      = errors.New("no search query")
	ErrNoSearchResults         = errors.New("no search results available")
	ErrSelectedIndexOutOfRange = errors.New("selected index is out of range")
)

// Command is a named operation run against the application. A failing command
// stops the remainder of its key's command sequence.
type Command func(*Application) error

// Options configure a new Application.
type Options struct {
	Terminal      view.Terminal
	Preferences   *config.Preferences
	ConfigDir     string
	Keymap        input.KeyMap[Command]
	Commands      map[string]Command
	Store         *store.Store
	WorkspacePath string
}

// Application is the state every command operates on. It is owned by the
// main loop goroutine.
type Application struct {
	Workspace   *buffer.Workspace
	View        *view.View
	Mode        modes.Mode
	Keymap      input.KeyMap[Command]
	Preferences *config.Preferences
	ConfigDir   string
	Store       *store.Store
	Clipboard   *Clipboard
	// Commands is the registry keymaps and Command mode resolve names
	// against.
	Commands map[string]Command
	// SearchQuery is the last accepted in-buffer search query.
	SearchQuery string

	ctx           context.Context
	lastError     error
	reportedError error
	gitStatus     map[string]git.Status
}

// New creates an application with an empty workspace in Normal mode.
func New(ctx context.Context, opts Options) (*Application, error) {
	if opts.Terminal == nil {
		return nil, errors.New("app: terminal is required")
	}
	prefs := opts.Preferences
	if prefs == nil {
		prefs = config.Default()
	}
	a := &Application{
		Workspace:   buffer.NewWorkspace(opts.WorkspacePath),
		View:        view.New(opts.Terminal, prefs.Theme, RenderOptions(prefs)),
		Mode:        modes.Normal{},
		Keymap:      opts.Keymap,
		Preferences: prefs,
		ConfigDir:   opts.ConfigDir,
		Store:       opts.Store,
		Clipboard:   NewClipboard(),
		Commands:    opts.Commands,
		ctx:         ctx,
		gitStatus:   make(map[string]git.Status),
	}
	return a, nil
}

// RenderOptions derives the renderer settings from prefs.
func RenderOptions(prefs *config.Preferences) view.RenderOptions {
	return view.RenderOptions{
		TabWidth:        prefs.TabWidth,
		LineLengthGuide: prefs.LineLengthGuide,
		LineWrapping:    prefs.LineWrapping,
	}
}

// Context is the application's lifetime context.
func (a *Application) Context() context.Context { return a.ctx }

// CommandNames lists the registered commands, sorted.
func (a *Application) CommandNames() []string {
	names := make([]string, 0, len(a.Commands))
	for name := range a.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run draws the screen and processes events until the mode becomes Exit or
// ctx is cancelled. Sessions are saved and the terminal restored on return.
func (a *Application) Run() error {
	defer a.shutdown()

	if err := a.Render(); err != nil {
		return err
	}
	for {
		select {
		case <-a.ctx.Done():
			return nil
		case ev := <-a.View.Events():
			a.HandleEvent(ev)
		}
		if _, ok := a.Mode.(modes.Exit); ok {
			return nil
		}
		if err := a.Render(); err != nil {
			log.Error().Err(err).Msg("Render failed")
			a.lastError = err
		}
	}
}

func (a *Application) shutdown() {
	for _, b := range a.Workspace.Buffers() {
		a.SaveSession(b)
	}
	if open, ok := a.Mode.(*modes.Open); ok {
		open.Cancel()
	}
	a.View.Close()
}

// HandleEvent applies one event. Key presses are dispatched through the
// keymap; their failure becomes the error shown until the next event.
func (a *Application) HandleEvent(ev input.Event) {
	a.lastError = nil
	switch ev := ev.(type) {
	case input.KeyEvent:
		a.View.SetLastKey(ev.Key)
		if err := a.Dispatch(ev.Key); err != nil {
			log.Debug().Err(err).Str("mode", a.Mode.Name()).Str("key", ev.Key.String()).Msg("Command failed")
			a.lastError = err
			a.reportedError = err
		}
	case input.ResizeEvent:
		if b := a.Workspace.CurrentBuffer(); b != nil {
			_ = a.View.ScrollToCursor(b)
		}
	case input.OpenModeIndexComplete:
		if open, ok := a.Mode.(*modes.Open); ok && ev.Source == open {
			open.SetIndex(ev.Paths, ev.Err)
		}
	}
}

// Dispatch runs the commands bound to key in the active mode.
func (a *Application) Dispatch(key input.Key) error {
	cmds, ok := a.Keymap.CommandsFor(a.Mode.Name(), key)
	if !ok {
		return nil
	}
	return RunCommands(a, cmds)
}

// RunCommands runs cmds in order and stops at the first failure. Effects of
// the commands that already ran are kept.
func RunCommands(a *Application, cmds []Command) error {
	for _, cmd := range cmds {
		if err := cmd(a); err != nil {
			return err
		}
	}
	return nil
}

// LastError is the failure of the most recent event, if any.
func (a *Application) LastError() error { return a.lastError }

// SetError records err as the failure to show.
func (a *Application) SetError(err error) {
	a.lastError = err
	if err != nil {
		a.reportedError = err
	}
}

// ReportedError is the most recent failure shown, kept after the status line
// has been cleared.
func (a *Application) ReportedError() error { return a.reportedError }

// CurrentBuffer returns the active buffer or ErrBufferMissing.
func (a *Application) CurrentBuffer() (*buffer.Buffer, error) {
	b := a.Workspace.CurrentBuffer()
	if b == nil {
		return nil, ErrBufferMissing
	}
	return b, nil
}

// OpenPath opens path in the workspace, or switches to it when it is already
// open, restoring its remembered cursor and scroll position.
func (a *Application) OpenPath(path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.Workspace.Path, path)
	}
	path = filepath.Clean(path)
	known := slices.ContainsFunc(a.Workspace.Buffers(), func(b *buffer.Buffer) bool {
		return b.Path == path
	})

	b, err := a.Workspace.OpenBuffer(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if known {
		return nil
	}
	a.AddBuffer(b)
	a.restoreSession(b)
	a.RefreshGitStatus(b)
	return nil
}

// AddBuffer prepares a buffer that is already current in the workspace for
// display.
func (a *Application) AddBuffer(b *buffer.Buffer) {
	if name, ok := a.Preferences.SyntaxFor(b.Path); ok {
		if err := b.SetSyntax(name); err != nil {
			log.Warn().Err(err).Str("path", b.Path).Msg("Configured syntax is unknown")
		}
	}
	a.View.InitializeBuffer(b)
}

// CloseCurrentBuffer closes the active buffer and forgets its view state.
func (a *Application) CloseCurrentBuffer() error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	a.SaveSession(b)
	if _, err := a.Workspace.CloseCurrentBuffer(); err != nil {
		return err
	}
	a.View.ForgetBuffer(b.ID)
	delete(a.gitStatus, b.Path)
	return nil
}

func (a *Application) restoreSession(b *buffer.Buffer) {
	if b.Path == "" {
		return
	}
	sess, ok := a.Store.Load(b.Path)
	if !ok {
		return
	}
	b.Cursor.MoveTo(buffer.Position{Line: sess.Line, Offset: sess.Offset})
	if err := a.View.SetLineOffset(b, min(sess.Scroll, max(b.LineCount()-1, 0))); err != nil {
		log.Warn().Err(err).Str("path", b.Path).Msg("Failed to restore scroll offset")
	}
	_ = a.View.ScrollToCursor(b)
}

// SaveSession remembers the cursor and scroll position of b.
func (a *Application) SaveSession(b *buffer.Buffer) {
	if b.Path == "" || a.Store == nil {
		return
	}
	offset, _, err := a.View.VisibleRegion(b)
	if err != nil {
		return
	}
	sess := store.Session{Path: b.Path, Line: b.Cursor.Line, Offset: b.Cursor.Offset, Scroll: offset}
	if err := a.Store.Save(sess); err != nil {
		log.Warn().Err(err).Str("path", b.Path).Msg("Failed to save session")
	}
}

// RefreshGitStatus re-reads the git status shown for b.
func (a *Application) RefreshGitStatus(b *buffer.Buffer) {
	if b.Path == "" {
		return
	}
	a.gitStatus[b.Path] = git.FileStatus(a.ctx, b.Path)
}

// SwitchMode replaces the active mode, cancelling background work owned by
// the mode being left.
func (a *Application) SwitchMode(m modes.Mode) {
	if open, ok := a.Mode.(*modes.Open); ok && open != m {
		open.Cancel()
	}
	a.Mode = m
}
