package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/config"
	"github.com/xonecas/amble/internal/input"
	"github.com/xonecas/amble/internal/modes"
	"github.com/xonecas/amble/internal/store"
	"github.com/xonecas/amble/internal/view"
)

func newTestApp(t *testing.T, km input.KeyMap[Command], st *store.Store) (*Application, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	term, err := view.NewTerminalWithScreen(screen)
	if err != nil {
		t.Fatal(err)
	}
	screen.SetSize(60, 12)

	a, err := New(context.Background(), Options{
		Terminal:      term,
		Preferences:   config.Default(),
		Keymap:        km,
		Store:         st,
		WorkspacePath: t.TempDir(),
	})
	if err != nil {
		t.Fatal(err)
	}
	a.Clipboard = NewLocalClipboard()
	t.Cleanup(a.View.Close)
	return a, screen
}

func screenRow(screen tcell.SimulationScreen, row int) string {
	cells, w, _ := screen.GetContents()
	var sb strings.Builder
	for col := 0; col < w; col++ {
		r := cells[row*w+col].Runes
		if len(r) == 0 {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(string(r))
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestDispatchStopsAtFirstFailure(t *testing.T) {
	errB := errors.New("b failed")
	var ran []string
	record := func(name string, err error) Command {
		return func(*Application) error {
			ran = append(ran, name)
			return err
		}
	}
	km := input.KeyMap[Command]{
		"normal": {input.Char('x'): {record("a", nil), record("b", errB), record("c", nil)}},
	}
	a, _ := newTestApp(t, km, nil)

	a.HandleEvent(input.KeyEvent{Key: input.Char('x')})

	if strings.Join(ran, ",") != "a,b" {
		t.Errorf("ran %v, want [a b]", ran)
	}
	if !errors.Is(a.LastError(), errB) {
		t.Errorf("last error = %v, want %v", a.LastError(), errB)
	}
	if k, ok := a.View.LastKey(); !ok || k != input.Char('x') {
		t.Errorf("last key = %v, %v", k, ok)
	}

	// The error only lasts until the next event.
	a.HandleEvent(input.KeyEvent{Key: input.Char('y')})
	if a.LastError() != nil {
		t.Errorf("error survived an unbound key: %v", a.LastError())
	}
}

func TestDispatchUsesActiveMode(t *testing.T) {
	var insertRan bool
	km := input.KeyMap[Command]{
		"normal": {},
		"insert": {input.Special(input.KeyAnyChar): {func(*Application) error {
			insertRan = true
			return nil
		}}},
	}
	a, _ := newTestApp(t, km, nil)

	a.HandleEvent(input.KeyEvent{Key: input.Char('q')})
	if insertRan {
		t.Fatal("insert binding ran in normal mode")
	}
	a.SwitchMode(modes.Insert{})
	a.HandleEvent(input.KeyEvent{Key: input.Char('q')})
	if !insertRan {
		t.Error("insert binding did not run")
	}
}

func TestIndexCompleteEventFillsOpenMode(t *testing.T) {
	a, _ := newTestApp(t, input.KeyMap[Command]{}, nil)
	open := modes.NewOpen(a.Workspace.Path, 5)
	a.SwitchMode(open)

	a.HandleEvent(input.OpenModeIndexComplete{Source: open, Paths: []string{"cmd/main.go", "go.mod"}})
	if !open.Indexed() {
		t.Fatal("open mode not indexed")
	}
	open.Search()
	if got := open.Results(); len(got) != 2 {
		t.Errorf("results = %v", got)
	}
}

func TestIndexCompleteEventFromEarlierOpenModeIgnored(t *testing.T) {
	a, _ := newTestApp(t, input.KeyMap[Command]{}, nil)
	earlier := modes.NewOpen(a.Workspace.Path, 5)
	current := modes.NewOpen(a.Workspace.Path, 5)
	a.SwitchMode(current)

	a.HandleEvent(input.OpenModeIndexComplete{Source: earlier, Err: context.Canceled})
	if current.Message() != modes.IndexingMessage {
		t.Errorf("message = %q, want the pending index message", current.Message())
	}
	if current.Indexed() {
		t.Error("result of an earlier run installed")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSessionRestoredOnReopen(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "sessions.db"), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	a, _ := newTestApp(t, input.KeyMap[Command]{}, st)
	path := writeFile(t, a.Workspace.Path, "notes.txt", strings.Repeat("line\n", 40))

	if err := a.OpenPath(path); err != nil {
		t.Fatal(err)
	}
	b, _ := a.CurrentBuffer()
	b.Cursor.MoveTo(buffer.Position{Line: 30, Offset: 2})
	if err := a.View.ScrollToCursor(b); err != nil {
		t.Fatal(err)
	}
	if err := a.CloseCurrentBuffer(); err != nil {
		t.Fatal(err)
	}
	if a.Workspace.CurrentBuffer() != nil {
		t.Fatal("buffer still open")
	}

	if err := a.OpenPath("notes.txt"); err != nil {
		t.Fatal(err)
	}
	b, _ = a.CurrentBuffer()
	if b.Cursor.Position != (buffer.Position{Line: 30, Offset: 2}) {
		t.Errorf("cursor = %v, want 31:3", b.Cursor.Position)
	}
	offset, height, _ := a.View.VisibleRegion(b)
	if 30 < offset || 30 >= offset+height {
		t.Errorf("cursor line outside region [%d, %d)", offset, offset+height)
	}
}

func TestRenderStatusLine(t *testing.T) {
	a, screen := newTestApp(t, input.KeyMap[Command]{}, nil)
	path := writeFile(t, a.Workspace.Path, "main.go", "package main\n")
	if err := a.OpenPath(path); err != nil {
		t.Fatal(err)
	}

	if err := a.Render(); err != nil {
		t.Fatal(err)
	}
	if got := screenRow(screen, 0); got != " 1 package main" {
		t.Errorf("row 0 = %q", got)
	}
	status := screenRow(screen, 11)
	for _, want := range []string{"NORMAL", "main.go", "1:1"} {
		if !strings.Contains(status, want) {
			t.Errorf("status %q lacks %q", status, want)
		}
	}

	b, _ := a.CurrentBuffer()
	b.Insert("x")
	a.SetError(ErrPathMissing)
	if err := a.Render(); err != nil {
		t.Fatal(err)
	}
	if status := screenRow(screen, 11); !strings.Contains(status, ErrPathMissing.Error()) {
		t.Errorf("status %q does not show the error", status)
	}
}

func TestRenderWithoutBuffer(t *testing.T) {
	a, screen := newTestApp(t, input.KeyMap[Command]{}, nil)
	if err := a.Render(); err != nil {
		t.Fatal(err)
	}
	if got := screenRow(screen, 6); !strings.Contains(got, splash) {
		t.Errorf("row 6 = %q, want splash", got)
	}
}

func TestRenderSearchSelectResults(t *testing.T) {
	a, screen := newTestApp(t, input.KeyMap[Command]{}, nil)
	m := modes.NewTheme([]string{"dracula", "monokai"}, 5)
	m.Search()
	a.SwitchMode(m)

	if err := a.Render(); err != nil {
		t.Fatal(err)
	}
	if got := screenRow(screen, 10); got != " dracula" {
		t.Errorf("best result row = %q", got)
	}
	if got := screenRow(screen, 9); got != " monokai" {
		t.Errorf("second result row = %q", got)
	}
	if got := screenRow(screen, 11); !strings.HasPrefix(got, " THEME") {
		t.Errorf("prompt row = %q", got)
	}
}

func TestClipboardPrefersExternalText(t *testing.T) {
	system := ""
	c := &Clipboard{
		read:  func() (string, error) { return system, nil },
		write: func(s string) error { system = s; return nil },
	}
	c.Set(ClipboardContent{Text: "line\n", Block: true})
	if got := c.Get(); !got.Block || got.Text != "line\n" {
		t.Errorf("got %+v", got)
	}
	system = "other"
	if got := c.Get(); got.Block || got.Text != "other" {
		t.Errorf("got %+v", got)
	}
}
