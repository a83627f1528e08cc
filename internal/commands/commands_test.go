package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/config"
	"github.com/xonecas/amble/internal/input"
	"github.com/xonecas/amble/internal/modes"
	"github.com/xonecas/amble/internal/view"
)

var (
	enter  = input.Special(input.KeyEnter)
	escape = input.Special(input.KeyEsc)
)

func newTestApp(t *testing.T) *app.Application {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	term, err := view.NewTerminalWithScreen(screen)
	if err != nil {
		t.Fatal(err)
	}
	screen.SetSize(60, 12)

	registry := Registry()
	km, err := BuildKeymap(registry, "")
	if err != nil {
		t.Fatal(err)
	}
	a, err := app.New(context.Background(), app.Options{
		Terminal:      term,
		Preferences:   config.Default(),
		Keymap:        km,
		Commands:      registry,
		WorkspacePath: t.TempDir(),
	})
	if err != nil {
		t.Fatal(err)
	}
	a.Clipboard = app.NewLocalClipboard()
	t.Cleanup(a.View.Close)
	return a
}

func openText(t *testing.T, a *app.Application, text string) *buffer.Buffer {
	t.Helper()
	b := buffer.FromString(text)
	a.Workspace.AddBuffer(b)
	a.AddBuffer(b)
	return b
}

func press(t *testing.T, a *app.Application, keys ...input.Key) {
	t.Helper()
	for _, k := range keys {
		a.HandleEvent(input.KeyEvent{Key: k})
		if err := a.LastError(); err != nil {
			t.Fatalf("key %s in %s mode: %v", k, a.Mode.Name(), err)
		}
	}
}

func typeText(t *testing.T, a *app.Application, s string) {
	t.Helper()
	for _, r := range s {
		press(t, a, input.Char(r))
	}
}

func sameCommand(a, b app.Command) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func TestDefaultKeymapResolvesAgainstRegistry(t *testing.T) {
	km, err := BuildKeymap(Registry(), "")
	if err != nil {
		t.Fatal(err)
	}
	for _, mode := range []string{
		"normal", "insert", "jump", "line_jump", "select", "select_line",
		"search", "search_insert", "search_select", "search_select_insert",
		"path", "confirm",
	} {
		if _, ok := km[mode]; !ok {
			t.Errorf("default keymap missing mode %q", mode)
		}
	}
	cmds, ok := km.CommandsFor("insert", input.Char('q'))
	if !ok || len(cmds) != 1 || !sameCommand(cmds[0], InsertChar) {
		t.Errorf("insert wildcard = %v %v", cmds, ok)
	}
}

func TestBuildKeymapMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keymap.yml")
	doc := "normal:\n  x: [buffer.undo, buffer.redo]\nunknown:\n  y: buffer.save\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	km, err := BuildKeymap(Registry(), path)
	if err != nil {
		t.Fatal(err)
	}
	cmds, _ := km.CommandsFor("normal", input.Char('x'))
	if len(cmds) != 2 || !sameCommand(cmds[0], Undo) || !sameCommand(cmds[1], Redo) {
		t.Errorf("merged x binding = %v", cmds)
	}
	cmds, _ = km.CommandsFor("normal", input.Char('j'))
	if len(cmds) != 1 || !sameCommand(cmds[0], cursorCommands["cursor.move_down"]) {
		t.Errorf("default j binding lost: %v", cmds)
	}
	// Modes missing from the built-in keymap are dropped, not created.
	if _, ok := km["unknown"]; ok {
		t.Error("merge created mode \"unknown\"")
	}
}

func TestBuildKeymapErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keymap.yml")
	if err := os.WriteFile(path, []byte("normal:\n  x: buffer.nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := BuildKeymap(Registry(), path); err == nil {
		t.Error("expected an error for an unknown command")
	}
	if _, err := BuildKeymap(Registry(), filepath.Join(t.TempDir(), "missing.yml")); err != nil {
		t.Errorf("missing user keymap: %v", err)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != len(Registry()) {
		t.Fatalf("%d names for %d commands", len(names), len(Registry()))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted at %q, %q", names[i-1], names[i])
		}
	}
}

func TestInsertUndoesAsOneGroup(t *testing.T) {
	a := newTestApp(t)
	press(t, a, input.Ctrl('n'), input.Char('i'))
	typeText(t, a, "hi")
	press(t, a, enter)
	typeText(t, a, "yo")
	press(t, a, escape)

	b, _ := a.CurrentBuffer()
	if got := b.Data(); got != "hi\nyo" {
		t.Fatalf("data = %q", got)
	}
	press(t, a, input.Char('u'))
	if got := b.Data(); got != "" {
		t.Errorf("after undo data = %q", got)
	}
	press(t, a, input.Char('r'))
	if got := b.Data(); got != "hi\nyo" {
		t.Errorf("after redo data = %q", got)
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	a := newTestApp(t)
	b := openText(t, a, "ab\ncd")
	b.Cursor.MoveTo(buffer.Position{Line: 1})
	press(t, a, input.Char('i'), input.Special(input.KeyBackspace))
	if got := b.Data(); got != "abcd" {
		t.Errorf("data = %q", got)
	}
	if b.Cursor.Position != (buffer.Position{Line: 0, Offset: 2}) {
		t.Errorf("cursor = %v", b.Cursor.Position)
	}
}

func TestInsertCharRequiresCharacter(t *testing.T) {
	a := newTestApp(t)
	openText(t, a, "")
	a.View.SetLastKey(enter)
	if err := InsertChar(a); !errors.Is(err, ErrNotCharacter) {
		t.Errorf("err = %v, want %v", err, ErrNotCharacter)
	}
}

func TestDeleteLineAndPaste(t *testing.T) {
	a := newTestApp(t)
	b := openText(t, a, "one\ntwo\nthree")

	press(t, a, input.Char('X'))
	if got := b.Data(); got != "two\nthree" {
		t.Fatalf("after delete data = %q", got)
	}
	if got := a.Clipboard.Get(); got != (app.ClipboardContent{Text: "one\n", Block: true}) {
		t.Fatalf("clipboard = %+v", got)
	}
	press(t, a, input.Char('p'))
	if got := b.Data(); got != "two\none\nthree" {
		t.Errorf("after paste data = %q", got)
	}
	if b.Cursor.Position != (buffer.Position{Line: 1}) {
		t.Errorf("cursor = %v", b.Cursor.Position)
	}
}

func TestJumpMovesCursorToTag(t *testing.T) {
	a := newTestApp(t)
	b := openText(t, a, "first second\nthird fourth")

	press(t, a, input.Char('f'))
	if _, ok := a.Mode.(*modes.Jump); !ok {
		t.Fatalf("mode = %s", a.Mode.Name())
	}
	if err := a.Render(); err != nil {
		t.Fatal(err)
	}
	press(t, a, input.Char('c'))

	if b.Cursor.Position != (buffer.Position{Line: 1}) {
		t.Errorf("cursor = %v", b.Cursor.Position)
	}
	if _, ok := a.Mode.(modes.Normal); !ok {
		t.Errorf("mode = %s, want normal", a.Mode.Name())
	}
}

func TestJumpExtendsSelection(t *testing.T) {
	a := newTestApp(t)
	b := openText(t, a, "first second\nthird fourth")

	press(t, a, input.Char('v'), input.Char('f'))
	if err := a.Render(); err != nil {
		t.Fatal(err)
	}
	press(t, a, input.Char('d'))

	sel, ok := a.Mode.(*modes.Select)
	if !ok {
		t.Fatalf("mode = %s, want select", a.Mode.Name())
	}
	want := buffer.Position{Line: 1, Offset: 6}
	if b.Cursor.Position != want {
		t.Errorf("cursor = %v, want %v", b.Cursor.Position, want)
	}
	if sel.Anchor != (buffer.Position{}) {
		t.Errorf("anchor = %v", sel.Anchor)
	}
}

func TestLineJump(t *testing.T) {
	a := newTestApp(t)
	b := openText(t, a, "abcdef\nb\nxyz\nd")
	b.Cursor.MoveTo(buffer.Position{Line: 0, Offset: 2})

	press(t, a, input.Char('g'))
	typeText(t, a, "3")
	press(t, a, enter)
	if b.Cursor.Position != (buffer.Position{Line: 2, Offset: 2}) {
		t.Errorf("cursor = %v, want 3:3", b.Cursor.Position)
	}

	press(t, a, input.Char('g'))
	typeText(t, a, "99")
	press(t, a, enter)
	if b.Cursor.Position != (buffer.Position{Line: 3, Offset: 1}) {
		t.Errorf("clamped cursor = %v, want 4:2", b.Cursor.Position)
	}
}

func TestLineJumpKeepsPromptOnBadInput(t *testing.T) {
	a := newTestApp(t)
	b := openText(t, a, "a\nb\nc")

	press(t, a, input.Char('g'))
	typeText(t, a, "x")
	a.HandleEvent(input.KeyEvent{Key: enter})
	if a.LastError() == nil {
		t.Fatal("expected an error for a non-numeric line")
	}
	m, ok := a.Mode.(*modes.LineJump)
	if !ok || m.Input != "x" {
		t.Fatalf("mode = %#v, want the line jump prompt kept", a.Mode)
	}

	press(t, a, input.Special(input.KeyBackspace))
	typeText(t, a, "2")
	press(t, a, enter)
	if b.Cursor.Line != 1 {
		t.Errorf("line = %d, want 1", b.Cursor.Line)
	}
}

func TestSearchCyclesResults(t *testing.T) {
	a := newTestApp(t)
	b := openText(t, a, "alpha beta\nbeta gamma")

	press(t, a, input.Char('/'))
	typeText(t, a, "beta")
	press(t, a, enter)
	if b.Cursor.Position != (buffer.Position{Line: 0, Offset: 6}) {
		t.Fatalf("after accept cursor = %v", b.Cursor.Position)
	}
	if a.SearchQuery != "beta" {
		t.Errorf("query = %q", a.SearchQuery)
	}

	press(t, a, input.Char('n'))
	if b.Cursor.Position != (buffer.Position{Line: 1}) {
		t.Errorf("next cursor = %v", b.Cursor.Position)
	}
	press(t, a, input.Char('n'))
	if b.Cursor.Position != (buffer.Position{Line: 0, Offset: 6}) {
		t.Errorf("wrapped cursor = %v", b.Cursor.Position)
	}
	press(t, a, input.Char('N'))
	if b.Cursor.Position != (buffer.Position{Line: 1}) {
		t.Errorf("previous cursor = %v", b.Cursor.Position)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	a := newTestApp(t)
	openText(t, a, "text")
	press(t, a, input.Char('/'))
	a.HandleEvent(input.KeyEvent{Key: enter})
	if !errors.Is(a.LastError(), app.ErrSearchQueryMissing) {
		t.Errorf("err = %v", a.LastError())
	}
	press(t, a, escape)
	if err := MoveToNextResult(a); !errors.Is(err, app.ErrSearchQueryMissing) {
		t.Errorf("next without query err = %v", err)
	}
}

func TestSelectLineDelete(t *testing.T) {
	a := newTestApp(t)
	b := openText(t, a, "one\ntwo\nthree\nfour")
	b.Cursor.MoveTo(buffer.Position{Line: 1})

	press(t, a, input.Char('V'), input.Char('j'), input.Char('d'))
	if got := b.Data(); got != "one\nfour" {
		t.Errorf("data = %q", got)
	}
	if got := a.Clipboard.Get(); got != (app.ClipboardContent{Text: "two\nthree\n", Block: true}) {
		t.Errorf("clipboard = %+v", got)
	}
	if _, ok := a.Mode.(modes.Normal); !ok {
		t.Errorf("mode = %s", a.Mode.Name())
	}
}

func TestSelectCopy(t *testing.T) {
	a := newTestApp(t)
	openText(t, a, "hello world")

	press(t, a, input.Char('v'), input.Char('w'), input.Char('y'))
	if got := a.Clipboard.Get(); got != (app.ClipboardContent{Text: "hello "}) {
		t.Errorf("clipboard = %+v", got)
	}
	if err := CopySelection(a); !errors.Is(err, ErrNotSelectMode) {
		t.Errorf("copy outside select err = %v", err)
	}
}

func TestCloseModifiedBufferAsksFirst(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(a.Workspace.Path, "notes.txt")
	if err := os.WriteFile(path, []byte("notes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := a.OpenPath(path); err != nil {
		t.Fatal(err)
	}
	press(t, a, input.Char('x'))

	press(t, a, input.Char('q'))
	if a.Mode.Name() != "confirm" {
		t.Fatalf("mode = %s, want confirm", a.Mode.Name())
	}
	press(t, a, input.Char('n'))
	if _, err := a.CurrentBuffer(); err != nil {
		t.Fatalf("declined close removed the buffer: %v", err)
	}

	press(t, a, input.Char('q'), input.Char('y'))
	if _, err := a.CurrentBuffer(); !errors.Is(err, app.ErrBufferMissing) {
		t.Errorf("err = %v, want %v", err, app.ErrBufferMissing)
	}
}

func TestSaveWithoutPathPromptsForOne(t *testing.T) {
	a := newTestApp(t)
	press(t, a, input.Ctrl('n'), input.Char('i'))
	typeText(t, a, "draft")
	press(t, a, escape, input.Char('s'))

	p, ok := a.Mode.(*modes.Path)
	if !ok {
		t.Fatalf("mode = %s, want path", a.Mode.Name())
	}
	if !p.SaveOnAccept {
		t.Error("path prompt should save on accept")
	}
	typeText(t, a, "draft.txt")
	press(t, a, enter)

	data, err := os.ReadFile(filepath.Join(a.Workspace.Path, "draft.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "draft\n" {
		t.Errorf("saved %q", data)
	}
}

func TestAcceptEmptyPath(t *testing.T) {
	a := newTestApp(t)
	openText(t, a, "")
	a.SwitchMode(&modes.Path{})
	if err := AcceptPath(a); !errors.Is(err, app.ErrPathMissing) {
		t.Errorf("err = %v", err)
	}
}

func TestCommandModeRunsSelection(t *testing.T) {
	a := newTestApp(t)
	press(t, a, input.Ctrl('p'))
	typeText(t, a, "application.exit")
	press(t, a, enter)
	if _, ok := a.Mode.(modes.Exit); !ok {
		t.Errorf("mode = %s, want exit", a.Mode.Name())
	}
}

func TestThemeModeChangesTheme(t *testing.T) {
	a := newTestApp(t)
	press(t, a, input.Char('T'))
	typeText(t, a, "dracula")
	press(t, a, enter)
	if a.Preferences.Theme != "dracula" {
		t.Errorf("theme = %q", a.Preferences.Theme)
	}
	if _, ok := a.Mode.(modes.Normal); !ok {
		t.Errorf("mode = %s", a.Mode.Name())
	}
}

func TestAcceptWithoutResults(t *testing.T) {
	a := newTestApp(t)
	press(t, a, input.Char('T'))
	typeText(t, a, "zzzzzz")
	a.HandleEvent(input.KeyEvent{Key: enter})
	if !errors.Is(a.LastError(), app.ErrSelectedIndexOutOfRange) {
		t.Errorf("err = %v", a.LastError())
	}
}

func TestWorkspaceCycling(t *testing.T) {
	a := newTestApp(t)
	first := openText(t, a, "1")
	second := openText(t, a, "2")

	press(t, a, input.Special(input.KeyTab))
	if b, _ := a.CurrentBuffer(); b != first {
		t.Errorf("next buffer = %q", b.Data())
	}
	if err := PreviousBuffer(a); err != nil {
		t.Fatal(err)
	}
	if b, _ := a.CurrentBuffer(); b != second {
		t.Errorf("previous buffer = %q", b.Data())
	}
}

func TestCommandsNeedBuffer(t *testing.T) {
	a := newTestApp(t)
	for _, name := range []string{"buffer.save", "cursor.move_down", "view.scroll_down", "application.switch_to_jump_mode"} {
		if err := a.Commands[name](a); !errors.Is(err, app.ErrBufferMissing) {
			t.Errorf("%s err = %v, want %v", name, err, app.ErrBufferMissing)
		}
	}
}

func TestReloadPreferencesKeepsConfigOnError(t *testing.T) {
	a := newTestApp(t)
	a.ConfigDir = t.TempDir()
	if err := os.WriteFile(config.PreferencesPath(a.ConfigDir), []byte("theme = \"dracula\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ReloadPreferences(a); err != nil {
		t.Fatal(err)
	}
	if a.Preferences.Theme != "dracula" {
		t.Fatalf("theme = %q", a.Preferences.Theme)
	}

	if err := os.WriteFile(config.KeymapPath(a.ConfigDir), []byte("normal:\n  x: nope.nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(config.PreferencesPath(a.ConfigDir), []byte("theme = \"monokai\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ReloadPreferences(a); err == nil {
		t.Fatal("expected keymap error")
	}
	if a.Preferences.Theme != "dracula" {
		t.Errorf("failed reload changed theme to %q", a.Preferences.Theme)
	}
}
