package buffer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInsertDoesNotMoveCursor(t *testing.T) {
	b := FromString("world")
	b.Insert("hello ")
	if got := b.Data(); got != "hello world" {
		t.Fatalf("data = %q", got)
	}
	if b.Cursor.Position != (Position{}) {
		t.Errorf("cursor moved to %v", b.Cursor.Position)
	}
	if !b.Modified() {
		t.Error("expected buffer to be modified")
	}
}

func TestInsertMultiline(t *testing.T) {
	b := FromString("ac")
	b.InsertAt(Position{Line: 0, Offset: 1}, "b\nx\ny")
	if got := b.Data(); got != "ab\nx\nyc" {
		t.Fatalf("data = %q", got)
	}
	if b.LineCount() != 3 {
		t.Errorf("line count = %d", b.LineCount())
	}
}

func TestDeleteJoinsLines(t *testing.T) {
	b := FromString("ab\ncd")
	b.Cursor.MoveTo(Position{Line: 0, Offset: 2})
	b.Delete()
	if got := b.Data(); got != "abcd" {
		t.Fatalf("data = %q", got)
	}
}

func TestDeleteGrapheme(t *testing.T) {
	b := FromString("éx")
	b.Delete()
	if got := b.Data(); got != "x" {
		t.Fatalf("data = %q", got)
	}
}

func TestReadRange(t *testing.T) {
	b := FromString("one\ntwo\nthree")
	got, ok := b.Read(NewRange(Position{Line: 0, Offset: 1}, Position{Line: 2, Offset: 2}))
	if !ok || got != "ne\ntwo\nth" {
		t.Fatalf("read = %q, %v", got, ok)
	}
	got, _ = b.Read(NewLineRange(1, 2).ToRange())
	if got != "two\nthree" {
		t.Errorf("line range read = %q", got)
	}
}

func TestUndoRedoGroup(t *testing.T) {
	b := FromString("abc")
	b.StartOperationGroup()
	b.InsertAt(Position{Offset: 3}, "d")
	b.InsertAt(Position{Offset: 4}, "e")
	b.EndOperationGroup()
	b.InsertAt(Position{}, "z")

	if !b.Undo() || b.Data() != "abcde" {
		t.Fatalf("after first undo: %q", b.Data())
	}
	if !b.Undo() || b.Data() != "abc" {
		t.Fatalf("after second undo: %q", b.Data())
	}
	if b.Undo() {
		t.Error("undo with empty history should report false")
	}
	if !b.Redo() || b.Data() != "abcde" {
		t.Fatalf("after redo: %q", b.Data())
	}
	b.InsertAt(Position{}, "q")
	if b.Redo() {
		t.Error("a new edit should clear the redo stack")
	}
}

func TestUndoClosesOpenGroup(t *testing.T) {
	b := FromString("")
	b.StartOperationGroup()
	b.Insert("abc")
	if !b.Undo() {
		t.Fatal("expected undo to close and revert the open group")
	}
	if b.Data() != "" {
		t.Errorf("data = %q", b.Data())
	}
}

func TestOnChangeReportsEarliestPosition(t *testing.T) {
	b := FromString("a\nb\nc")
	var got []Position
	b.OnChange = func(p Position) { got = append(got, p) }
	b.DeleteRange(NewRange(Position{Line: 2}, Position{Line: 1, Offset: 1}))
	if len(got) != 1 || got[0] != (Position{Line: 1, Offset: 1}) {
		t.Fatalf("changes = %v", got)
	}
}

func TestCursorStickyOffset(t *testing.T) {
	b := FromString("long line\nx\nanother line")
	b.Cursor.MoveTo(Position{Line: 0, Offset: 6})
	b.Cursor.MoveDown()
	if b.Cursor.Position != (Position{Line: 1, Offset: 1}) {
		t.Fatalf("cursor = %v", b.Cursor.Position)
	}
	b.Cursor.MoveDown()
	if b.Cursor.Position != (Position{Line: 2, Offset: 6}) {
		t.Fatalf("cursor = %v", b.Cursor.Position)
	}
	if b.Cursor.MoveDown() {
		t.Error("moved past last line")
	}
	if b.Cursor.MoveTo(Position{Line: 9}) {
		t.Error("moved out of bounds")
	}
}

func TestCursorClampedAfterDelete(t *testing.T) {
	b := FromString("abc\ndef")
	b.Cursor.MoveTo(Position{Line: 1, Offset: 3})
	b.DeleteRange(NewLineRange(0, 1).ToRange())
	if !b.InBounds(b.Cursor.Position) {
		t.Fatalf("cursor out of bounds: %v", b.Cursor.Position)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")

	b, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if b.Data() != "" {
		t.Fatalf("missing file should open empty, got %q", b.Data())
	}
	b.Insert("one\ntwo\nthree\n")
	if err := b.Save(); err != nil {
		t.Fatal(err)
	}
	if b.Modified() {
		t.Error("buffer modified after save")
	}

	if err := os.WriteFile(path, []byte("one\n2\nthree\nfour\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := b.Reload(); err != nil {
		t.Fatal(err)
	}
	if got := b.Data(); got != "one\n2\nthree\nfour\n" {
		t.Fatalf("reloaded data = %q", got)
	}
	if b.Modified() {
		t.Error("buffer modified after reload")
	}
	if !b.Undo() || b.Data() != "one\ntwo\nthree\n" {
		t.Errorf("reload should undo as one step, got %q", b.Data())
	}
}

func TestSaveWithoutPath(t *testing.T) {
	if err := New().Save(); err != ErrNoPath {
		t.Fatalf("err = %v", err)
	}
}

func TestLexerFromPath(t *testing.T) {
	b := New()
	b.Path = "main.go"
	if name := b.SyntaxName(); name != "Go" {
		t.Fatalf("syntax = %q", name)
	}
	if err := b.SetSyntax("python"); err != nil {
		t.Fatal(err)
	}
	if name := b.SyntaxName(); name != "Python" {
		t.Errorf("syntax = %q", name)
	}
	if err := b.SetSyntax("no-such-language"); err == nil {
		t.Error("expected unknown syntax error")
	}
}

func TestWorkspaceBuffers(t *testing.T) {
	dir := t.TempDir()
	ws := NewWorkspace(dir)
	a, err := ws.OpenBuffer("a.txt")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := ws.OpenBuffer("b.txt")
	if a.ID == b.ID {
		t.Fatal("buffers share an id")
	}
	again, _ := ws.OpenBuffer(filepath.Join(dir, "a.txt"))
	if again != a || ws.CurrentBuffer() != a {
		t.Fatal("reopening should select the existing buffer")
	}
	ws.NextBuffer()
	if ws.CurrentBuffer() != b {
		t.Fatal("next buffer")
	}
	ws.PreviousBuffer()
	if ws.CurrentBuffer() != a {
		t.Fatal("previous buffer")
	}
	closed, err := ws.CloseCurrentBuffer()
	if err != nil || closed != a || ws.CurrentBuffer() != b {
		t.Fatalf("close: %v %v", closed, err)
	}
	ws.CloseCurrentBuffer()
	if _, err := ws.CloseCurrentBuffer(); err != ErrNoBuffer {
		t.Errorf("err = %v", err)
	}
}
