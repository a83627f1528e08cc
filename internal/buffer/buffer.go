package buffer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// ErrNoPath is returned when a buffer without a path is saved or reloaded.
var ErrNoPath = errors.New("buffer has no path")

// ID identifies a buffer for as long as the workspace holds it.
type ID uint64

// Buffer holds a document as a slice of lines.
type Buffer struct {
	ID     ID
	Path   string
	Cursor *Cursor

	// OnChange is called after every mutation with the earliest position
	// the mutation touched.
	OnChange func(Position)

	lines   []string
	history history
	saved   string
	syntax  string
	lexer   chroma.Lexer
	grammar chroma.Lexer
}

// New returns an empty, pathless buffer.
func New() *Buffer {
	b := &Buffer{lines: []string{""}}
	b.Cursor = &Cursor{buf: b}
	return b
}

// FromString returns a pathless buffer holding content. The buffer is not
// considered modified.
func FromString(content string) *Buffer {
	b := New()
	b.lines = splitLines(content)
	b.saved = content
	return b
}

// Open reads path into a new buffer. A missing file yields an empty buffer
// that will be created on save.
func Open(path string) (*Buffer, error) {
	b := New()
	b.Path = path
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	b.lines = splitLines(string(data))
	b.saved = string(data)
	return b, nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

// Data returns the whole document.
func (b *Buffer) Data() string {
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines; an empty buffer has one.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the content of line n without its newline.
func (b *Buffer) Line(n int) (string, bool) {
	if n < 0 || n >= len(b.lines) {
		return "", false
	}
	return b.lines[n], true
}

// LineLength returns the number of graphemes on line n.
func (b *Buffer) LineLength(n int) int {
	line, ok := b.Line(n)
	if !ok {
		return 0
	}
	return graphemeCount(line)
}

// Modified reports whether the buffer differs from what was last loaded or
// saved.
func (b *Buffer) Modified() bool {
	return b.Data() != b.saved
}

// InBounds reports whether p addresses a grapheme or the end of a line.
func (b *Buffer) InBounds(p Position) bool {
	if p.Line < 0 || p.Line >= len(b.lines) || p.Offset < 0 {
		return false
	}
	return p.Offset <= graphemeCount(b.lines[p.Line])
}

// End returns the position just past the last grapheme.
func (b *Buffer) End() Position {
	last := len(b.lines) - 1
	return Position{Line: last, Offset: graphemeCount(b.lines[last])}
}

func (b *Buffer) clamp(p Position) Position {
	if p.Line < 0 {
		return Position{}
	}
	if p.Line >= len(b.lines) {
		return b.End()
	}
	if n := graphemeCount(b.lines[p.Line]); p.Offset > n {
		p.Offset = n
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Read returns the text covered by r, clamped to the buffer.
func (b *Buffer) Read(r Range) (string, bool) {
	start, end := b.clamp(r.Start()), b.clamp(r.End())
	if !b.InBounds(start) {
		return "", false
	}
	if start.Line == end.Line {
		line := b.lines[start.Line]
		return line[byteIndex(line, start.Offset):byteIndex(line, end.Offset)], true
	}
	var sb strings.Builder
	first := b.lines[start.Line]
	sb.WriteString(first[byteIndex(first, start.Offset):])
	for n := start.Line + 1; n < end.Line; n++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[n])
	}
	sb.WriteByte('\n')
	last := b.lines[end.Line]
	sb.WriteString(last[:byteIndex(last, end.Offset)])
	return sb.String(), true
}

// Insert places text at the cursor without moving it.
func (b *Buffer) Insert(text string) {
	b.InsertAt(b.Cursor.Position, text)
}

// InsertAt places text at p.
func (b *Buffer) InsertAt(p Position, text string) {
	if text == "" || !b.InBounds(p) {
		return
	}
	b.insert(p, text)
	b.history.record(operation{kind: opInsert, pos: p, text: text})
	b.changed(p)
}

// Delete removes the grapheme under the cursor, joining lines when the cursor
// is at the end of one.
func (b *Buffer) Delete() {
	p := b.Cursor.Position
	var end Position
	if p.Offset < b.LineLength(p.Line) {
		end = Position{Line: p.Line, Offset: p.Offset + 1}
	} else if p.Line+1 < len(b.lines) {
		end = Position{Line: p.Line + 1}
	} else {
		return
	}
	b.DeleteRange(NewRange(p, end))
}

// DeleteRange removes the text covered by r.
func (b *Buffer) DeleteRange(r Range) {
	start, end := b.clamp(r.Start()), b.clamp(r.End())
	if start == end {
		return
	}
	text := b.remove(start, end)
	b.history.record(operation{kind: opDelete, pos: start, text: text})
	b.changed(start)
}

// Replace swaps the whole document for content as one undoable group.
func (b *Buffer) Replace(content string) {
	b.StartOperationGroup()
	b.DeleteRange(NewRange(Position{}, b.End()))
	b.InsertAt(Position{}, content)
	b.EndOperationGroup()
}

// StartOperationGroup begins collecting operations into one undo step.
func (b *Buffer) StartOperationGroup() { b.history.start() }

// EndOperationGroup closes the current undo step.
func (b *Buffer) EndOperationGroup() { b.history.end() }

// Undo reverts the most recent operation group.
func (b *Buffer) Undo() bool {
	b.history.end()
	g, ok := b.history.popUndo()
	if !ok {
		return false
	}
	for i := len(g) - 1; i >= 0; i-- {
		b.revert(g[i])
	}
	b.Cursor.MoveTo(b.clamp(g[0].pos))
	return true
}

// Redo reapplies the most recently undone group.
func (b *Buffer) Redo() bool {
	g, ok := b.history.popRedo()
	if !ok {
		return false
	}
	for _, op := range g {
		b.apply(op)
	}
	b.Cursor.MoveTo(b.clamp(g[len(g)-1].pos))
	return true
}

func (b *Buffer) apply(op operation) {
	switch op.kind {
	case opInsert:
		b.insert(op.pos, op.text)
	case opDelete:
		b.remove(op.pos, op.pos.Add(DistanceOf(op.text)))
	}
	b.changed(op.pos)
}

func (b *Buffer) revert(op operation) {
	switch op.kind {
	case opInsert:
		b.remove(op.pos, op.pos.Add(DistanceOf(op.text)))
	case opDelete:
		b.insert(op.pos, op.text)
	}
	b.changed(op.pos)
}

func (b *Buffer) insert(p Position, text string) {
	line := b.lines[p.Line]
	idx := byteIndex(line, p.Offset)
	parts := splitLines(line[:idx] + text + line[idx:])
	lines := make([]string, 0, len(b.lines)+len(parts)-1)
	lines = append(lines, b.lines[:p.Line]...)
	lines = append(lines, parts...)
	lines = append(lines, b.lines[p.Line+1:]...)
	b.lines = lines
}

func (b *Buffer) remove(start, end Position) string {
	removed, _ := b.Read(NewRange(start, end))
	first := b.lines[start.Line]
	last := b.lines[end.Line]
	joined := first[:byteIndex(first, start.Offset)] + last[byteIndex(last, end.Offset):]
	lines := make([]string, 0, len(b.lines)-(end.Line-start.Line))
	lines = append(lines, b.lines[:start.Line]...)
	lines = append(lines, joined)
	lines = append(lines, b.lines[end.Line+1:]...)
	b.lines = lines
	return removed
}

func (b *Buffer) changed(p Position) {
	if !b.InBounds(b.Cursor.Position) {
		b.Cursor.Position = b.clamp(b.Cursor.Position)
	}
	if b.OnChange != nil {
		b.OnChange(p)
	}
}

// Save writes the buffer to its path.
func (b *Buffer) Save() error {
	if b.Path == "" {
		return ErrNoPath
	}
	data := b.Data()
	if err := os.WriteFile(b.Path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", b.Path, err)
	}
	b.saved = data
	return nil
}

// Reload re-reads the buffer from disk. Only the line ranges that differ are
// rewritten, as a single undoable group.
func (b *Buffer) Reload() error {
	if b.Path == "" {
		return ErrNoPath
	}
	data, err := os.ReadFile(b.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", b.Path, err)
	}
	after := strings.ReplaceAll(string(data), "\r\n", "\n")
	before := b.Data()
	if before == after {
		b.saved = after
		return nil
	}

	edits := myers.ComputeEdits(span.URIFromPath(b.Path), before, after)
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Span.Start().Line() > edits[j].Span.Start().Line()
	})

	cursor := b.Cursor.Position
	b.StartOperationGroup()
	for _, edit := range edits {
		start := b.clamp(Position{Line: edit.Span.Start().Line() - 1})
		end := b.clamp(Position{Line: edit.Span.End().Line() - 1})
		if edit.Span.End().Line()-1 >= len(b.lines) {
			end = b.End()
		}
		b.DeleteRange(NewRange(start, end))
		b.InsertAt(start, edit.NewText)
	}
	b.EndOperationGroup()

	if b.Data() != after {
		// The line-level edits did not reproduce the file; fall back to a
		// whole-document swap.
		b.Replace(after)
	}
	b.saved = after
	b.Cursor.MoveTo(b.clamp(cursor))
	return nil
}

// SetSyntax selects a chroma lexer by name for this buffer.
func (b *Buffer) SetSyntax(name string) error {
	if lexers.Get(name) == nil {
		return fmt.Errorf("unknown syntax %q", name)
	}
	b.syntax = name
	b.lexer = nil
	if b.OnChange != nil {
		b.OnChange(Position{})
	}
	return nil
}

// SetPath moves the buffer to a new path. A lexer matched from the old file
// name is discarded.
func (b *Buffer) SetPath(path string) {
	b.Path = path
	b.lexer = nil
	if b.OnChange != nil {
		b.OnChange(Position{})
	}
}

// SyntaxName returns the name of the lexer in use.
func (b *Buffer) SyntaxName() string {
	cfg := b.Lexer().Config()
	if cfg == nil {
		return ""
	}
	return cfg.Name
}

// Lexer returns the chroma lexer for the buffer: an explicit syntax, else one
// matched from the file name, else plain text.
func (b *Buffer) Lexer() chroma.Lexer {
	if b.lexer != nil {
		return b.lexer
	}
	var lexer chroma.Lexer
	if b.syntax != "" {
		lexer = lexers.Get(b.syntax)
	}
	if lexer == nil && b.Path != "" {
		lexer = lexers.Match(filepath.Base(b.Path))
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	b.grammar = lexer
	b.lexer = chroma.Coalesce(lexer)
	return b.lexer
}

// Grammar returns the lexer behind Lexer, without token coalescing.
func (b *Buffer) Grammar() chroma.Lexer {
	b.Lexer()
	return b.grammar
}
