package modes

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/xonecas/amble/internal/buffer"
)

// Search finds a literal query in the current buffer.
type Search struct {
	Input string
	// InsertMode is set while the query is being typed.
	InsertMode bool
	Results    *SelectableVec[buffer.Range]
}

func (s *Search) Name() string {
	if s.InsertMode {
		return "search_insert"
	}
	return "search"
}

// NewSearch starts typing a query, pre-filled with the previous one.
func NewSearch(previousQuery string) *Search {
	return &Search{
		Input:      previousQuery,
		InsertMode: true,
		Results:    NewSelectableVec[buffer.Range](nil),
	}
}

// PushChar appends to the query.
func (s *Search) PushChar(c rune) { s.Input += string(c) }

// PopChar removes the last character of the query.
func (s *Search) PopChar() { s.Input = popRune(s.Input) }

// Search collects every match of the query in b and selects the first one at
// or after the cursor, wrapping to the first match.
func (s *Search) Search(b *buffer.Buffer) {
	matches := FindAll(b, s.Input)
	s.Results.Set(matches)
	for i, r := range matches {
		if !r.Start().Less(b.Cursor.Position) {
			s.Results.SetSelectedIndex(i)
			break
		}
	}
}

// FindAll returns the non-overlapping matches of query in b in document
// order. Queries never span lines.
func FindAll(b *buffer.Buffer, query string) []buffer.Range {
	if query == "" {
		return nil
	}
	var out []buffer.Range
	for line := 0; line < b.LineCount(); line++ {
		text, _ := b.Line(line)
		consumed := 0
		for {
			idx := strings.Index(text[consumed:], query)
			if idx < 0 {
				break
			}
			start := consumed + idx
			end := start + len(query)
			from := uniseg.GraphemeClusterCount(text[:start])
			to := from + uniseg.GraphemeClusterCount(text[start:end])
			out = append(out, buffer.NewRange(
				buffer.Position{Line: line, Offset: from},
				buffer.Position{Line: line, Offset: to},
			))
			consumed = end
		}
	}
	return out
}
