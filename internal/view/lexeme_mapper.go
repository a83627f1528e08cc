package view

import "github.com/xonecas/amble/internal/buffer"

// MappedKind tells the renderer how to draw a mapped lexeme.
type MappedKind int

const (
	// MappedFocused text is emphasised, e.g. a jump tag.
	MappedFocused MappedKind = iota
	// MappedBlank text is drawn de-emphasised.
	MappedBlank
)

type MappedLexeme struct {
	Kind MappedKind
	Text string
}

// LexemeMapper rewrites lexemes before they are drawn. The mapped texts of a
// lexeme must cover the same number of graphemes as the original.
type LexemeMapper interface {
	MapLexeme(lexeme string, pos buffer.Position) []MappedLexeme
}
