// Package symbols finds the named definitions in a buffer that SymbolJump mode
// lists. Go sources are parsed with tree-sitter; every other language falls
// back to the function and class names its chroma lexer reports.
package symbols

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"

	"github.com/xonecas/amble/internal/buffer"
)

// Kind classifies a symbol.
type Kind int

const (
	KindFunction Kind = iota
	KindMethod
	KindType
	KindConst
	KindVar
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "func"
	case KindMethod:
		return "method"
	case KindType:
		return "type"
	case KindConst:
		return "const"
	case KindVar:
		return "var"
	default:
		return "unknown"
	}
}

// Symbol is a definition and the position of its name.
type Symbol struct {
	Name     string
	Kind     Kind
	Position buffer.Position
}

// String is the label shown in the result list and matched by the query.
func (s Symbol) String() string {
	return fmt.Sprintf("%s %s", s.Kind, s.Name)
}

// Extract returns the symbols of b in document order.
func Extract(b *buffer.Buffer) ([]Symbol, error) {
	if isGo(b) {
		return parseGo([]byte(b.Data()))
	}
	return scanTokens(b.Lexer(), b.Data())
}

func isGo(b *buffer.Buffer) bool {
	if strings.HasSuffix(strings.ToLower(b.Path), ".go") {
		return true
	}
	return b.SyntaxName() == "Go"
}

func scanTokens(lexer chroma.Lexer, src string) ([]Symbol, error) {
	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return nil, fmt.Errorf("tokenise: %w", err)
	}
	var syms []Symbol
	var pos buffer.Position
	for tok := it(); tok != chroma.EOF; tok = it() {
		switch tok.Type {
		case chroma.NameFunction, chroma.NameFunctionMagic:
			syms = append(syms, Symbol{Name: tok.Value, Kind: KindFunction, Position: pos})
		case chroma.NameClass:
			syms = append(syms, Symbol{Name: tok.Value, Kind: KindType, Position: pos})
		}
		pos = pos.Add(buffer.DistanceOf(tok.Value))
	}
	return syms, nil
}
