// Package movement splits text into the tokens cursor motions and jump tags
// operate on. It is finer grained than a syntax lexer: identifiers are broken
// at punctuation so that "foo.bar_baz" yields five tokens.
package movement

import (
	"strings"
	"unicode"
)

// Token is a run of text; Whitespace tokens are skipped by motions.
type Token struct {
	Text       string
	Whitespace bool
}

func isBoundary(r rune) bool {
	switch r {
	case '`', '=', '_', '-', '.', '(', ')', '[', ']', '{', '}', ',', ';', ':',
		'"', '\'', '/', '\\', '<', '>', '&', '|', '!', '*', '+', '#', '@', '$', '%', '^', '?':
		return true
	}
	return false
}

// Lex splits text into whitespace runs, single boundary characters ("::" is
// kept whole) and words.
func Lex(text string) []Token {
	var tokens []Token
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, Token{Text: word.String()})
			word.Reset()
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			flush()
			j := i
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			tokens = append(tokens, Token{Text: string(runes[i:j]), Whitespace: true})
			i = j - 1
		case r == ':' && i+1 < len(runes) && runes[i+1] == ':':
			flush()
			tokens = append(tokens, Token{Text: "::"})
			i++
		case isBoundary(r):
			flush()
			tokens = append(tokens, Token{Text: string(r)})
		default:
			word.WriteRune(r)
		}
	}
	flush()
	return tokens
}
