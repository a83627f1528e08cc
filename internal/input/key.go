// Package input defines the keys and events the editor reacts to and the
// keymap that resolves them to commands per mode.
package input

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// KeyKind enumerates the key variants.
type KeyKind int

const (
	KeyBackspace KeyKind = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
	KeyEsc
	KeyTab
	KeyEnter
	// KeyAnyChar is the wildcard binding for character keys.
	KeyAnyChar
	KeyChar
	KeyCtrl
)

// Key is a single keypress. Rune is only meaningful for KeyChar and KeyCtrl.
// Keys are comparable and used directly as map keys.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Char returns the key for a typed character.
func Char(r rune) Key { return Key{Kind: KeyChar, Rune: r} }

// Ctrl returns the key for r pressed with control.
func Ctrl(r rune) Key { return Key{Kind: KeyCtrl, Rune: r} }

// Special returns a key of a kind that carries no rune.
func Special(k KeyKind) Key { return Key{Kind: k} }

var (
	ErrEmptyKey          = errors.New("empty key specifier")
	ErrUnsupportedModKey = errors.New("unsupported keymap modifier")
	ErrMissingModChar    = errors.New("missing key character after modifier")
)

var namedKeys = map[string]Key{
	"space":     Char(' '),
	"backspace": Special(KeyBackspace),
	"left":      Special(KeyLeft),
	"right":     Special(KeyRight),
	"up":        Special(KeyUp),
	"down":      Special(KeyDown),
	"home":      Special(KeyHome),
	"end":       Special(KeyEnd),
	"page_up":   Special(KeyPageUp),
	"page_down": Special(KeyPageDown),
	"delete":    Special(KeyDelete),
	"insert":    Special(KeyInsert),
	"escape":    Special(KeyEsc),
	"tab":       Special(KeyTab),
	"enter":     Special(KeyEnter),
	"_":         Special(KeyAnyChar),
}

// ParseKey converts a keymap specifier such as "j", "ctrl-r", "page_down" or
// the wildcard "_" into a Key.
func ParseKey(spec string) (Key, error) {
	if spec == "" {
		return Key{}, ErrEmptyKey
	}
	if k, ok := namedKeys[spec]; ok {
		return k, nil
	}
	if mod, rest, ok := strings.Cut(spec, "-"); ok && mod != "" {
		if mod != "ctrl" {
			return Key{}, fmt.Errorf("%w: %q", ErrUnsupportedModKey, mod)
		}
		r, size := utf8.DecodeRuneInString(rest)
		if rest == "" || size != len(rest) {
			return Key{}, fmt.Errorf("%w: %q", ErrMissingModChar, spec)
		}
		return Ctrl(r), nil
	}
	r, size := utf8.DecodeRuneInString(spec)
	if size != len(spec) {
		return Key{}, fmt.Errorf("unrecognised key specifier %q", spec)
	}
	return Char(r), nil
}

func (k Key) String() string {
	switch k.Kind {
	case KeyChar:
		if k.Rune == ' ' {
			return "space"
		}
		return string(k.Rune)
	case KeyCtrl:
		return "ctrl-" + string(k.Rune)
	}
	for name, nk := range namedKeys {
		if nk == k && name != "space" {
			return name
		}
	}
	return "unknown"
}
