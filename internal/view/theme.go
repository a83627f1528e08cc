package view

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v2"

	"github.com/xonecas/amble/internal/highlight"
)

// Theme resolves logical colors and syntax token types to concrete terminal
// colors, all derived from one Chroma style.
type Theme struct {
	Name string

	style   *chroma.Style
	palette highlight.Palette
	fg, bg  tcell.Color
	focused tcell.Color
	tokens  map[chroma.TokenType]tokenStyle
}

type tokenStyle struct {
	style  Style
	colors Colors
}

// NewTheme builds a theme from a Chroma style name; unknown names fall back to
// the default theme.
func NewTheme(name string) *Theme {
	if !highlight.Exists(name) {
		name = highlight.DefaultTheme
	}
	p := highlight.ThemePalette(name)
	return &Theme{
		Name:    name,
		style:   highlight.Style(name),
		palette: p,
		fg:      termColor(p.Fg),
		bg:      termColor(p.Bg),
		focused: termColor(p.Focused),
		tokens:  make(map[chroma.TokenType]tokenStyle),
	}
}

// Map returns the foreground and background for c.
func (t *Theme) Map(c Colors) (fg, bg tcell.Color) {
	switch c.Kind {
	case ColorsBlank:
		return termColor(t.palette.Dim), t.bg
	case ColorsFocused:
		return t.fg, t.focused
	case ColorsInverted:
		return t.bg, t.fg
	case ColorsInsert:
		return t.bg, termColor(t.palette.Insert)
	case ColorsWarning:
		return t.fg, termColor(t.palette.Error)
	case ColorsPathMode:
		return t.bg, termColor(t.palette.Muted)
	case ColorsSearchMode:
		return t.bg, termColor(t.palette.Search)
	case ColorsSelectMode:
		return t.bg, termColor(t.palette.Accent)
	case ColorsCustomForeground:
		return c.Fg, t.bg
	case ColorsCustomFocusedForeground:
		return c.Fg, t.focused
	case ColorsCustom:
		return c.Fg, c.Bg
	default:
		return t.fg, t.bg
	}
}

// Token returns the style and colors for a syntax token type.
func (t *Theme) Token(tt chroma.TokenType) (Style, Colors) {
	if ts, ok := t.tokens[tt]; ok {
		return ts.style, ts.colors
	}
	c, bold, italic := highlight.TokenColor(t.style, tt)
	ts := tokenStyle{style: StyleDefault, colors: CustomForeground(t.fg)}
	if c.IsSet() {
		ts.colors = CustomForeground(termColor(c))
	}
	switch {
	case bold:
		ts.style = StyleBold
	case italic:
		ts.style = StyleItalic
	}
	t.tokens[tt] = ts
	return ts.style, ts.colors
}

// LineNumberColor is the foreground for the line number gutter.
func (t *Theme) LineNumberColor() tcell.Color {
	return termColor(t.palette.Dim)
}

func termColor(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}
