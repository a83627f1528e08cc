// Package highlight derives the editor's colors from Chroma styles: a UI
// palette for chrome and per-token entries for syntax coloring.
package highlight

import (
	"math"
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultTheme is used when no theme is configured or the configured one is
// unknown.
const DefaultTheme = "monokai"

// Themes lists every registered Chroma style name, sorted.
func Themes() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

// Exists reports whether a Chroma style with this name is registered.
func Exists(theme string) bool {
	_, ok := styles.Registry[theme]
	return ok
}

// Style returns the Chroma style for theme, falling back to DefaultTheme.
func Style(theme string) *chroma.Style {
	if sty, ok := styles.Registry[theme]; ok {
		return sty
	}
	return styles.Get(DefaultTheme)
}

// TokenColor returns the foreground Chroma assigns to tt in sty along with
// its bold and italic flags. An unset color means the theme foreground.
func TokenColor(sty *chroma.Style, tt chroma.TokenType) (c chroma.Colour, bold, italic bool) {
	e := sty.Get(tt)
	return e.Colour, e.Bold == chroma.Yes, e.Italic == chroma.Yes
}

// Palette holds the chrome colors of a theme. The grey levels sit between
// the background and foreground; the mode colors come from token colors.
type Palette struct {
	Bg      chroma.Colour
	Fg      chroma.Colour
	Focused chroma.Colour // current line, status line
	Dim     chroma.Colour // line numbers, blank cells
	Muted   chroma.Colour // path mode
	Accent  chroma.Colour // select mode
	Error   chroma.Colour // warnings
	Insert  chroma.Colour // insert mode
	Search  chroma.Colour // search modes
}

var (
	fallbackBg = chroma.NewColour(0x00, 0x00, 0x00)
	fallbackFg = chroma.NewColour(0xc8, 0xc8, 0xc8)
)

// ThemePalette derives the palette of theme. The same theme always yields the
// same palette.
func ThemePalette(theme string) Palette {
	sty := Style(theme)
	bg, fg := fallbackBg, fallbackFg
	if e := sty.Get(chroma.Background); e.Background.IsSet() {
		bg = e.Background
	}
	if e := sty.Get(chroma.Background); e.Colour.IsSet() {
		fg = e.Colour
	}

	errColour := Mix(bg, fg, 0.45)
	if e := sty.Get(chroma.Error); e.Colour.IsSet() {
		errColour = Mix(bg, e.Colour, 0.45)
	}
	return Palette{
		Bg:      bg,
		Fg:      fg,
		Focused: Mix(bg, fg, 0.07),
		Dim:     Mix(bg, fg, 0.25),
		Muted:   Mix(bg, fg, 0.45),
		Accent:  mostSaturated(sty, fg),
		Error:   errColour,
		Insert:  tokenOr(sty, chroma.LiteralString, chroma.NewColour(0x5f, 0xaf, 0x5f)),
		Search:  tokenOr(sty, chroma.Keyword, chroma.NewColour(0xaf, 0x5f, 0xd7)),
	}
}

func tokenOr(sty *chroma.Style, tt chroma.TokenType, fallback chroma.Colour) chroma.Colour {
	if e := sty.Get(tt); e.Colour.IsSet() {
		return e.Colour
	}
	return fallback
}

// mostSaturated scans the style's token colors for the most saturated one.
func mostSaturated(sty *chroma.Style, fallback chroma.Colour) chroma.Colour {
	best, bestSat := fallback, 0.0
	for _, tt := range sty.Types() {
		c := sty.Get(tt).Colour
		if !c.IsSet() {
			continue
		}
		if sat := saturation(c); sat > bestSat {
			best, bestSat = c, sat
		}
	}
	return best
}

func saturation(c chroma.Colour) float64 {
	r, g, b := float64(c.Red()), float64(c.Green()), float64(c.Blue())
	hi := math.Max(r, math.Max(g, b))
	if hi == 0 {
		return 0
	}
	return (hi - math.Min(r, math.Min(g, b))) / hi
}

// Mix moves from a toward b by fraction t.
func Mix(a, b chroma.Colour, t float64) chroma.Colour {
	channel := func(x, y uint8) uint8 {
		v := float64(x) + (float64(y)-float64(x))*t
		return uint8(math.Round(math.Min(math.Max(v, 0), 255)))
	}
	return chroma.NewColour(
		channel(a.Red(), b.Red()),
		channel(a.Green(), b.Green()),
		channel(a.Blue(), b.Blue()),
	)
}
