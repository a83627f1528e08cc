package view

import "github.com/gdamore/tcell/v2"

// Style is a text attribute applied to printed content.
type Style int

const (
	StyleDefault Style = iota
	StyleBold
	StyleInverted
	StyleItalic
)

// ColorKind names a logical color role that a Theme resolves to concrete
// colors.
type ColorKind int

const (
	ColorsDefault ColorKind = iota
	ColorsBlank
	ColorsFocused
	ColorsInverted
	ColorsInsert
	ColorsWarning
	ColorsPathMode
	ColorsSearchMode
	ColorsSelectMode
	ColorsCustomForeground
	ColorsCustomFocusedForeground
	ColorsCustom
)

// Colors is a logical color request. Fg and Bg are only read for the custom
// kinds.
type Colors struct {
	Kind ColorKind
	Fg   tcell.Color
	Bg   tcell.Color
}

var (
	Default    = Colors{Kind: ColorsDefault}
	Blank      = Colors{Kind: ColorsBlank}
	Focused    = Colors{Kind: ColorsFocused}
	Inverted   = Colors{Kind: ColorsInverted}
	Insert     = Colors{Kind: ColorsInsert}
	Warning    = Colors{Kind: ColorsWarning}
	PathMode   = Colors{Kind: ColorsPathMode}
	SearchMode = Colors{Kind: ColorsSearchMode}
	SelectMode = Colors{Kind: ColorsSelectMode}
)

// CustomForeground colors text fg on the theme background.
func CustomForeground(fg tcell.Color) Colors {
	return Colors{Kind: ColorsCustomForeground, Fg: fg}
}

// CustomFocusedForeground colors text fg on the focused line background.
func CustomFocusedForeground(fg tcell.Color) Colors {
	return Colors{Kind: ColorsCustomFocusedForeground, Fg: fg}
}

// Custom uses explicit foreground and background colors.
func Custom(fg, bg tcell.Color) Colors {
	return Colors{Kind: ColorsCustom, Fg: fg, Bg: bg}
}
