package highlight

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
)

func TestThemePaletteDeterministic(t *testing.T) {
	a := ThemePalette("monokai")
	b := ThemePalette("monokai")
	if a != b {
		t.Fatalf("palette not deterministic: %+v vs %+v", a, b)
	}
	if a.Bg == a.Focused {
		t.Error("focused background should differ from the theme background")
	}
	for name, c := range map[string]chroma.Colour{"bg": a.Bg, "fg": a.Fg, "focused": a.Focused, "accent": a.Accent} {
		if !c.IsSet() {
			t.Errorf("%s is unset", name)
		}
	}
}

func TestMix(t *testing.T) {
	black, white := chroma.NewColour(0, 0, 0), chroma.NewColour(255, 255, 255)
	if got := Mix(black, white, 0.5); got.String() != "#808080" {
		t.Errorf("mix = %s", got)
	}
	c := chroma.NewColour(0x10, 0x20, 0x30)
	if got := Mix(c, c, 0.7); got != c {
		t.Errorf("mix same = %s", got)
	}
	if got := Mix(black, white, 0); got != black {
		t.Errorf("mix at 0 = %s", got)
	}
}

func TestStyleFallsBack(t *testing.T) {
	if Exists("definitely-not-a-theme") {
		t.Fatal("unexpected theme")
	}
	if Style("definitely-not-a-theme").Name != DefaultTheme {
		t.Error("unknown theme should fall back to the default")
	}
	if _, bold, _ := TokenColor(Style("monokai"), chroma.Text); bold {
		t.Error("plain text should not be bold")
	}
	if len(Themes()) == 0 {
		t.Error("no themes registered")
	}
}
