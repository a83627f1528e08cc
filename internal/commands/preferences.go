package commands

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/config"
)

var preferencesCommands = map[string]app.Command{
	"preferences.edit":   EditPreferences,
	"preferences.reload": ReloadPreferences,
}

// EditPreferences opens the preferences file. A missing file opens empty and
// is created on save.
func EditPreferences(a *app.Application) error {
	if a.ConfigDir == "" {
		return errors.New("no configuration directory")
	}
	return a.OpenPath(config.PreferencesPath(a.ConfigDir))
}

// ReloadPreferences re-reads the preferences and keymap files. Nothing
// changes when either fails to load.
func ReloadPreferences(a *app.Application) error {
	prefs, err := config.Load(config.PreferencesPath(a.ConfigDir))
	if err != nil {
		return fmt.Errorf("reload preferences: %w", err)
	}
	km, err := BuildKeymap(a.Commands, config.KeymapPath(a.ConfigDir))
	if err != nil {
		return fmt.Errorf("reload keymap: %w", err)
	}

	a.Preferences = prefs
	a.Keymap = km
	a.View.SetTheme(prefs.Theme)
	a.View.SetOptions(app.RenderOptions(prefs))
	for _, b := range a.Workspace.Buffers() {
		a.View.InvalidateRenderCache(b)
	}
	log.Info().Str("theme", prefs.Theme).Msg("Preferences reloaded")
	return nil
}
