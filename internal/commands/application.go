package commands

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/highlight"
	"github.com/xonecas/amble/internal/input"
	"github.com/xonecas/amble/internal/modes"
	"github.com/xonecas/amble/internal/symbols"
)

// recentFiles is how many remembered files Open mode lists first.
const recentFiles = 20

var applicationCommands = map[string]app.Command{
	"application.switch_to_normal_mode":            SwitchToNormalMode,
	"application.switch_to_insert_mode":            SwitchToInsertMode,
	"application.switch_to_jump_mode":              SwitchToJumpMode,
	"application.switch_to_second_stage_jump_mode": SwitchToSecondStageJumpMode,
	"application.switch_to_line_jump_mode":         SwitchToLineJumpMode,
	"application.switch_to_open_mode":              SwitchToOpenMode,
	"application.switch_to_command_mode":           SwitchToCommandMode,
	"application.switch_to_symbol_jump_mode":       SwitchToSymbolJumpMode,
	"application.switch_to_theme_mode":             SwitchToThemeMode,
	"application.switch_to_syntax_mode":            SwitchToSyntaxMode,
	"application.switch_to_select_mode":            SwitchToSelectMode,
	"application.switch_to_select_line_mode":       SwitchToSelectLineMode,
	"application.switch_to_search_mode":            SwitchToSearchMode,
	"application.switch_to_path_mode":              SwitchToPathMode,
	"application.display_default_keymap":           DisplayDefaultKeymap,
	"application.display_available_commands":       DisplayAvailableCommands,
	"application.display_last_error":               DisplayLastError,
	"application.exit":                             Exit,
}

// SwitchToNormalMode closes any open undo group and returns to Normal mode.
func SwitchToNormalMode(a *app.Application) error {
	if b := a.Workspace.CurrentBuffer(); b != nil {
		b.EndOperationGroup()
	}
	a.SwitchMode(modes.Normal{})
	return nil
}

// SwitchToInsertMode starts an undo group so everything typed until the next
// mode switch undoes as one step.
func SwitchToInsertMode(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	b.StartOperationGroup()
	a.SwitchMode(modes.Insert{})
	return scrollToCursor(a)
}

// SwitchToJumpMode starts a jump, folding an active selection into it so the
// selection extends to the jump target.
func SwitchToJumpMode(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	a.SwitchMode(modes.NewJump(b.Cursor.Line, a.Mode))
	return nil
}

// SwitchToSecondStageJumpMode starts a jump directly in its two-letter phase.
func SwitchToSecondStageJumpMode(a *app.Application) error {
	if err := SwitchToJumpMode(a); err != nil {
		return err
	}
	j, ok := a.Mode.(*modes.Jump)
	if !ok {
		return errors.New("failed to switch to jump mode")
	}
	j.FirstPhase = false
	return nil
}

// SwitchToLineJumpMode prompts for a line number to move to.
func SwitchToLineJumpMode(a *app.Application) error {
	if _, err := a.CurrentBuffer(); err != nil {
		return err
	}
	a.SwitchMode(&modes.LineJump{})
	return nil
}

// SwitchToOpenMode starts indexing the workspace in the background; results
// appear once the index completes.
func SwitchToOpenMode(a *app.Application) error {
	prefs := a.Preferences
	open := modes.NewOpen(a.Workspace.Path, prefs.SearchSelect.MaxResults)
	if sessions, err := a.Store.Recent(recentFiles); err != nil {
		log.Warn().Err(err).Msg("Failed to list recent files")
	} else {
		paths := make([]string, len(sessions))
		for i, sess := range sessions {
			paths[i] = sess.Path
		}
		open.SetRecent(paths)
	}
	open.StartIndexing(a.Context(), prefs.OpenMode.Exclusions, a.View.EventSender())
	a.SwitchMode(open)
	return Search(a)
}

// SwitchToCommandMode lists every registered command for fuzzy selection.
func SwitchToCommandMode(a *app.Application) error {
	a.SwitchMode(modes.NewCommand(a.CommandNames(), a.Preferences.SearchSelect.MaxResults))
	return Search(a)
}

// SwitchToSymbolJumpMode lists the symbols defined in the current buffer.
func SwitchToSymbolJumpMode(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	syms, err := symbols.Extract(b)
	if err != nil {
		return err
	}
	a.SwitchMode(modes.NewSymbolJump(syms, a.Preferences.SearchSelect.MaxResults))
	return Search(a)
}

// SwitchToThemeMode lists the available color themes.
func SwitchToThemeMode(a *app.Application) error {
	a.SwitchMode(modes.NewTheme(highlight.Themes(), a.Preferences.SearchSelect.MaxResults))
	return Search(a)
}

func SwitchToSyntaxMode(a *app.Application) error {
	if _, err := a.CurrentBuffer(); err != nil {
		return errors.New("switching syntaxes requires an open buffer")
	}
	a.SwitchMode(modes.NewSyntax(a.Workspace.Syntaxes(), a.Preferences.SearchSelect.MaxResults))
	return Search(a)
}

// SwitchToSelectMode starts a character selection anchored at the cursor.
func SwitchToSelectMode(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	a.SwitchMode(&modes.Select{Anchor: b.Cursor.Position})
	return nil
}

// SwitchToSelectLineMode starts a line selection anchored at the cursor line.
func SwitchToSelectLineMode(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	a.SwitchMode(&modes.SelectLine{Anchor: b.Cursor.Line})
	return nil
}

// SwitchToSearchMode starts typing a query, pre-filled with the last one.
func SwitchToSearchMode(a *app.Application) error {
	if _, err := a.CurrentBuffer(); err != nil {
		return err
	}
	a.SwitchMode(modes.NewSearch(a.SearchQuery))
	return nil
}

// SwitchToPathMode edits the buffer path, starting from the workspace
// directory when the buffer has none.
func SwitchToPathMode(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	a.SwitchMode(modes.NewPath(b.Path, a.Workspace.Path, false))
	return nil
}

// DisplayDefaultKeymap opens the built-in keymap in a new buffer.
func DisplayDefaultKeymap(a *app.Application) error {
	return displayText(a, string(input.DefaultKeymap))
}

// DisplayAvailableCommands opens the list of command names in a new buffer.
func DisplayAvailableCommands(a *app.Application) error {
	return displayText(a, strings.Join(a.CommandNames(), "\n")+"\n")
}

// DisplayLastError opens the most recent failure in a new buffer, for errors
// too long for the status line.
func DisplayLastError(a *app.Application) error {
	err := a.ReportedError()
	if err == nil {
		return errors.New("no error to display")
	}
	return displayText(a, err.Error()+"\n")
}

func displayText(a *app.Application, text string) error {
	b := buffer.FromString(text)
	a.Workspace.AddBuffer(b)
	a.AddBuffer(b)
	return nil
}

// Exit stops the main loop after the current event.
func Exit(a *app.Application) error {
	a.SwitchMode(modes.Exit{})
	return nil
}
