package commands

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/modes"
)

// ErrNotSearchSelectMode is returned by search-select commands run in any
// other mode.
var ErrNotSearchSelectMode = errors.New("not in a search-select mode")

var searchSelectCommands = map[string]app.Command{
	"search_select.push_search_char": PushSearchSelectChar,
	"search_select.pop_search_token": PopSearchSelectChar,
	"search_select.search":           Search,
	"search_select.select_next":      SelectNext,
	"search_select.select_previous":  SelectPrevious,
	"search_select.enable_insert":    EnableInsert,
	"search_select.disable_insert":   DisableInsert,
	"search_select.accept":           Accept,
}

func searchSelectMode(a *app.Application) (modes.SearchSelect, error) {
	m, ok := a.Mode.(modes.SearchSelect)
	if !ok {
		return nil, ErrNotSearchSelectMode
	}
	return m, nil
}

// PushSearchSelectChar extends the query and refreshes the results.
func PushSearchSelectChar(a *app.Application) error {
	m, err := searchSelectMode(a)
	if err != nil {
		return err
	}
	c, err := lastChar(a)
	if err != nil {
		return err
	}
	m.PushSearchChar(c)
	m.Search()
	return nil
}

// PopSearchSelectChar drops the last query character and refreshes the results.
func PopSearchSelectChar(a *app.Application) error {
	m, err := searchSelectMode(a)
	if err != nil {
		return err
	}
	m.PopSearchChar()
	m.Search()
	return nil
}

// Search refreshes the results of the active search-select mode.
func Search(a *app.Application) error {
	m, err := searchSelectMode(a)
	if err != nil {
		return err
	}
	m.Search()
	return nil
}

// SelectNext highlights the next result, wrapping around.
func SelectNext(a *app.Application) error {
	m, err := searchSelectMode(a)
	if err != nil {
		return err
	}
	m.SelectNext()
	return nil
}

// SelectPrevious highlights the previous result, wrapping around.
func SelectPrevious(a *app.Application) error {
	m, err := searchSelectMode(a)
	if err != nil {
		return err
	}
	m.SelectPrevious()
	return nil
}

// EnableInsert routes typed characters to the query.
func EnableInsert(a *app.Application) error {
	m, err := searchSelectMode(a)
	if err != nil {
		return err
	}
	m.SetInsertMode(true)
	return nil
}

// DisableInsert routes keys to result navigation.
func DisableInsert(a *app.Application) error {
	m, err := searchSelectMode(a)
	if err != nil {
		return err
	}
	m.SetInsertMode(false)
	return nil
}

// Accept acts on the selected entry of the active search-select mode and
// returns to Normal mode.
func Accept(a *app.Application) error {
	m, err := searchSelectMode(a)
	if err != nil {
		return err
	}
	if len(m.Results()) == 0 {
		return app.ErrSelectedIndexOutOfRange
	}

	switch m := m.(type) {
	case *modes.Open:
		path, ok := m.SelectedPath()
		if !ok {
			return app.ErrSelectedIndexOutOfRange
		}
		if err := SwitchToNormalMode(a); err != nil {
			return err
		}
		return a.OpenPath(path)

	case *modes.Command:
		name, ok := m.Selection()
		if !ok {
			return app.ErrSelectedIndexOutOfRange
		}
		cmd, ok := a.Commands[name]
		if !ok {
			return fmt.Errorf("command %q doesn't exist", name)
		}
		if err := SwitchToNormalMode(a); err != nil {
			return err
		}
		return cmd(a)

	case *modes.SymbolJump:
		sym, ok := m.Selection()
		if !ok {
			return app.ErrSelectedIndexOutOfRange
		}
		b, err := a.CurrentBuffer()
		if err != nil {
			return err
		}
		if !b.Cursor.MoveTo(sym.Position) {
			return fmt.Errorf("symbol %s is outside the buffer", sym.Name)
		}
		if err := SwitchToNormalMode(a); err != nil {
			return err
		}
		return ScrollToCenter(a)

	case *modes.Theme:
		theme, ok := m.Selection()
		if !ok {
			return app.ErrSelectedIndexOutOfRange
		}
		a.Preferences.Theme = theme
		a.View.SetTheme(theme)
		log.Info().Str("theme", theme).Msg("Theme changed")
		return SwitchToNormalMode(a)

	case *modes.Syntax:
		name, ok := m.Selection()
		if !ok {
			return app.ErrSelectedIndexOutOfRange
		}
		b, err := a.CurrentBuffer()
		if err != nil {
			return err
		}
		if err := b.SetSyntax(name); err != nil {
			return err
		}
		a.View.InvalidateRenderCache(b)
		return SwitchToNormalMode(a)
	}
	return fmt.Errorf("accept isn't supported in %s mode", m.Name())
}
