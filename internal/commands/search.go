package commands

import (
	"errors"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/modes"
)

var searchCommands = map[string]app.Command{
	"search.push_search_char":        PushSearchQueryChar,
	"search.pop_search_token":        PopSearchQueryChar,
	"search.accept_query":            AcceptQuery,
	"search.enable_insert":           EnableSearchInsert,
	"search.move_to_next_result":     MoveToNextResult,
	"search.move_to_previous_result": MoveToPreviousResult,
}

func searchMode(a *app.Application) (*modes.Search, error) {
	s, ok := a.Mode.(*modes.Search)
	if !ok {
		return nil, errors.New("not in search mode")
	}
	return s, nil
}

// PushSearchQueryChar appends the typed character to the query.
func PushSearchQueryChar(a *app.Application) error {
	s, err := searchMode(a)
	if err != nil {
		return err
	}
	c, err := lastChar(a)
	if err != nil {
		return err
	}
	s.PushChar(c)
	return nil
}

// PopSearchQueryChar drops the last character of the query.
func PopSearchQueryChar(a *app.Application) error {
	s, err := searchMode(a)
	if err != nil {
		return err
	}
	s.PopChar()
	return nil
}

// AcceptQuery runs the typed query and moves to the first match at or after
// the cursor.
func AcceptQuery(a *app.Application) error {
	s, err := searchMode(a)
	if err != nil {
		return err
	}
	if s.Input == "" {
		return app.ErrSearchQueryMissing
	}
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	a.SearchQuery = s.Input
	s.InsertMode = false
	s.Search(b)
	return moveToSelectedResult(a, s)
}

// EnableSearchInsert returns to editing the query.
func EnableSearchInsert(a *app.Application) error {
	s, err := searchMode(a)
	if err != nil {
		return err
	}
	s.InsertMode = true
	return nil
}

// activeSearch returns the running search, or starts one for the last query
// so results can be stepped through from Normal mode.
func activeSearch(a *app.Application) (*modes.Search, error) {
	if s, ok := a.Mode.(*modes.Search); ok {
		return s, nil
	}
	if a.SearchQuery == "" {
		return nil, app.ErrSearchQueryMissing
	}
	b, err := a.CurrentBuffer()
	if err != nil {
		return nil, err
	}
	s := modes.NewSearch(a.SearchQuery)
	s.InsertMode = false
	s.Search(b)
	a.SwitchMode(s)
	return s, nil
}

// MoveToNextResult moves to the next match of the last query, wrapping at
// the end of the buffer.
func MoveToNextResult(a *app.Application) error {
	return stepResult(a, (*modes.SelectableVec[buffer.Range]).SelectNext)
}

// MoveToPreviousResult moves to the previous match of the last query.
func MoveToPreviousResult(a *app.Application) error {
	return stepResult(a, (*modes.SelectableVec[buffer.Range]).SelectPrevious)
}

func stepResult(a *app.Application, step func(*modes.SelectableVec[buffer.Range])) error {
	fresh := true
	if _, ok := a.Mode.(*modes.Search); ok {
		fresh = false
	}
	s, err := activeSearch(a)
	if err != nil {
		return err
	}
	if s.Results.Empty() {
		return app.ErrNoSearchResults
	}
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	// A fresh search already selected the first match after the cursor.
	if !fresh {
		step(s.Results)
	} else if r, ok := s.Results.Selection(); ok && r.Start() == b.Cursor.Position {
		step(s.Results)
	}
	return moveToSelectedResult(a, s)
}

func moveToSelectedResult(a *app.Application, s *modes.Search) error {
	r, ok := s.Results.Selection()
	if !ok {
		return app.ErrNoSearchResults
	}
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	b.Cursor.MoveTo(r.Start())
	return ScrollToCenter(a)
}
