package commands

import (
	"errors"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/modes"
)

// ErrNotJumpMode is returned by jump commands run outside jump mode.
var ErrNotJumpMode = errors.New("can't match jump tags outside of jump mode")

var jumpCommands = map[string]app.Command{
	"jump.push_search_char": PushJumpChar,
	"jump.match_tag":        MatchTag,
}

func jumpMode(a *app.Application) (*modes.Jump, error) {
	j, ok := a.Mode.(*modes.Jump)
	if !ok {
		return nil, ErrNotJumpMode
	}
	return j, nil
}

// PushJumpChar adds the last key to the jump input.
func PushJumpChar(a *app.Application) error {
	j, err := jumpMode(a)
	if err != nil {
		return err
	}
	c, err := lastChar(a)
	if err != nil {
		return err
	}
	j.PushSearchChar(c)
	return nil
}

// MatchTag moves the cursor to the tag named by the input once it resolves,
// then restores the mode active before the jump. Input that doesn't resolve
// leaves jump mode as it is.
func MatchTag(a *app.Application) error {
	j, err := jumpMode(a)
	if err != nil {
		return err
	}
	pos, ok := j.MatchTag()
	if !ok {
		return nil
	}
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	if !b.Cursor.MoveTo(pos) {
		return errors.New("couldn't move to the tag's position " + pos.String())
	}
	a.SwitchMode(j.Restore())
	return scrollToCursor(a)
}
