package commands

import (
	"errors"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/modes"
)

var confirmCommands = map[string]app.Command{
	"confirm.confirm_command": ConfirmCommand,
}

// ConfirmCommand runs the command the confirmation prompt was guarding.
func ConfirmCommand(a *app.Application) error {
	c, ok := a.Mode.(*modes.Confirm[app.Command])
	if !ok {
		return errors.New("not in confirm mode")
	}
	if err := SwitchToNormalMode(a); err != nil {
		return err
	}
	return c.Command(a)
}
