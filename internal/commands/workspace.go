package commands

import (
	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/buffer"
)

var workspaceCommands = map[string]app.Command{
	"workspace.next_buffer":     NextBuffer,
	"workspace.previous_buffer": PreviousBuffer,
	"workspace.new_buffer":      NewBuffer,
}

// NextBuffer shows the following open buffer.
func NextBuffer(a *app.Application) error {
	if _, err := a.CurrentBuffer(); err != nil {
		return err
	}
	a.Workspace.NextBuffer()
	return nil
}

// PreviousBuffer shows the preceding open buffer.
func PreviousBuffer(a *app.Application) error {
	if _, err := a.CurrentBuffer(); err != nil {
		return err
	}
	a.Workspace.PreviousBuffer()
	return nil
}

// NewBuffer opens an empty, pathless buffer.
func NewBuffer(a *app.Application) error {
	b := buffer.New()
	a.Workspace.AddBuffer(b)
	a.AddBuffer(b)
	return nil
}
