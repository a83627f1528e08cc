package commands

import (
	"errors"
	"path/filepath"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/modes"
)

// ErrNotPathMode is returned by path commands run in any other mode.
var ErrNotPathMode = errors.New("not in path mode")

var pathCommands = map[string]app.Command{
	"path.push_char":   PushPathChar,
	"path.pop_char":    PopPathChar,
	"path.accept_path": AcceptPath,
}

func pathMode(a *app.Application) (*modes.Path, error) {
	p, ok := a.Mode.(*modes.Path)
	if !ok {
		return nil, ErrNotPathMode
	}
	return p, nil
}

// PushPathChar appends the typed character to the path being edited.
func PushPathChar(a *app.Application) error {
	p, err := pathMode(a)
	if err != nil {
		return err
	}
	c, err := lastChar(a)
	if err != nil {
		return err
	}
	p.PushChar(c)
	return nil
}

// PopPathChar drops the last character of the path being edited.
func PopPathChar(a *app.Application) error {
	p, err := pathMode(a)
	if err != nil {
		return err
	}
	p.PopChar()
	return nil
}

// AcceptPath assigns the typed path to the current buffer, saving it when
// the path prompt was opened by a save.
func AcceptPath(a *app.Application) error {
	p, err := pathMode(a)
	if err != nil {
		return err
	}
	if p.Input == "" {
		return app.ErrPathMissing
	}
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	path := p.Input
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.Workspace.Path, path)
	}
	b.SetPath(filepath.Clean(path))
	a.RefreshGitStatus(b)

	a.SwitchMode(modes.Normal{})
	if p.SaveOnAccept {
		return Save(a)
	}
	return nil
}
