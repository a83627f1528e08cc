// Package commands implements every named editor command. Keymaps refer to
// commands by their dotted registry names, e.g. "cursor.move_down".
package commands

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/input"
)

// ErrNotCharacter is returned by commands that insert the last key pressed
// when it was not a character.
var ErrNotCharacter = errors.New("last key press wasn't a character")

// Registry returns every command keyed by name.
func Registry() map[string]app.Command {
	r := make(map[string]app.Command)
	for _, group := range []map[string]app.Command{
		applicationCommands,
		bufferCommands,
		cursorCommands,
		viewCommands,
		jumpCommands,
		lineJumpCommands,
		searchCommands,
		searchSelectCommands,
		selectionCommands,
		pathCommands,
		confirmCommands,
		workspaceCommands,
		gitCommands,
		preferencesCommands,
	} {
		for name, cmd := range group {
			r[name] = cmd
		}
	}
	return r
}

// Names lists the registered command names, sorted.
func Names() []string {
	r := Registry()
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildKeymap parses the built-in keymap and merges the user keymap at
// userPath over it. A missing user keymap is not an error.
func BuildKeymap(registry map[string]app.Command, userPath string) (input.KeyMap[app.Command], error) {
	lookup := func(name string) (app.Command, bool) {
		cmd, ok := registry[name]
		return cmd, ok
	}
	km, err := input.FromYAML(input.DefaultKeymap, lookup)
	if err != nil {
		return nil, fmt.Errorf("default keymap: %w", err)
	}
	if userPath == "" {
		return km, nil
	}
	data, err := os.ReadFile(userPath)
	if errors.Is(err, os.ErrNotExist) {
		return km, nil
	} else if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	user, err := input.FromYAML(data, lookup)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", userPath, err)
	}
	km.Merge(user)
	return km, nil
}

// lastChar returns the character of the key that triggered the command.
func lastChar(a *app.Application) (rune, error) {
	key, ok := a.View.LastKey()
	if !ok || key.Kind != input.KeyChar {
		return 0, ErrNotCharacter
	}
	return key.Rune, nil
}

func currentLine(b *buffer.Buffer) (string, error) {
	line, ok := b.Line(b.Cursor.Line)
	if !ok {
		return "", app.ErrCurrentLineMissing
	}
	return line, nil
}

// scrollToCursor keeps the cursor visible after it moves.
func scrollToCursor(a *app.Application) error {
	b, err := a.CurrentBuffer()
	if err != nil {
		return err
	}
	if err := a.View.ScrollToCursor(b); err != nil {
		return fmt.Errorf("scroll to cursor: %w", err)
	}
	return nil
}
