package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/amble/internal/app"
	"github.com/xonecas/amble/internal/buffer"
	"github.com/xonecas/amble/internal/git"
	"github.com/xonecas/amble/internal/modes"
)

var gitCommands = map[string]app.Command{
	"git.add":             GitAdd,
	"git.copy_remote_url": CopyRemoteURL,
}

func bufferWithPath(a *app.Application) (*buffer.Buffer, error) {
	b, err := a.CurrentBuffer()
	if err != nil {
		return nil, err
	}
	if b.Path == "" {
		return nil, buffer.ErrNoPath
	}
	return b, nil
}

// GitAdd stages the current buffer's file.
func GitAdd(a *app.Application) error {
	b, err := bufferWithPath(a)
	if err != nil {
		return err
	}
	if err := git.Add(a.Context(), b.Path); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	a.RefreshGitStatus(b)
	return nil
}

// CopyRemoteURL copies a web link to the cursor line, or to the selected
// lines, of the file at HEAD on the origin remote.
func CopyRemoteURL(a *app.Application) error {
	b, err := bufferWithPath(a)
	if err != nil {
		return err
	}
	lines := buffer.LineRange{Start: b.Cursor.Line, End: b.Cursor.Line}
	if sel, ok := a.Mode.(*modes.SelectLine); ok {
		lines = sel.ToRange(b.Cursor.Position)
	}
	url, err := git.RemoteFileURL(a.Context(), b.Path, lines.Start+1)
	if err != nil {
		return err
	}
	if lines.End != lines.Start {
		url += fmt.Sprintf("-L%d", lines.End+1)
	}
	a.Clipboard.Set(app.ClipboardContent{Text: url})
	log.Debug().Str("url", url).Msg("Copied remote URL")
	return SwitchToNormalMode(a)
}
