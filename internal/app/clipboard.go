package app

import (
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"
)

// ClipboardContent is copied text. Block content holds whole lines and is
// pasted on its own line.
type ClipboardContent struct {
	Text  string
	Block bool
}

// Clipboard mirrors copies to the system clipboard when one is available and
// remembers whether the last copy was a block.
type Clipboard struct {
	content ClipboardContent
	read    func() (string, error)
	write   func(string) error
}

// NewClipboard uses the system clipboard when the platform supports it.
func NewClipboard() *Clipboard {
	if clipboard.Unsupported {
		return NewLocalClipboard()
	}
	return &Clipboard{read: clipboard.ReadAll, write: clipboard.WriteAll}
}

// NewLocalClipboard keeps copies in memory only.
func NewLocalClipboard() *Clipboard {
	return &Clipboard{}
}

// Set stores content.
func (c *Clipboard) Set(content ClipboardContent) {
	c.content = content
	if c.write == nil {
		return
	}
	if err := c.write(content.Text); err != nil {
		log.Debug().Err(err).Msg("System clipboard write failed")
	}
}

// Get returns the clipboard. Text copied by another program since the last
// Set is returned as inline content.
func (c *Clipboard) Get() ClipboardContent {
	if c.read == nil {
		return c.content
	}
	text, err := c.read()
	if err != nil {
		log.Debug().Err(err).Msg("System clipboard read failed")
		return c.content
	}
	if text != c.content.Text {
		return ClipboardContent{Text: text}
	}
	return c.content
}
