package scan

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
)

// ClipboardSource reads the text currently on the system clipboard.
type ClipboardSource struct {
	read func() (string, error)
}

// NewClipboardSource returns a ClipboardSource backed by the system clipboard.
func NewClipboardSource() ClipboardSource {
	return ClipboardSource{read: clipboard.ReadAll}
}

// Text returns the clipboard contents.
func (s ClipboardSource) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	read := s.read
	if read == nil {
		read = clipboard.ReadAll
	}
	text, err := read()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}
