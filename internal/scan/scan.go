// Package scan reads the text of a page so links can be extracted from it.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrNoActiveTab is returned when the browser has no visible page.
	ErrNoActiveTab = errors.New("no active tab")
	// ErrFetch is returned when a page could not be retrieved.
	ErrFetch = errors.New("fetch failed")
)

// Source yields the visible text of one page.
type Source interface {
	Text(ctx context.Context) (string, error)
}

// Reader reads page text from a file or stdin.
type Reader struct {
	Path string    // "" or "-" reads In
	In   io.Reader // defaults to os.Stdin
}

// Text returns the whole input. If the input looks like HTML it is rendered
// to visible text first.
func (r Reader) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var data []byte
	var err error
	if r.Path == "" || r.Path == "-" {
		in := r.In
		if in == nil {
			in = os.Stdin
		}
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(r.Path)
	}
	if err != nil {
		return "", fmt.Errorf("read page text: %w", err)
	}

	if looksLikeHTML(data) {
		return RenderHTML(string(data))
	}
	return string(data), nil
}
