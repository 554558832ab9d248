package scan

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

const (
	visibleJS   = `() => document.visibilityState === "visible"`
	innerTextJS = `() => document.body ? document.body.innerText : ""`
)

// TabSource reads the active tab of a browser started with remote debugging
// (for example chrome --remote-debugging-port=9222).
type TabSource struct {
	DebugAddr string // host:port of the DevTools endpoint
}

// Text evaluates document.body.innerText in the first visible page.
// The browser is left running.
func (s TabSource) Text(ctx context.Context) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wsURL, err := launcher.ResolveURL(s.DebugAddr)
	if err != nil {
		return "", fmt.Errorf("%w: resolve devtools at %s: %w", ErrFetch, s.DebugAddr, err)
	}

	browser := rod.New().ControlURL(wsURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("%w: connect to browser: %w", ErrFetch, err)
	}

	pages, err := browser.Pages()
	if err != nil {
		return "", fmt.Errorf("%w: list tabs: %w", ErrFetch, err)
	}

	page, err := activePage(pages)
	if err != nil {
		return "", err
	}

	res, err := page.Eval(innerTextJS)
	if err != nil {
		return "", fmt.Errorf("%w: read tab text: %w", ErrFetch, err)
	}
	return res.Value.Str(), nil
}

// activePage returns the first page whose document is visible.
func activePage(pages rod.Pages) (*rod.Page, error) {
	for _, p := range pages {
		res, err := p.Eval(visibleJS)
		if err != nil {
			continue
		}
		if res.Value.Bool() {
			return p, nil
		}
	}
	return nil, ErrNoActiveTab
}
