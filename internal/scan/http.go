package scan

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// maxBody caps how much of a response is read.
const maxBody = 10 << 20

// HTTPSource fetches a page over HTTP and renders its visible text.
type HTTPSource struct {
	URL    string
	Client *http.Client // defaults to http.DefaultClient
	// Article distils the main content with readability before rendering.
	Article bool
}

// Text fetches the page. Transport errors and non-2xx responses wrap ErrFetch.
func (s HTTPSource) Text(ctx context.Context) (string, error) {
	u, err := url.Parse(s.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: invalid url %q", ErrFetch, s.URL)
	}

	body, err := s.fetch(ctx, u)
	if err != nil {
		return "", err
	}

	if s.Article {
		article, err := readability.FromReader(strings.NewReader(body), u)
		if err == nil && strings.TrimSpace(article.Content) != "" {
			body = article.Content
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", u, err)
	}
	// Only body text is visible; fall back to the whole document for fragments.
	sel := doc.Find("body")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	return InnerText(sel), nil
}

func (s HTTPSource) fetch(ctx context.Context, u *url.URL) (string, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("User-Agent", "linkscan/1.0")
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s returned status %d", ErrFetch, u, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}

	// Plain text is scanned as-is.
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		return "<pre>" + escapeText(string(data)) + "</pre>", nil
	}
	return string(data), nil
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
