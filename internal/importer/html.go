// Package importer reads Netscape bookmark HTML as exported by browsers.
package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nikbrunner/linkscan/internal/extract"
	"github.com/nikbrunner/linkscan/internal/model"
	"golang.org/x/net/html"
)

// Result holds the parsed folders and bookmarks in document order.
type Result struct {
	Folders   []model.Folder
	Bookmarks []model.Bookmark
}

// parser walks the document. An H3 names a folder that owns the next DL.
type parser struct {
	result  Result
	stack   []string // open folder IDs, innermost last
	pending string   // folder waiting for its DL
	now     time.Time
}

// Parse reads Netscape bookmark HTML. Bookmarks without an HREF are
// skipped; bare www. URLs get an https:// scheme.
func Parse(r io.Reader) (Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Result{}, err
	}

	p := &parser{
		result: Result{Folders: []model.Folder{}, Bookmarks: []model.Bookmark{}},
		now:    time.Now(),
	}
	p.walk(doc)
	return p.result, nil
}

func (p *parser) parent() *string {
	if len(p.stack) == 0 {
		return nil
	}
	id := p.stack[len(p.stack)-1]
	return &id
}

func (p *parser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "h3":
			p.folder(n)
			return
		case "a":
			p.bookmark(n)
			return
		case "dl":
			p.list(n)
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func (p *parser) folder(n *html.Node) {
	name := textContent(n)
	if name == "" {
		return
	}
	f := model.NewFolder(model.NewFolderParams{Name: name, ParentID: p.parent()})
	p.result.Folders = append(p.result.Folders, f)
	p.pending = f.ID
}

func (p *parser) bookmark(n *html.Node) {
	href := strings.TrimSpace(attr(n, "href"))
	if href == "" {
		return
	}
	href = extract.Normalize(href)

	title := textContent(n)
	if title == "" {
		title = href
	}

	createdAt := p.now
	if ts, err := strconv.ParseInt(attr(n, "add_date"), 10, 64); err == nil {
		createdAt = time.Unix(ts, 0)
	}

	b := model.NewBookmark(model.NewBookmarkParams{
		Title:    title,
		URL:      href,
		FolderID: p.parent(),
	})
	b.CreatedAt = createdAt
	p.result.Bookmarks = append(p.result.Bookmarks, b)
}

// list handles a DL: it scopes its children to the pending folder, if any.
func (p *parser) list(n *html.Node) {
	pushed := false
	if p.pending != "" {
		p.stack = append(p.stack, p.pending)
		p.pending = ""
		pushed = true
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}

	if pushed {
		p.stack = p.stack[:len(p.stack)-1]
	}
}

// textContent returns the trimmed text of a node.
func textContent(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.TrimSpace(b.String())
}

// attr returns an attribute value. The html parser lowercases keys.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
