// Package exporter writes the bookmark library as Netscape bookmark HTML.
package exporter

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/linkscan/internal/library"
	"github.com/nikbrunner/linkscan/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/linkscan-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("linkscan-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// Write renders store as Netscape bookmark HTML. The hierarchy comes from
// library.BuildTree, so folders precede bookmarks at each level and parent
// cycles are cut.
func Write(w io.Writer, store *model.Store) error {
	added := make(map[string]int64, len(store.Bookmarks))
	for _, b := range store.Bookmarks {
		added[b.ID] = b.CreatedAt.Unix()
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	bw.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	bw.WriteString("<TITLE>Bookmarks</TITLE>\n")
	bw.WriteString("<H1>Bookmarks</H1>\n")
	bw.WriteString("<DL><p>\n")

	root := library.BuildTree(store)
	writeNodes(bw, root.Children, added, 1)

	bw.WriteString("</DL><p>\n")
	return bw.Flush()
}

// ExportHTML returns the Netscape bookmark HTML for store.
func ExportHTML(store *model.Store) string {
	var b strings.Builder
	_ = Write(&b, store)
	return b.String()
}

func writeNodes(w *bufio.Writer, nodes []model.TreeNode, added map[string]int64, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, n := range nodes {
		if n.IsFolder() {
			fmt.Fprintf(w, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(n.Title))
			fmt.Fprintf(w, "%s<DL><p>\n", prefix)
			writeNodes(w, n.Children, added, indent+1)
			fmt.Fprintf(w, "%s</DL><p>\n", prefix)
			continue
		}

		fmt.Fprintf(w, "%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
			prefix,
			html.EscapeString(n.URL),
			added[n.ID],
			html.EscapeString(n.Title),
		)
	}
}
