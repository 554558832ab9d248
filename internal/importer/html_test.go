package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/linkscan/internal/importer"
	"github.com/nikbrunner/linkscan/internal/model"
)

func TestParse_SingleBookmark(t *testing.T) {
	doc := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`

	res, err := importer.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Folders) != 0 {
		t.Errorf("expected 0 folders, got %d", len(res.Folders))
	}
	if len(res.Bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(res.Bookmarks))
	}

	b := res.Bookmarks[0]
	if b.Title != "Example Site" {
		t.Errorf("expected title 'Example Site', got %q", b.Title)
	}
	if b.URL != "https://example.com" {
		t.Errorf("expected URL 'https://example.com', got %q", b.URL)
	}
	if b.FolderID != nil {
		t.Errorf("expected FolderID nil (root), got %v", *b.FolderID)
	}
	if b.ID == "" {
		t.Error("expected non-empty ID")
	}
}

func TestParse_NestedFolders(t *testing.T) {
	doc := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`

	res, err := importer.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Folders) != 2 {
		t.Fatalf("expected 2 folders, got %d", len(res.Folders))
	}
	dev, react := res.Folders[0], res.Folders[1]
	if dev.Name != "Development" || dev.ParentID != nil {
		t.Errorf("expected root folder Development, got %q (parent %v)", dev.Name, dev.ParentID)
	}
	if react.Name != "React" || react.ParentID == nil || *react.ParentID != dev.ID {
		t.Error("React should be child of Development")
	}

	parents := map[string]*string{}
	for _, b := range res.Bookmarks {
		parents[b.Title] = b.FolderID
	}
	if len(parents) != 3 {
		t.Fatalf("expected 3 bookmarks, got %d", len(parents))
	}
	if p := parents["React Docs"]; p == nil || *p != react.ID {
		t.Error("React Docs should be in React folder")
	}
	if p := parents["GitHub"]; p == nil || *p != dev.ID {
		t.Error("GitHub should be in Development folder")
	}
	if parents["Google"] != nil {
		t.Error("Google should be at root level (FolderID nil)")
	}
}

func TestParse_EmptyFile(t *testing.T) {
	doc := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
</DL><p>`

	res, err := importer.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Folders == nil || res.Bookmarks == nil {
		t.Error("expected non-nil empty slices")
	}
	if len(res.Folders) != 0 || len(res.Bookmarks) != 0 {
		t.Errorf("expected nothing, got %d folders and %d bookmarks", len(res.Folders), len(res.Bookmarks))
	}
}

func TestParse_Timestamps(t *testing.T) {
	doc := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Test</A>
    <DT><A HREF="https://example.org">No date</A>
</DL><p>`

	before := time.Now()
	res, err := importer.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(res.Bookmarks))
	}
	if want := time.Unix(1234567890, 0); !res.Bookmarks[0].CreatedAt.Equal(want) {
		t.Errorf("expected CreatedAt %v, got %v", want, res.Bookmarks[0].CreatedAt)
	}
	if res.Bookmarks[1].CreatedAt.Before(before) {
		t.Error("expected import time for bookmark without ADD_DATE")
	}
}

func TestParse_Hrefs(t *testing.T) {
	doc := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><A ADD_DATE="1234567890">No URL</A>
    <DT><A HREF="www.example.com"></A>
    <DT><A HREF="https://valid.com">Valid</A>
</DL><p>`

	res, err := importer.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []model.Bookmark{
		{Title: "https://www.example.com", URL: "https://www.example.com"},
		{Title: "Valid", URL: "https://valid.com"},
	}
	if len(res.Bookmarks) != len(want) {
		t.Fatalf("expected %d bookmarks, got %d", len(want), len(res.Bookmarks))
	}
	for i, w := range want {
		if res.Bookmarks[i].Title != w.Title || res.Bookmarks[i].URL != w.URL {
			t.Errorf("bookmark %d: got %q %q, want %q %q", i,
				res.Bookmarks[i].Title, res.Bookmarks[i].URL, w.Title, w.URL)
		}
	}
}
