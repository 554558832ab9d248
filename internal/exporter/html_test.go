package exporter

import (
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/linkscan/internal/importer"
	"github.com/nikbrunner/linkscan/internal/model"
)

func stringPtr(s string) *string { return &s }

func TestExportHTML_EmptyStore(t *testing.T) {
	out := ExportHTML(model.NewStore())

	for _, want := range []string{
		"<!DOCTYPE NETSCAPE-Bookmark-file-1>",
		"<TITLE>Bookmarks</TITLE>",
		"<H1>Bookmarks</H1>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q", want)
		}
	}
}

func TestExportHTML_SingleBookmark(t *testing.T) {
	store := &model.Store{Bookmarks: []model.Bookmark{
		{ID: "b1", Title: "GitHub", URL: "https://github.com", CreatedAt: time.Unix(1700000000, 0)},
	}}

	out := ExportHTML(store)

	if !strings.Contains(out, `<A HREF="https://github.com" ADD_DATE="1700000000">GitHub</A>`) {
		t.Errorf("expected bookmark line, got:\n%s", out)
	}
}

func TestExportHTML_NestedFolders(t *testing.T) {
	store := &model.Store{
		Folders: []model.Folder{
			{ID: "f1", Name: "Development"},
			{ID: "f2", Name: "React", ParentID: stringPtr("f1")},
		},
		Bookmarks: []model.Bookmark{
			{ID: "b0", Title: "Root", URL: "https://root.example", CreatedAt: time.Now()},
			{ID: "b1", Title: "TanStack Router", URL: "https://tanstack.com/router", FolderID: stringPtr("f2"), CreatedAt: time.Now()},
		},
	}

	out := ExportHTML(store)

	devIdx := strings.Index(out, "Development</H3>")
	reactIdx := strings.Index(out, "React</H3>")
	routerIdx := strings.Index(out, "TanStack Router</A>")
	rootIdx := strings.Index(out, "Root</A>")

	if devIdx == -1 || reactIdx == -1 || routerIdx == -1 || rootIdx == -1 {
		t.Fatalf("missing elements in output:\n%s", out)
	}
	if !(devIdx < reactIdx && reactIdx < routerIdx && routerIdx < rootIdx) {
		t.Error("expected Development > React > TanStack Router, then root bookmarks after folders")
	}
}

func TestExportHTML_EscapesSpecialCharacters(t *testing.T) {
	store := &model.Store{Bookmarks: []model.Bookmark{{
		ID:        "b1",
		Title:     "Test <script>alert('xss')</script>",
		URL:       "https://example.com?foo=bar&baz=qux",
		CreatedAt: time.Now(),
	}}}

	out := ExportHTML(store)

	if strings.Contains(out, "<script>") {
		t.Error("script tag should be escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("expected escaped script tag")
	}
	if !strings.Contains(out, "foo=bar&amp;baz") {
		t.Error("expected escaped ampersand in URL")
	}
}

func TestExportHTML_ParentCycleTerminates(t *testing.T) {
	store := &model.Store{Folders: []model.Folder{
		{ID: "a", Name: "A", ParentID: stringPtr("b")},
		{ID: "b", Name: "B", ParentID: stringPtr("a")},
	}}

	// Unreachable from the root, so nothing but the frame is written.
	out := ExportHTML(store)

	if strings.Contains(out, "<H3>") {
		t.Errorf("expected no folders, got:\n%s", out)
	}
}

func TestExportHTML_RoundTrip(t *testing.T) {
	store := &model.Store{
		Folders: []model.Folder{
			{ID: "f1", Name: "Trip"},
			{ID: "f2", Name: "Hotels", ParentID: stringPtr("f1")},
		},
		Bookmarks: []model.Bookmark{
			{ID: "b1", Title: "https://a.com", URL: "https://a.com", FolderID: stringPtr("f1"), CreatedAt: time.Unix(1700000000, 0)},
			{ID: "b2", Title: "https://b.com", URL: "https://b.com", FolderID: stringPtr("f2"), CreatedAt: time.Unix(1700000001, 0)},
		},
	}

	res, err := importer.Parse(strings.NewReader(ExportHTML(store)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Folders) != 2 || res.Folders[0].Name != "Trip" || res.Folders[1].Name != "Hotels" {
		t.Fatalf("unexpected folders %+v", res.Folders)
	}
	if res.Folders[1].ParentID == nil || *res.Folders[1].ParentID != res.Folders[0].ID {
		t.Error("expected Hotels inside Trip")
	}
	if len(res.Bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(res.Bookmarks))
	}
	// Nested folders are written before their parent's bookmarks
	b := res.Bookmarks[0]
	if b.URL != "https://b.com" || b.FolderID == nil || *b.FolderID != res.Folders[1].ID {
		t.Errorf("expected https://b.com in Hotels first, got %q", b.URL)
	}
	if !b.CreatedAt.Equal(time.Unix(1700000001, 0)) {
		t.Errorf("ADD_DATE not preserved: %v", b.CreatedAt)
	}
}
