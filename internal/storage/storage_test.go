package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/linkscan/internal/config"
	"github.com/nikbrunner/linkscan/internal/model"
	"github.com/nikbrunner/linkscan/internal/storage"
)

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bookmarks.json")

	store := &model.Store{
		Folders: []model.Folder{
			{ID: "f1", Name: "Development", ParentID: nil},
		},
		Bookmarks: []model.Bookmark{
			{ID: "b1", Title: "Test", URL: "https://example.com"},
		},
	}

	s := storage.NewJSONStorage(configPath)
	if err := s.Save(store); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("bookmarks file was not created")
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded.Folders) != 1 {
		t.Errorf("expected 1 folder, got %d", len(loaded.Folders))
	}
	if len(loaded.Bookmarks) != 1 {
		t.Errorf("expected 1 bookmark, got %d", len(loaded.Bookmarks))
	}
}

func TestJSONStorage_LoadNonexistent(t *testing.T) {
	s := storage.NewJSONStorage(filepath.Join(t.TempDir(), "nonexistent.json"))

	store, err := s.Load()
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if len(store.Folders) != 0 || len(store.Bookmarks) != 0 {
		t.Error("expected empty store for missing file")
	}
}

func TestJSONStorage_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := storage.NewJSONStorage(path).Load(); err == nil {
		t.Error("expected decode error")
	}
}

func TestJSONStorage_PreservesOrder(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "bookmarks.json")

	store := &model.Store{
		Folders: []model.Folder{
			{ID: "f1", Name: "First"},
			{ID: "f2", Name: "Second"},
			{ID: "f3", Name: "Third"},
		},
		Bookmarks: []model.Bookmark{},
	}

	s := storage.NewJSONStorage(configPath)
	if err := s.Save(store); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	for i, name := range []string{"First", "Second", "Third"} {
		if loaded.Folders[i].Name != name {
			t.Errorf("order not preserved: expected %q at position %d, got %q", name, i, loaded.Folders[i].Name)
		}
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.StorageConfig
		wantErr bool
		check   func(t *testing.T, s storage.Storage)
	}{
		{
			name: "json backend",
			cfg:  config.StorageConfig{Backend: config.BackendJSON, Path: filepath.Join(dir, "a.json")},
			check: func(t *testing.T, s storage.Storage) {
				if _, ok := s.(*storage.JSONStorage); !ok {
					t.Errorf("expected JSONStorage, got %T", s)
				}
			},
		},
		{
			name: "sqlite backend",
			cfg:  config.StorageConfig{Backend: config.BackendSQLite, Path: filepath.Join(dir, "b.db")},
			check: func(t *testing.T, s storage.Storage) {
				if _, ok := s.(storage.Appender); !ok {
					t.Errorf("expected an Appender, got %T", s)
				}
			},
		},
		{
			name: "auto falls back to json",
			cfg:  config.StorageConfig{Backend: config.BackendAuto, Path: filepath.Join(dir, "missing.db")},
			check: func(t *testing.T, s storage.Storage) {
				js, ok := s.(*storage.JSONStorage)
				if !ok {
					t.Fatalf("expected JSONStorage, got %T", s)
				}
				if js.Path() != filepath.Join(dir, "missing.json") {
					t.Errorf("unexpected json path %q", js.Path())
				}
			},
		},
		{
			name:    "unknown backend",
			cfg:     config.StorageConfig{Backend: "bolt", Path: filepath.Join(dir, "c")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := storage.Open(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer storage.Close(s)
			tt.check(t, s)
		})
	}
}
