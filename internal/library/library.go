// Package library exposes a storage backend as a browser-style bookmark
// store: a tree view for reading, and single-item create calls.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nikbrunner/linkscan/internal/logger"
	"github.com/nikbrunner/linkscan/internal/model"
	"github.com/nikbrunner/linkscan/internal/storage"
)

// RootID is the ID of the synthetic root node returned by GetTree.
// Using it as a parent places items at the root level.
const RootID = "0"

var (
	ErrFolderNotFound = errors.New("folder not found")
	ErrEmptyTitle     = errors.New("folder title is empty")
	ErrEmptyURL       = errors.New("bookmark URL is empty")
)

// Library is a bookmark store backed by a storage.Storage.
// It is safe for concurrent use.
type Library struct {
	mu      sync.Mutex
	storage storage.Storage
	log     logger.Logger
}

// New creates a Library over s. A nil log discards output.
func New(s storage.Storage, log logger.Logger) *Library {
	if log == nil {
		log = logger.NewNop()
	}
	return &Library{storage: s, log: log}
}

// GetTree returns the full bookmark hierarchy under a synthetic root.
// Every folder node has a non-nil Children slice.
func (l *Library) GetTree(ctx context.Context) (model.TreeNode, error) {
	if err := ctx.Err(); err != nil {
		return model.TreeNode{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	store, err := l.storage.Load()
	if err != nil {
		return model.TreeNode{}, fmt.Errorf("load bookmarks: %w", err)
	}
	return BuildTree(store), nil
}

// CreateFolder creates a folder with the given title at the root level
// and returns its ID. Titles are not required to be unique.
func (l *Library) CreateFolder(ctx context.Context, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(title) == "" {
		return "", ErrEmptyTitle
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	folder := model.NewFolder(model.NewFolderParams{Name: title})

	if app, ok := l.storage.(storage.Appender); ok {
		if err := app.AppendFolder(folder); err != nil {
			return "", err
		}
	} else {
		store, err := l.storage.Load()
		if err != nil {
			return "", fmt.Errorf("load bookmarks: %w", err)
		}
		store.Folders = append(store.Folders, folder)
		if err := l.storage.Save(store); err != nil {
			return "", fmt.Errorf("save bookmarks: %w", err)
		}
	}

	l.log.Debug("folder created", logger.String("id", folder.ID), logger.String("title", title))
	return folder.ID, nil
}

// CreateBookmark creates a leaf bookmark and returns its ID. An empty
// ParentID or RootID places it at the root level; any other parent must
// be an existing folder.
func (l *Library) CreateBookmark(ctx context.Context, params model.CreateBookmarkParams) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if params.URL == "" {
		return "", ErrEmptyURL
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	store, err := l.storage.Load()
	if err != nil {
		return "", fmt.Errorf("load bookmarks: %w", err)
	}

	var folderID *string
	if params.ParentID != "" && params.ParentID != RootID {
		if store.GetFolderByID(params.ParentID) == nil {
			return "", fmt.Errorf("parent %s: %w", params.ParentID, ErrFolderNotFound)
		}
		id := params.ParentID
		folderID = &id
	}

	bm := model.NewBookmark(model.NewBookmarkParams{
		Title:    params.Title,
		URL:      params.URL,
		FolderID: folderID,
	})

	if app, ok := l.storage.(storage.Appender); ok {
		if err := app.AppendBookmark(bm); err != nil {
			return "", err
		}
	} else {
		store.Bookmarks = append(store.Bookmarks, bm)
		if err := l.storage.Save(store); err != nil {
			return "", fmt.Errorf("save bookmarks: %w", err)
		}
	}

	l.log.Debug("bookmark created", logger.String("id", bm.ID), logger.String("url", bm.URL))
	return bm.ID, nil
}

// Snapshot returns the stored folders and bookmarks.
func (l *Library) Snapshot(ctx context.Context) (*model.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	store, err := l.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}
	return store, nil
}

// Import merges parsed folders and bookmarks into the store. Bookmarks
// already present with the same URL in the same folder are skipped.
func (l *Library) Import(ctx context.Context, folders []model.Folder, bookmarks []model.Bookmark) (added, skipped int, err error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	store, err := l.storage.Load()
	if err != nil {
		return 0, 0, fmt.Errorf("load bookmarks: %w", err)
	}

	added, skipped = store.ImportMerge(folders, bookmarks)
	if err := l.storage.Save(store); err != nil {
		return 0, 0, fmt.Errorf("save bookmarks: %w", err)
	}

	l.log.Info("bookmarks imported",
		logger.Int("folders", len(folders)),
		logger.Int("added", added),
		logger.Int("skipped", skipped),
	)
	return added, skipped, nil
}

// BuildTree converts a flat store into a tree under a synthetic root.
// At each level folders come first, then bookmarks, both in store order.
func BuildTree(store *model.Store) model.TreeNode {
	root := model.TreeNode{ID: RootID}
	root.Children = children(store, nil, map[string]bool{})
	return root
}

// children lists the nodes under parentID. seen stops parent cycles.
func children(store *model.Store, parentID *string, seen map[string]bool) []model.TreeNode {
	nodes := []model.TreeNode{}

	for _, f := range store.GetFoldersInFolder(parentID) {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		id := f.ID
		nodes = append(nodes, model.TreeNode{
			ID:       f.ID,
			Title:    f.Name,
			Children: children(store, &id, seen),
		})
	}

	for _, b := range store.GetBookmarksInFolder(parentID) {
		nodes = append(nodes, model.TreeNode{
			ID:    b.ID,
			Title: b.Title,
			URL:   b.URL,
		})
	}

	return nodes
}
