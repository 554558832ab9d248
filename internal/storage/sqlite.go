package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/linkscan/internal/model"
)

const currentSchemaVersion = 1

// SQLiteStorage implements Storage and Appender using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Pragmas are per connection; keep a single one.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < currentSchemaVersion {
		return s.migrateV1()
	}
	return nil
}

// migrateV1 creates the initial schema. Rows are read back in rowid
// order, which keeps folders and bookmarks in creation order.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS folders (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			parent_id TEXT,
			FOREIGN KEY (parent_id) REFERENCES folders(id) ON DELETE SET NULL
		);

		CREATE INDEX IF NOT EXISTS idx_folders_parent_id ON folders(parent_id);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			folder_id TEXT,
			tags TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL,
			visited_at TEXT,
			FOREIGN KEY (folder_id) REFERENCES folders(id) ON DELETE SET NULL
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_folder_id ON bookmarks(folder_id);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the store from the SQLite database.
func (s *SQLiteStorage) Load() (*model.Store, error) {
	store := model.NewStore()

	rows, err := s.db.Query(`
		SELECT id, name, parent_id
		FROM folders
		ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var f model.Folder
		var parentID sql.NullString

		if err := rows.Scan(&f.ID, &f.Name, &parentID); err != nil {
			return nil, err
		}
		if parentID.Valid {
			f.ParentID = &parentID.String
		}

		store.Folders = append(store.Folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT id, title, url, folder_id, tags, created_at, visited_at
		FROM bookmarks
		ORDER BY rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Bookmark
		var folderID sql.NullString
		var tagsJSON string
		var createdAtStr string
		var visitedAtStr sql.NullString

		if err := rows.Scan(&b.ID, &b.Title, &b.URL, &folderID, &tagsJSON, &createdAtStr, &visitedAtStr); err != nil {
			return nil, err
		}

		if folderID.Valid {
			b.FolderID = &folderID.String
		}
		if err := json.Unmarshal([]byte(tagsJSON), &b.Tags); err != nil || b.Tags == nil {
			b.Tags = []string{}
		}
		b.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		if visitedAtStr.Valid {
			if t, err := time.Parse(time.RFC3339, visitedAtStr.String); err == nil {
				b.VisitedAt = &t
			}
		}

		store.Bookmarks = append(store.Bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store, nil
}

// Save replaces the database contents with store in one transaction.
func (s *SQLiteStorage) Save(store *model.Store) error {
	// Folders may reference parents that come later in the slice.
	// PRAGMA foreign_keys cannot be changed inside a transaction.
	if _, err := s.db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		return err
	}
	defer func() { _, _ = s.db.Exec("PRAGMA foreign_keys = ON") }()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM folders"); err != nil {
		return err
	}

	for _, f := range store.Folders {
		if err := insertFolder(tx, f); err != nil {
			return err
		}
	}
	for _, b := range store.Bookmarks {
		if err := insertBookmark(tx, b); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// AppendFolder inserts a single folder.
func (s *SQLiteStorage) AppendFolder(f model.Folder) error {
	return insertFolder(s.db, f)
}

// AppendBookmark inserts a single bookmark. The folder must exist.
func (s *SQLiteStorage) AppendBookmark(b model.Bookmark) error {
	return insertBookmark(s.db, b)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertFolder(db execer, f model.Folder) error {
	_, err := db.Exec(`
		INSERT INTO folders (id, name, parent_id)
		VALUES (?, ?, ?)
	`, f.ID, f.Name, f.ParentID)
	if err != nil {
		return fmt.Errorf("insert folder %s: %w", f.ID, err)
	}
	return nil
}

func insertBookmark(db execer, b model.Bookmark) error {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return err
	}

	var visitedAt *string
	if b.VisitedAt != nil {
		v := b.VisitedAt.Format(time.RFC3339)
		visitedAt = &v
	}

	_, err = db.Exec(`
		INSERT INTO bookmarks (id, title, url, folder_id, tags, created_at, visited_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.Title, b.URL, b.FolderID, string(tagsJSON), b.CreatedAt.Format(time.RFC3339), visitedAt)
	if err != nil {
		return fmt.Errorf("insert bookmark %s: %w", b.ID, err)
	}
	return nil
}
