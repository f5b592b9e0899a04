package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Catalog caches book validation results in SQLite, keyed by file path and
// modification time, so repeated library scans skip re-reading unchanged
// files.
type Catalog struct {
	db *sql.DB
}

// OpenCatalog opens or creates the catalog database and applies migrations.
func OpenCatalog(path string) (*Catalog, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	c := &Catalog{db: db}
	if err := c.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return c, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS books (
			path TEXT PRIMARY KEY,
			mod_time TEXT NOT NULL,
			title TEXT NOT NULL,
			language TEXT NOT NULL,
			word_count INTEGER NOT NULL,
			valid INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_books_language ON books(language);`,
	}
	for _, stmt := range stmts {
		if _, err := c.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// lookup returns the cached validation verdict for path, hit=false when the
// entry is missing or the file changed since it was cached.
func (c *Catalog) lookup(ctx context.Context, path string, modTime time.Time) (valid bool, wordCount int, hit bool, err error) {
	var storedMod string
	row := c.db.QueryRowContext(ctx,
		`SELECT mod_time, word_count, valid FROM books WHERE path = ?`, path)
	var validInt int
	if err := row.Scan(&storedMod, &wordCount, &validInt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, 0, false, nil
		}
		return false, 0, false, err
	}
	if storedMod != modTime.UTC().Format(time.RFC3339Nano) {
		return false, 0, false, nil
	}
	return validInt != 0, wordCount, true, nil
}

// store records a validation verdict for path.
func (c *Catalog) store(ctx context.Context, path, title, language string, modTime time.Time, valid bool, wordCount int) error {
	validInt := 0
	if valid {
		validInt = 1
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO books (path, mod_time, title, language, word_count, valid)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			mod_time = excluded.mod_time,
			title = excluded.title,
			language = excluded.language,
			word_count = excluded.word_count,
			valid = excluded.valid`,
		path, modTime.UTC().Format(time.RFC3339Nano), title, language, wordCount, validInt)
	if err != nil {
		return fmt.Errorf("library: cache %s: %w", path, err)
	}
	return nil
}

// Prune drops catalog entries whose files no longer exist.
func (c *Catalog) Prune(ctx context.Context) error {
	rows, err := c.db.QueryContext(ctx, `SELECT path FROM books`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			_ = cerr
		}
	}()

	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			stale = append(stale, path)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, path := range stale {
		if _, err := c.db.ExecContext(ctx, `DELETE FROM books WHERE path = ?`, path); err != nil {
			return err
		}
	}
	return nil
}
