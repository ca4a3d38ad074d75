// Package cache implements the on-disk conversion cache: a session file's
// already-converted SpoolFile, keyed by the source transcript's
// (path, mtime, size) so a re-discovery that finds an unchanged file can
// skip re-running the (potentially expensive) adapter Convert pass.
package cache

import (
	"bytes"
	"database/sql"
	"fmt"
	"time"

	"github.com/spoolhq/spool/pkg/spoolfile"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// Cache wraps a SQLite-backed conversion cache.
type Cache struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// Open opens (creating if needed) the cache database at path and applies
// its schema.
func Open(path string, log *zap.SugaredLogger) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	c := &Cache{db: db, log: log}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) migrate() error {
	statements := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		`CREATE TABLE IF NOT EXISTS conversions (
			source_path  TEXT NOT NULL,
			mtime_unix   INTEGER NOT NULL,
			size_bytes   INTEGER NOT NULL,
			agent        TEXT NOT NULL,
			converted_at INTEGER NOT NULL,
			spool_jsonl  BLOB NOT NULL,
			PRIMARY KEY (source_path, mtime_unix, size_bytes)
		);`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("cache: migrate: %w", err)
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached SpoolFile for (sourcePath, mtime, size), and
// false if there is no cache entry for that exact key — any change to the
// source file's mtime or size is a cache miss, never a stale hit.
func (c *Cache) Get(sourcePath string, mtime time.Time, size int64) (*spoolfile.SpoolFile, bool, error) {
	row := c.db.QueryRow(
		`SELECT spool_jsonl FROM conversions WHERE source_path = ? AND mtime_unix = ? AND size_bytes = ?`,
		sourcePath, mtime.Unix(), size,
	)
	var blob []byte
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache: get %s: %w", sourcePath, err)
	}

	file, err := spoolfile.FromReader(bytes.NewReader(blob), c.log)
	if err != nil {
		return nil, false, fmt.Errorf("cache: decode cached entry for %s: %w", sourcePath, err)
	}
	return file, true, nil
}

// Put stores file as the conversion result for (sourcePath, mtime, size),
// replacing any prior entry under the same key.
func (c *Cache) Put(sourcePath string, mtime time.Time, size int64, agent string, file *spoolfile.SpoolFile) error {
	var buf bytes.Buffer
	if err := file.WriteTo(&buf); err != nil {
		return fmt.Errorf("cache: serialize %s: %w", sourcePath, err)
	}

	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO conversions (source_path, mtime_unix, size_bytes, agent, converted_at, spool_jsonl)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sourcePath, mtime.Unix(), size, agent, time.Now().Unix(), buf.Bytes(),
	)
	if err != nil {
		return fmt.Errorf("cache: put %s: %w", sourcePath, err)
	}
	return nil
}

// Invalidate removes every cache entry for sourcePath, regardless of
// mtime/size, so a caller can force a fresh conversion on next Get.
func (c *Cache) Invalidate(sourcePath string) error {
	if _, err := c.db.Exec(`DELETE FROM conversions WHERE source_path = ?`, sourcePath); err != nil {
		return fmt.Errorf("cache: invalidate %s: %w", sourcePath, err)
	}
	return nil
}
