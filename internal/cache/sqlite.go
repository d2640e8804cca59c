package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Cache memoizes extraction results keyed by the exact raw profile text.
// Backed by a single-table SQLite database so repeated parses of the same
// text skip the model call entirely.
type Cache struct {
	db *sql.DB
}

// New opens (or creates) the cache database at path
func New(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	c := &Cache{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return c, nil
}

func (c *Cache) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS parsed_profiles (
		raw_text TEXT PRIMARY KEY,
		parsed_json TEXT NOT NULL,
		timestamp INTEGER NOT NULL
	);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Get returns the cached extraction for rawText, if any
func (c *Cache) Get(rawText string) ([]byte, bool, error) {
	var parsed string
	err := c.db.QueryRow(`SELECT parsed_json FROM parsed_profiles WHERE raw_text = ?`, rawText).Scan(&parsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache lookup failed: %w", err)
	}
	return []byte(parsed), true, nil
}

// Put stores the extraction for rawText, replacing any previous entry
func (c *Cache) Put(rawText string, parsedJSON []byte) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO parsed_profiles (raw_text, parsed_json, timestamp) VALUES (?, ?, ?)`,
		rawText, string(parsedJSON), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache store failed: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}
