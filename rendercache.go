package presskit

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/presskit/markdown"
)

// RenderCache persists rendered body HTML keyed by a content hash, so
// rebuilds skip Markdown and highlighting work for unchanged documents.
// The cache is never authoritative: a miss or a read error just means a
// fresh render.
type RenderCache struct {
	db *sql.DB
}

// OpenRenderCache opens (or creates) the SQLite cache at path, ensures the
// data directory exists, and runs schema setup.
func OpenRenderCache(path string) (*RenderCache, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL with synchronous=NORMAL avoids an fsync per transaction; the
	// busy timeout makes concurrent builds wait instead of failing with
	// SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	c := &RenderCache{db: db}
	if err := c.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the underlying database connection.
func (c *RenderCache) Close() error {
	return c.db.Close()
}

func (c *RenderCache) ensureSchema() error {
	_, err := c.db.Exec(`
CREATE TABLE IF NOT EXISTS renders (
    key TEXT PRIMARY KEY,
    html BLOB NOT NULL,
    created TEXT NOT NULL
);
`)
	return err
}

// Get returns the cached HTML for key, if present.
func (c *RenderCache) Get(key string) ([]byte, bool) {
	var html []byte
	err := c.db.QueryRow(`SELECT html FROM renders WHERE key = ?`, key).Scan(&html)
	if err != nil {
		return nil, false
	}
	return html, true
}

// Put stores rendered HTML under key.
func (c *RenderCache) Put(key string, html []byte) error {
	_, err := c.db.Exec(`INSERT OR REPLACE INTO renders (key, html, created) VALUES (?, ?, ?)`,
		key, html, time.Now().UTC().Format(time.RFC3339))
	return err
}

// RenderKey hashes everything that influences a document's rendered body:
// the body text, the highlight theme, and the language allow-list. A
// config change therefore invalidates the whole cache naturally.
func RenderKey(doc Document, opts markdown.Options) string {
	h := sha256.New()
	h.Write([]byte(doc.Body))
	h.Write([]byte{0})
	h.Write([]byte(opts.Theme))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(opts.Languages, ",")))
	return hex.EncodeToString(h.Sum(nil))
}
