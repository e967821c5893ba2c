package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
	"github.com/wadjakorntonsri/weblinks/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

// SchemaVersion is stored in PRAGMA user_version once the collection exists.
const SchemaVersion = 1

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the link collection and upgrades its schema.
// The returned repository is ready for use.
func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driverName, err)
	}

	// A single connection serialises writers on the local file.
	if driverName == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version >= SchemaVersion {
		return nil
	}

	query := `
	CREATE TABLE IF NOT EXISTS links (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		url TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT '',
		tags JSON NOT NULL DEFAULT '[]',
		comments TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_links_author ON links(author, id);

	CREATE TABLE IF NOT EXISTS link_tags (
		tag TEXT NOT NULL,
		link_id INTEGER NOT NULL,
		PRIMARY KEY (tag, link_id)
	);
	CREATE INDEX IF NOT EXISTS idx_link_tags_link ON link_tags(link_id);
	`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("upgrade schema to version %d: %w", SchemaVersion, err)
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, SchemaVersion)); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}

// Add inserts a link without an id and stores the assigned id on it.
func (r *SQLiteRepository) Add(ctx context.Context, link *domain.Link) error {
	tagsJSON, err := encodeTags(link.Tags)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add link: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO links (title, url, author, tags, comments) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, query, link.Title, link.URL, link.Author, tagsJSON, link.Comments)
	if err != nil {
		return fmt.Errorf("add link %q: %w", link.Title, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("add link %q: %w", link.Title, err)
	}

	if err := writeTags(ctx, tx, id, link.Tags); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add link %q: %w", link.Title, err)
	}

	link.ID = id
	return nil
}

// Put stores the link under its id, replacing every field of an existing row.
func (r *SQLiteRepository) Put(ctx context.Context, link *domain.Link) error {
	if link.ID <= 0 {
		return fmt.Errorf("put link %q: %w", link.Title, domain.ErrInvalidID)
	}

	tagsJSON, err := encodeTags(link.Tags)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put link %d: %w", link.ID, err)
	}
	defer tx.Rollback()

	query := `INSERT INTO links (id, title, url, author, tags, comments) VALUES (?, ?, ?, ?, ?, ?)
			  ON CONFLICT(id) DO UPDATE SET
			  title = excluded.title, url = excluded.url, author = excluded.author,
			  tags = excluded.tags, comments = excluded.comments`
	if _, err := tx.ExecContext(ctx, query, link.ID, link.Title, link.URL, link.Author, tagsJSON, link.Comments); err != nil {
		return fmt.Errorf("put link %d: %w", link.ID, err)
	}

	if err := writeTags(ctx, tx, link.ID, link.Tags); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put link %d: %w", link.ID, err)
	}
	return nil
}

// Delete removes a link and its tag entries. Unknown ids are not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete link %d: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM link_tags WHERE link_id = ?`, id); err != nil {
		return fmt.Errorf("delete tags of link %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM links WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete link %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete link %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM links`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count links: %w", err)
	}
	return count, nil
}

// OpenCursor starts a walk over the scope. The cursor holds the connection until closed.
func (r *SQLiteRepository) OpenCursor(ctx context.Context, scope ports.Scope) (ports.Cursor, error) {
	query, args, err := cursorQuery(scope)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("open cursor on %q: %w", scopeName(scope), err)
	}
	return &cursor{rows: rows}, nil
}

// Dump returns every link in id order.
func (r *SQLiteRepository) Dump(ctx context.Context) ([]domain.Link, error) {
	c, err := r.OpenCursor(ctx, ports.All())
	if err != nil {
		return nil, err
	}
	defer c.Close()

	links := []domain.Link{}
	for c.Next() {
		links = append(links, c.Link())
	}
	return links, c.Err()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func writeTags(ctx context.Context, tx *sql.Tx, id int64, tags []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM link_tags WHERE link_id = ?`, id); err != nil {
		return fmt.Errorf("clear tags of link %d: %w", id, err)
	}
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO link_tags (tag, link_id) VALUES (?, ?)`, tag, id); err != nil {
			return fmt.Errorf("index tag %q of link %d: %w", tag, id, err)
		}
	}
	return nil
}

// encodeTags returns the JSON text stored in the tags column.
// Text rather than a blob, so SQLite JSON functions do not read it as JSONB.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func decodeTags(raw []byte) []string {
	tags := []string{}
	_ = json.Unmarshal(raw, &tags)
	if tags == nil {
		tags = []string{}
	}
	return tags
}

// Ensure interface compliance
var _ ports.LinkStore = (*SQLiteRepository)(nil)
