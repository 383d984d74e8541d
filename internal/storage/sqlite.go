package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"regexp"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/kotae/internal/models"
)

// Schema names the table and columns holding the embeddings.
type Schema struct {
	Table         string
	IDColumn      string
	VectorColumn  string
	ContentColumn string
}

// DefaultSchema is the file_info layout written by the embedding generator.
func DefaultSchema() Schema {
	return Schema{
		Table:         "file_info",
		IDColumn:      "nombre",
		VectorColumn:  "embedding",
		ContentColumn: "original_content",
	}
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate rejects names that are not plain SQL identifiers.
func (s Schema) Validate() error {
	for _, name := range []string{s.Table, s.IDColumn, s.VectorColumn, s.ContentColumn} {
		if !identPattern.MatchString(name) {
			return fmt.Errorf("invalid identifier in storage schema: %q", name)
		}
	}
	return nil
}

// fileDSN builds a SQLite URI filename for path. The path is escaped so '?', '#' and
// '%' in file names are not read as URI syntax.
func fileDSN(path, mode string) string {
	return "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=" + mode
}

// SQLiteStorage implements RecordSource using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	schema Schema
}

// NewSQLiteStorage opens an existing SQLite database at dbPath. The database is never
// created or written to. ":memory:" is accepted for tests.
func NewSQLiteStorage(dbPath string, schema Schema) (*SQLiteStorage, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	dsn := dbPath
	if dbPath != ":memory:" {
		if _, err := os.Stat(dbPath); err != nil {
			return nil, fmt.Errorf("database not found: %w", err)
		}
		dsn = fileDSN(dbPath, "ro")
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &SQLiteStorage{db: db, schema: schema}, nil
}

// ListRecords returns every row ordered by rowid, so the store keeps the insertion
// order of the database. NULL columns read as empty strings.
func (s *SQLiteStorage) ListRecords(ctx context.Context) ([]*models.RecordRow, error) {
	q := fmt.Sprintf(
		`SELECT COALESCE(%s, ''), COALESCE(%s, ''), COALESCE(%s, '') FROM %s ORDER BY rowid`,
		s.schema.IDColumn, s.schema.VectorColumn, s.schema.ContentColumn, s.schema.Table,
	)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var out []*models.RecordRow
	for rows.Next() {
		var row models.RecordRow
		if err := rows.Scan(&row.ID, &row.VectorJSON, &row.Content); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}

// CountRecords returns the number of rows in the embeddings table.
func (s *SQLiteStorage) CountRecords(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, s.schema.Table)).Scan(&count)
	return count, err
}

// DB exposes the underlying handle; used by tests to seed fixtures.
func (s *SQLiteStorage) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
