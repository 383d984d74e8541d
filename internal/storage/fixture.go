package storage

import (
	"database/sql"
	"fmt"

	"github.com/hyperjump/kotae/internal/models"
)

// WriteFixture creates the schema table in db if needed and inserts rows in order.
// It is used by tests and local demos to produce a database in the generator's layout.
func WriteFixture(db *sql.DB, schema Schema, rows []*models.RecordRow) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s TEXT, %s TEXT, %s TEXT)`,
		schema.Table, schema.IDColumn, schema.VectorColumn, schema.ContentColumn)
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES (?, ?, ?)`,
		schema.Table, schema.IDColumn, schema.VectorColumn, schema.ContentColumn))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.ID, r.VectorJSON, r.Content); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// WriteFixtureFile creates (or appends to) a SQLite database file at path.
func WriteFixtureFile(path string, schema Schema, rows []*models.RecordRow) error {
	db, err := sql.Open("sqlite3", fileDSN(path, "rwc"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	return WriteFixture(db, schema, rows)
}
