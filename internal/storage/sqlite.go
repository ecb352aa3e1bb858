package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when updating a publication the index does not hold.
	ErrNotFound = errors.New("publication not found")

	// ErrExists is returned when creating a publication whose identifier is taken.
	ErrExists = errors.New("publication already exists")
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- One row per publication, the document kept as JSON.
		-- Rows are flushed back to JSONL in rowid order.
		CREATE TABLE IF NOT EXISTS publications (
			id TEXT PRIMARY KEY,
			doc_json TEXT NOT NULL,
			title_norm TEXT,
			kind TEXT,
			doi TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_publications_doi ON publications(doi) WHERE doi IS NOT NULL;
		CREATE INDEX IF NOT EXISTS idx_publications_title_kind ON publications(title_norm, kind);

		CREATE TABLE IF NOT EXISTS publication_identifiers (
			pub_id TEXT NOT NULL REFERENCES publications(id) ON DELETE CASCADE,
			source_name TEXT NOT NULL,
			value TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_identifiers_lookup ON publication_identifiers(source_name, value);

		-- ISBNs normalized to ISBN-13 digits
		CREATE TABLE IF NOT EXISTS publication_isbns (
			pub_id TEXT NOT NULL REFERENCES publications(id) ON DELETE CASCADE,
			isbn TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_isbns_lookup ON publication_isbns(isbn);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	pubs, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	ctx := context.Background()
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning rebuild: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"publication_identifiers", "publication_isbns", "publications"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return 0, fmt.Errorf("clearing %s table: %w", table, err)
		}
	}

	for _, pub := range pubs {
		if err := insertPublication(ctx, tx, pub); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(pubs), nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertPublication(ctx context.Context, ex execer, pub publication.Publication) error {
	doc, err := json.Marshal(pub)
	if err != nil {
		return fmt.Errorf("encoding publication %s: %w", pub.Identifier, err)
	}

	_, err = ex.ExecContext(ctx, `
		INSERT INTO publications (id, doc_json, title_norm, kind, doi)
		VALUES (?, ?, ?, ?, ?)
	`, pub.Identifier, string(doc),
		nullableStringValue(publication.NormalizeTitle(pub.EntityDescription.MainTitle)),
		nullableStringValue(string(pub.Kind())),
		nullableStringValue(publication.NormalizeDOI(pub.DOI())),
	)
	if err != nil {
		return fmt.Errorf("inserting publication %s: %w", pub.Identifier, err)
	}
	return insertKeys(ctx, ex, pub)
}

// insertKeys writes the identifier and ISBN rows of pub.
func insertKeys(ctx context.Context, ex execer, pub publication.Publication) error {
	for _, id := range pub.AdditionalIdentifiers {
		if id.SourceName == "" || id.Value == "" {
			continue
		}
		_, err := ex.ExecContext(ctx, `
			INSERT INTO publication_identifiers (pub_id, source_name, value) VALUES (?, ?, ?)
		`, pub.Identifier, id.SourceName, id.Value)
		if err != nil {
			return fmt.Errorf("inserting identifier %s for %s: %w", id, pub.Identifier, err)
		}
	}
	for _, isbn := range publication.NormalizeISBNs(pub.ISBNs()) {
		_, err := ex.ExecContext(ctx, `
			INSERT INTO publication_isbns (pub_id, isbn) VALUES (?, ?)
		`, pub.Identifier, isbn)
		if err != nil {
			return fmt.Errorf("inserting isbn %s for %s: %w", isbn, pub.Identifier, err)
		}
	}
	return nil
}

// Insert adds a new publication to the index.
func (d *DB) Insert(ctx context.Context, pub publication.Publication) error {
	existing, err := d.GetByID(ctx, pub.Identifier)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrExists, pub.Identifier)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning insert: %w", err)
	}
	defer tx.Rollback()

	if err := insertPublication(ctx, tx, pub); err != nil {
		return err
	}
	return tx.Commit()
}

// Replace overwrites a stored publication in place, keeping its position.
func (d *DB) Replace(ctx context.Context, pub publication.Publication) error {
	doc, err := json.Marshal(pub)
	if err != nil {
		return fmt.Errorf("encoding publication %s: %w", pub.Identifier, err)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning update: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE publications SET doc_json = ?, title_norm = ?, kind = ?, doi = ?
		WHERE id = ?
	`, string(doc),
		nullableStringValue(publication.NormalizeTitle(pub.EntityDescription.MainTitle)),
		nullableStringValue(string(pub.Kind())),
		nullableStringValue(publication.NormalizeDOI(pub.DOI())),
		pub.Identifier,
	)
	if err != nil {
		return fmt.Errorf("updating publication %s: %w", pub.Identifier, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, pub.Identifier)
	}

	for _, table := range []string{"publication_identifiers", "publication_isbns"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE pub_id = ?", pub.Identifier); err != nil {
			return fmt.Errorf("clearing %s for %s: %w", table, pub.Identifier, err)
		}
	}
	if err := insertKeys(ctx, tx, pub); err != nil {
		return err
	}
	return tx.Commit()
}

// GetByID retrieves a publication by its identifier. It returns nil, nil
// when no such publication exists.
func (d *DB) GetByID(ctx context.Context, id string) (*publication.Publication, error) {
	row := d.db.QueryRowContext(ctx, `SELECT doc_json FROM publications WHERE id = ?`, id)
	return scanPublication(row)
}

// ListAll returns all publications in insertion order.
func (d *DB) ListAll(ctx context.Context) ([]publication.Publication, error) {
	return d.query(ctx, `SELECT doc_json FROM publications ORDER BY rowid`)
}

// Count returns the total number of publications.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM publications").Scan(&count)
	return count, err
}

// FindByIdentifier returns publications carrying the additional identifier.
func (d *DB) FindByIdentifier(ctx context.Context, id publication.AdditionalIdentifier) ([]publication.Publication, error) {
	if id.SourceName == "" || id.Value == "" {
		return nil, nil
	}
	return d.query(ctx, `
		SELECT p.doc_json FROM publications p
		WHERE p.id IN (
			SELECT pub_id FROM publication_identifiers WHERE source_name = ? AND value = ?
		)
		ORDER BY p.rowid
	`, id.SourceName, id.Value)
}

// FindByDOI returns publications with the DOI, compared in normalized form.
func (d *DB) FindByDOI(ctx context.Context, doi string) ([]publication.Publication, error) {
	doi = publication.NormalizeDOI(doi)
	if doi == "" {
		return nil, nil
	}
	return d.query(ctx, `SELECT doc_json FROM publications WHERE doi = ? ORDER BY rowid`, doi)
}

// FindByISBN returns publications whose context lists the ISBN.
func (d *DB) FindByISBN(ctx context.Context, isbn string) ([]publication.Publication, error) {
	isbn = publication.NormalizeISBN(isbn)
	if isbn == "" {
		return nil, nil
	}
	return d.query(ctx, `
		SELECT p.doc_json FROM publications p
		WHERE p.id IN (SELECT pub_id FROM publication_isbns WHERE isbn = ?)
		ORDER BY p.rowid
	`, isbn)
}

// FindByTitleAndType returns publications whose normalized main title and
// instance kind both match.
func (d *DB) FindByTitleAndType(ctx context.Context, title string, kind publication.Kind) ([]publication.Publication, error) {
	title = publication.NormalizeTitle(title)
	if title == "" || kind == "" {
		return nil, nil
	}
	return d.query(ctx, `
		SELECT doc_json FROM publications WHERE title_norm = ? AND kind = ? ORDER BY rowid
	`, title, string(kind))
}

func (d *DB) query(ctx context.Context, query string, args ...any) ([]publication.Publication, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying publications: %w", err)
	}
	defer rows.Close()

	return scanPublications(rows)
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanPublication(s scanner) (*publication.Publication, error) {
	var doc string
	if err := s.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var pub publication.Publication
	if err := json.Unmarshal([]byte(doc), &pub); err != nil {
		return nil, fmt.Errorf("parsing publication JSON: %w", err)
	}
	return &pub, nil
}

func scanPublications(rows *sql.Rows) ([]publication.Publication, error) {
	var pubs []publication.Publication
	for rows.Next() {
		pub, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		if pub != nil {
			pubs = append(pubs, *pub)
		}
	}
	return pubs, rows.Err()
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
