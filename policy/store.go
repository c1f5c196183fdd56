package policy

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Document is one policy page held in the knowledge base.
type Document struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	FetchedAt time.Time `json:"fetched_at"`
}

const createDocumentsTable = `
CREATE TABLE IF NOT EXISTS policy_documents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	url TEXT NOT NULL UNIQUE,
	category TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL,
	fetched_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_policy_documents_category ON policy_documents(category);
`

// DB wraps the SQLite knowledge base connection
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and initializes the schema
func Open(dbPath string) (*DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec(createDocumentsTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create policy schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Upsert inserts a document or refreshes the stored copy when the URL is
// already known.
func (db *DB) Upsert(doc Document) error {
	_, err := db.conn.Exec(`
		INSERT INTO policy_documents (title, url, category, content, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			content = excluded.content,
			fetched_at = excluded.fetched_at`,
		doc.Title, doc.URL, doc.Category, doc.Content, doc.FetchedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert policy document: %w", err)
	}
	return nil
}

// All returns every stored document, newest first.
func (db *DB) All() ([]Document, error) {
	rows, err := db.conn.Query(`
		SELECT id, title, url, category, content, fetched_at
		FROM policy_documents ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query policy documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Title, &d.URL, &d.Category, &d.Content, &d.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan policy document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// ByCategory returns documents within one category, newest first.
func (db *DB) ByCategory(category string) ([]Document, error) {
	rows, err := db.conn.Query(`
		SELECT id, title, url, category, content, fetched_at
		FROM policy_documents WHERE category = ? ORDER BY fetched_at DESC`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query policy documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Title, &d.URL, &d.Category, &d.Content, &d.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan policy document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Count returns the number of stored documents.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM policy_documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count policy documents: %w", err)
	}
	return n, nil
}
