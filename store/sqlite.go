package store

import (
	"database/sql"
	"fmt"

	"github.com/miku/vitakit/schema/vita"
	"github.com/segmentio/encoding/json"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS publications (
	key   TEXT PRIMARY KEY,
	doi   TEXT,
	title TEXT NOT NULL,
	year  INTEGER NOT NULL,
	data  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_publications_year ON publications(year);
`

// SQLite persists publications in a single table, full record as JSON plus
// a few queryable columns.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) GetAll() ([]*vita.Publication, error) {
	rows, err := s.db.Query(`SELECT data FROM publications ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("select publications: %w", err)
	}
	defer rows.Close()
	var out []*vita.Publication
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var pub vita.Publication
		if err := json.Unmarshal(data, &pub); err != nil {
			return nil, fmt.Errorf("decode publication: %w", err)
		}
		out = append(out, &pub)
	}
	return out, rows.Err()
}

func (s *SQLite) Upsert(key string, pub *vita.Publication) error {
	data, err := json.Marshal(pub)
	if err != nil {
		return fmt.Errorf("encode publication: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO publications (key, doi, title, year, data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			doi = excluded.doi,
			title = excluded.title,
			year = excluded.year,
			data = excluded.data`,
		key, pub.DOI, pub.Title, pub.Year, string(data))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Exists(key string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM publications WHERE key = ?`, key).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
