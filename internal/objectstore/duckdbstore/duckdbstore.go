// Package duckdbstore adapts the teacher's DuckDB-backed variant-result
// cache (internal/duckdb) into a durable objectstore.Store: VRS objects are
// content-addressed, so the table is a flat (id, type, payload) mapping
// rather than the teacher's wide variant_results schema.
package duckdbstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vrs-go/internal/objectstore"
)

// Store is a DuckDB-backed objectstore.Store.
type Store struct {
	db *sql.DB
}

// Open opens or creates a DuckDB database at path. An empty path opens an
// in-memory database, matching the teacher's Open semantics.
func Open(path string) (*Store, error) {
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create object store directory: %w", err)
			}
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS vrs_objects (
		id VARCHAR PRIMARY KEY,
		type VARCHAR,
		payload VARCHAR
	)`)
	return err
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get implements objectstore.Store.
func (s *Store) Get(id string) (any, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM vrs_objects WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, objectstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query object %s: %w", id, err)
	}

	var obj any
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		return nil, fmt.Errorf("decode object %s: %w", id, err)
	}
	return obj, nil
}

// Put implements objectstore.Store. Puts are keyed by content-derived id, so
// concurrent writers of the same object produce identical bytes (spec §5);
// a plain REPLACE resolves the last-writer-wins policy those collisions
// permit.
func (s *Store) Put(id string, obj any) error {
	payload, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("encode object %s: %w", id, err)
	}
	typeName := objectType(obj)
	_, err = s.db.Exec(`INSERT OR REPLACE INTO vrs_objects (id, type, payload) VALUES (?, ?, ?)`,
		id, typeName, string(payload))
	if err != nil {
		return fmt.Errorf("put object %s: %w", id, err)
	}
	return nil
}

// Iter implements objectstore.Store.
func (s *Store) Iter() ([]objectstore.Entry, error) {
	rows, err := s.db.Query(`SELECT id, payload FROM vrs_objects`)
	if err != nil {
		return nil, fmt.Errorf("iterate objects: %w", err)
	}
	defer rows.Close()

	var entries []objectstore.Entry
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan object: %w", err)
		}
		var obj any
		if err := json.Unmarshal([]byte(payload), &obj); err != nil {
			return nil, fmt.Errorf("decode object %s: %w", id, err)
		}
		entries = append(entries, objectstore.Entry{ID: id, Object: obj})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate objects: %w", err)
	}
	return entries, nil
}

func objectType(obj any) string {
	if m, ok := obj.(map[string]any); ok {
		if t, ok := m["type"].(string); ok {
			return t
		}
	}
	return ""
}
