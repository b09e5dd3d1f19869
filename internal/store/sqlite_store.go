package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"

	"github.com/thoughtvault/govault/pkg/viz"
)

// SQLiteStore is the SQLite-backed Storer. The sqlite-vec extension is
// registered through the blank import and supplies vec_distance_cosine for
// SQL-side pairwise similarity over the JSON-encoded embeddings.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS thoughts (
    id TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    timestamp INTEGER NOT NULL,
    embedding TEXT,
    projected TEXT
);

CREATE INDEX IF NOT EXISTS idx_thoughts_timestamp ON thoughts(timestamp);
`

// NewSQLiteStore creates a new in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a store with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) UpsertThought(t *Thought) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	embedding, projected, err := encodeVectors(t)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO thoughts (id, content, timestamp, embedding, projected)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			timestamp = excluded.timestamp,
			embedding = excluded.embedding,
			projected = excluded.projected
	`, t.ID, t.Content, t.Timestamp, embedding, projected)
	return err
}

func (s *SQLiteStore) GetThought(id string) (*Thought, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, content, timestamp, embedding, projected
		FROM thoughts WHERE id = ?
	`, id)

	t, err := scanThought(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func (s *SQLiteStore) DeleteThought(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM thoughts WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) ListThoughts() ([]*Thought, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, content, timestamp, embedding, projected
		FROM thoughts ORDER BY timestamp, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Thought
	for rows.Next() {
		t, err := scanThought(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CountThoughts() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM thoughts`).Scan(&count)
	return count, err
}

// SimilarityPairs computes pairwise cosine similarity in SQL. sqlite-vec
// accepts the JSON-encoded embedding text directly. Pairs are emitted once
// in canonical a.id < b.id order.
func (s *SQLiteStore) SimilarityPairs(threshold float64) ([]viz.SimilarityEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT a.id, b.id,
		       1.0 - vec_distance_cosine(a.embedding, b.embedding) AS sim
		FROM thoughts a
		JOIN thoughts b ON a.id < b.id
		WHERE a.embedding IS NOT NULL AND a.embedding != ''
		  AND b.embedding IS NOT NULL AND b.embedding != ''
		  AND 1.0 - vec_distance_cosine(a.embedding, b.embedding) >= ?
		ORDER BY a.id, b.id
	`, threshold)
	if err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}
	defer rows.Close()

	var edges []viz.SimilarityEdge
	for rows.Next() {
		var e viz.SimilarityEdge
		if err := rows.Scan(&e.SourceID, &e.TargetID, &e.Similarity); err != nil {
			return nil, err
		}
		if e.Similarity > 1 {
			e.Similarity = 1
		}
		if e.Similarity < 0 {
			e.Similarity = 0
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanThought(row rowScanner) (*Thought, error) {
	var t Thought
	var embedding, projected sql.NullString
	if err := row.Scan(&t.ID, &t.Content, &t.Timestamp, &embedding, &projected); err != nil {
		return nil, err
	}
	if embedding.Valid && embedding.String != "" {
		if err := json.Unmarshal([]byte(embedding.String), &t.Embedding); err != nil {
			return nil, fmt.Errorf("corrupt embedding for %s: %w", t.ID, err)
		}
	}
	if projected.Valid && projected.String != "" {
		if err := json.Unmarshal([]byte(projected.String), &t.Projected); err != nil {
			return nil, fmt.Errorf("corrupt projection for %s: %w", t.ID, err)
		}
	}
	return &t, nil
}

func encodeVectors(t *Thought) (string, string, error) {
	var embedding, projected string
	if len(t.Embedding) > 0 {
		b, err := json.Marshal(t.Embedding)
		if err != nil {
			return "", "", err
		}
		embedding = string(b)
	}
	if len(t.Projected) > 0 {
		b, err := json.Marshal(t.Projected)
		if err != nil {
			return "", "", err
		}
		projected = string(b)
	}
	return embedding, projected, nil
}
