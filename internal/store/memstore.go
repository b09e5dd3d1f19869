package store

import (
	"math"
	"sort"
	"sync"

	"github.com/thoughtvault/govault/pkg/viz"
)

// Storer is the persistence interface, allowing MemStore for tests and
// SQLiteStore for durable storage.
type Storer interface {
	UpsertThought(t *Thought) error
	GetThought(id string) (*Thought, error)
	DeleteThought(id string) error

	// ListThoughts returns every thought ordered by timestamp, then id.
	// This ordering is the documented input order downstream hover
	// tie-breaking relies on.
	ListThoughts() ([]*Thought, error)
	CountThoughts() (int, error)

	// SimilarityPairs computes the exact pairwise cosine-similarity edge
	// set over all stored embeddings, keeping pairs at or above threshold.
	SimilarityPairs(threshold float64) ([]viz.SimilarityEdge, error)

	Close() error
}

// MemStore is the in-memory Storer.
type MemStore struct {
	mu       sync.RWMutex
	thoughts map[string]*Thought
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{thoughts: make(map[string]*Thought)}
}

// Close is a no-op for MemStore.
func (s *MemStore) Close() error {
	return nil
}

func (s *MemStore) UpsertThought(t *Thought) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thoughts[t.ID] = t
	return nil
}

func (s *MemStore) GetThought(id string) (*Thought, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thoughts[id], nil
}

func (s *MemStore) DeleteThought(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.thoughts, id)
	return nil
}

func (s *MemStore) ListThoughts() ([]*Thought, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Thought, 0, len(s.thoughts))
	for _, t := range s.thoughts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemStore) CountThoughts() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.thoughts), nil
}

func (s *MemStore) SimilarityPairs(threshold float64) ([]viz.SimilarityEdge, error) {
	thoughts, err := s.ListThoughts()
	if err != nil {
		return nil, err
	}

	var edges []viz.SimilarityEdge
	for i := 0; i < len(thoughts); i++ {
		if len(thoughts[i].Embedding) == 0 {
			continue
		}
		for j := i + 1; j < len(thoughts); j++ {
			if len(thoughts[j].Embedding) != len(thoughts[i].Embedding) {
				continue
			}
			sim := cosine(thoughts[i].Embedding, thoughts[j].Embedding)
			if sim < threshold {
				continue
			}
			a, b := thoughts[i].ID, thoughts[j].ID
			if a > b {
				a, b = b, a
			}
			edges = append(edges, viz.SimilarityEdge{SourceID: a, TargetID: b, Similarity: sim})
		}
	}
	return edges, nil
}

// cosine similarity clamped to [0, 1]. The SQLite store computes the same
// score via vec_distance_cosine.
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
