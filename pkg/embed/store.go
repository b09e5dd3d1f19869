// Package embed manages the HNSW index over thought embeddings and derives
// the similarity-edge set the network view consumes.
package embed

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sort"
	"sync"

	"github.com/fogfish/hnsw"
	"github.com/fogfish/hnsw/vector"
	"github.com/hack-pad/hackpadfs"
	kvector "github.com/kshard/vector"

	"github.com/thoughtvault/govault/pkg/viz"
)

// Store wraps the HNSW index with persistence and a string<->uint32 id
// mapping (HNSW keys are uint32, thought ids are strings).
type Store struct {
	Index *hnsw.HNSW[vector.VF32]
	FS    hackpadfs.FS
	Path  string

	mu   sync.RWMutex
	ids  map[string]uint32
	rev  map[uint32]string
	vecs map[uint32][]float32
	next uint32

	// dim is the embedding dimensionality, fixed by the first Add. Vectors
	// are stored at this length; the index holds them padded (see pad4).
	dim int
}

// cosineSurface is the shared distance surface: standard cosine, the same
// configuration the index is built with.
var cosineSurface = vector.SurfaceVF32(kvector.Cosine())

// pad4 zero-pads v to the next multiple of 4. The cosine kernel rejects
// other lengths, and zero components leave the cosine distance unchanged,
// so arbitrary dimensionalities can still be indexed.
func pad4(v []float32) []float32 {
	if len(v)%4 == 0 {
		return v
	}
	p := make([]float32, (len(v)/4+1)*4)
	copy(p, v)
	return p
}

// snapshot is the gob payload written to FS. Vectors are kept alongside the
// graph nodes so pairwise similarity never has to dig into index internals.
type snapshot struct {
	Nodes hnsw.Nodes[vector.VF32]
	IDs   map[string]uint32
	Vecs  map[uint32][]float32
	Next  uint32
}

// NewStore loads the index at path, or initializes an empty one when no
// valid file exists.
func NewStore(fs hackpadfs.FS, path string) (*Store, error) {
	s := &Store{
		FS:   fs,
		Path: path,
		ids:  make(map[string]uint32),
		rev:  make(map[uint32]string),
		vecs: make(map[uint32][]float32),
		next: 1,
	}
	if err := s.Load(); err != nil {
		s.Index = hnsw.New[vector.VF32](cosineSurface)
	}
	return s, nil
}

// Add inserts or re-keys a thought embedding. Dimensions must match the
// existing index.
func (s *Store) Add(id string, vec []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Index == nil {
		return fmt.Errorf("index not initialized")
	}
	if len(vec) == 0 {
		return fmt.Errorf("empty vector for %q", id)
	}
	if s.dim == 0 {
		s.dim = len(vec)
	} else if len(vec) != s.dim {
		return fmt.Errorf("vector dimension mismatch: expected %d, got %d", s.dim, len(vec))
	}

	uid := s.uid(id)
	s.vecs[uid] = vec
	s.Index.Insert(vector.VF32{Key: uid, Vec: pad4(vec)})
	return nil
}

// uid returns (or mints) the uint32 key for a thought id. Caller holds mu.
func (s *Store) uid(id string) uint32 {
	if u, ok := s.ids[id]; ok {
		return u
	}
	u := s.next
	s.next++
	s.ids[id] = u
	s.rev[u] = id
	return u
}

// Len returns the number of stored embeddings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Vector returns the stored embedding for a thought id.
func (s *Store) Vector(id string) ([]float32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uid, ok := s.ids[id]
	if !ok {
		return nil, false
	}
	v, ok := s.vecs[uid]
	return v, ok
}

// Neighbors returns up to k thought ids nearest to the query vector.
func (s *Store) Neighbors(vec []float32, k int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Index == nil {
		return nil, fmt.Errorf("index not initialized")
	}
	if s.dim > 0 && len(vec) != s.dim {
		return nil, fmt.Errorf("vector dimension mismatch: expected %d, got %d", s.dim, len(vec))
	}

	ef := k * 2
	if ef < 100 {
		ef = 100
	}
	results := s.Index.Search(vector.VF32{Vec: pad4(vec)}, k, ef)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		if id, ok := s.rev[r.Key]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// similarity converts the cosine distance of the index surface into a
// similarity score clamped to [0, 1].
func (s *Store) similarity(a, b []float32) float64 {
	d := float64(cosineSurface.Distance(vector.VF32{Vec: pad4(a)}, vector.VF32{Vec: pad4(b)}))
	sim := 1 - d
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

// SimilarityEdges builds the network view's edge set: for every thought,
// take its k nearest neighbours and keep the pairs whose similarity clears
// threshold. Each pair appears once, source < target, and the result is
// sorted for deterministic output.
func (s *Store) SimilarityEdges(k int, threshold float64) []viz.SimilarityEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Index == nil || len(s.ids) < 2 {
		return nil
	}

	seen := make(map[[2]string]bool)
	var edges []viz.SimilarityEdge

	for id, uid := range s.ids {
		vec := s.vecs[uid]
		if vec == nil {
			continue
		}
		ef := (k + 1) * 2
		if ef < 100 {
			ef = 100
		}
		for _, r := range s.Index.Search(vector.VF32{Key: uid, Vec: pad4(vec)}, k+1, ef) {
			if r.Key == uid {
				continue
			}
			other, ok := s.rev[r.Key]
			if !ok {
				continue
			}
			a, b := id, other
			if a > b {
				a, b = b, a
			}
			key := [2]string{a, b}
			if seen[key] {
				continue
			}
			seen[key] = true
			sim := s.similarity(vec, s.vecs[r.Key])
			if sim < threshold {
				continue
			}
			edges = append(edges, viz.SimilarityEdge{SourceID: a, TargetID: b, Similarity: sim})
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].SourceID != edges[j].SourceID {
			return edges[i].SourceID < edges[j].SourceID
		}
		return edges[i].TargetID < edges[j].TargetID
	})
	return edges
}

// Save persists the index, id map and vectors to FS.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Index == nil {
		return nil
	}

	snap := snapshot{
		Nodes: s.Index.Nodes(),
		IDs:   s.ids,
		Vecs:  s.vecs,
		Next:  s.next,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := hackpadfs.WriteFullFile(s.FS, s.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}
	return nil
}

// Load reads a snapshot from FS and rehydrates the index.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := hackpadfs.ReadFile(s.FS, s.Path)
	if err != nil {
		return err
	}

	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(content)).Decode(&snap); err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}

	s.Index = hnsw.FromNodes[vector.VF32](cosineSurface, snap.Nodes)
	s.ids = snap.IDs
	s.vecs = snap.Vecs
	s.next = snap.Next
	s.rev = make(map[uint32]string, len(snap.IDs))
	for id, uid := range snap.IDs {
		s.rev[uid] = id
	}
	for _, v := range s.vecs {
		s.dim = len(v)
		break
	}
	return nil
}
