// Package viz is the interactive visualization engine for thought embeddings.
// It renders two views over the same item collection: a force-directed
// similarity network and a projected 2D scatter plot. The engine owns
// coordinate projection, the viewport transform, hit-testing, proximity-edge
// derivation and the synchronous render pipeline; embedding generation,
// dimensionality reduction and the force physics live outside this package.
package viz

import "time"

// Item is one thought as handed over by the data source. Immutable for the
// duration of a render cycle; the whole set is replaced on refresh.
type Item struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// Embedding is the high-dimensional vector, when available.
	Embedding []float32 `json:"embedding,omitempty"`

	// Projected is a precomputed 2D projection (t-SNE or similar),
	// conventionally normalized to [-1, 1]. Length 2 when set.
	Projected []float64 `json:"projected,omitempty"`

	// SizeMetric weights the node in the network view. Zero means unset;
	// the network view then falls back to degree centrality.
	SizeMetric float64 `json:"sizeMetric,omitempty"`
}

// DataPoint is an Item resolved to one definite data-space coordinate.
// Recomputed whenever the item set or projection inputs change, never
// mutated in place.
type DataPoint struct {
	ID        string
	X, Y      float64
	Content   string
	Timestamp time.Time
}

// SimilarityEdge links two items with an externally computed similarity
// score in [0, 1]. The supplier pre-filters by threshold; this package only
// drops edges whose endpoint is no longer present.
type SimilarityEdge struct {
	SourceID   string  `json:"sourceId"`
	TargetID   string  `json:"targetId"`
	Similarity float64 `json:"similarity"`
}

// Cursor is the pointer hint the surrounding UI should apply to the surface.
type Cursor string

const (
	CursorGrab     Cursor = "grab"
	CursorPointer  Cursor = "pointer"
	CursorGrabbing Cursor = "grabbing"
)
