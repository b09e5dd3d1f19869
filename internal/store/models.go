// Package store provides persistence for thought items: content, timestamp,
// the embedding vector (JSON-encoded) and an optional precomputed 2D
// projection. It is the data source of the visualization engine, never the
// engine itself.
package store

import (
	"time"

	"github.com/thoughtvault/govault/pkg/viz"
)

// Thought is one stored item. Embedding and Projected are optional: the
// projection resolver copes with any combination.
type Thought struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Timestamp int64     `json:"timestamp"` // unix seconds
	Embedding []float32 `json:"embedding,omitempty"`
	Projected []float64 `json:"projected,omitempty"` // [x, y] in [-1, 1]
}

// Item converts a stored thought into the visualization input type.
func (t *Thought) Item() viz.Item {
	return viz.Item{
		ID:        t.ID,
		Content:   t.Content,
		Timestamp: time.Unix(t.Timestamp, 0).UTC(),
		Embedding: t.Embedding,
		Projected: t.Projected,
	}
}

// Items converts a thought list, preserving order.
func Items(thoughts []*Thought) []viz.Item {
	items := make([]viz.Item, len(thoughts))
	for i, t := range thoughts {
		items[i] = t.Item()
	}
	return items
}
