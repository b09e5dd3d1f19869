package viz

import "math"

// ResolveAll derives one data-space point per item. It is total: every item
// gets a finite coordinate, no matter which inputs it carries.
//
// Fallback chain, first applicable branch wins:
//  1. A precomputed projection with exactly two finite components is used
//     as-is.
//  2. The first two embedding components mapped through v*2-1. This assumes
//     inputs pre-scaled to [0,1] and is a degraded placeholder, not a real
//     projection; callers should treat such positions as low fidelity.
//  3. A deterministic slot on a radius-0.5 circle, derived only from the
//     item's index and the total count. Distinct, stable, no randomness.
func ResolveAll(items []Item) []DataPoint {
	points := make([]DataPoint, len(items))
	for i, it := range items {
		points[i] = resolve(it, i, len(items))
	}
	return points
}

func resolve(it Item, index, total int) DataPoint {
	p := DataPoint{ID: it.ID, Content: it.Content, Timestamp: it.Timestamp}

	if len(it.Projected) == 2 && finite(it.Projected[0]) && finite(it.Projected[1]) {
		p.X, p.Y = it.Projected[0], it.Projected[1]
		return p
	}

	if len(it.Embedding) >= 2 {
		p.X = float64(it.Embedding[0])*2 - 1
		p.Y = float64(it.Embedding[1])*2 - 1
		return p
	}

	angle := float64(index) / float64(total) * 2 * math.Pi
	p.X = 0.5 * math.Cos(angle)
	p.Y = 0.5 * math.Sin(angle)
	return p
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
