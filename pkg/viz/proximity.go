package viz

import "math"

// proximityThreshold is a data-space distance, so the derived links are
// invariant under zoom and pan.
const proximityThreshold = 0.3

// Pair is an unordered proximity link between two points, stored with the
// canonical ordering A < B (indices into the point slice).
type Pair struct {
	A, B int
}

// ProximityPairs returns every pair of distinct points closer than the fixed
// threshold in data space. Quadratic by design: this feeds the scatter view's
// faint connective lines, callers with very large sets downsample first.
// Pure and deterministic given the point slice.
func ProximityPairs(points []DataPoint) []Pair {
	var pairs []Pair
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			dx := points[i].X - points[j].X
			dy := points[i].Y - points[j].Y
			if math.Hypot(dx, dy) < proximityThreshold {
				pairs = append(pairs, Pair{A: i, B: j})
			}
		}
	}
	return pairs
}
