package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoughtvault/govault/pkg/viz"
)

func sampleItems() []viz.Item {
	at := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	}
	return []viz.Item{
		{ID: "a", Content: "Garden beds need compost", Timestamp: at(2025, time.March, 3)},
		{ID: "b", Content: "Raft leader election notes", Timestamp: at(2025, time.March, 9)},
		{ID: "c", Content: "compost tea experiment", Timestamp: at(2025, time.July, 1)},
		{ID: "d", Content: "winter reading list", Timestamp: at(2026, time.January, 15)},
	}
}

func ids(items []viz.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestApply_EmptyQueryKeepsAll(t *testing.T) {
	got := Apply(sampleItems(), Query{})
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(got))
}

func TestApply_YearAndMonthFacets(t *testing.T) {
	got := Apply(sampleItems(), Query{Year: 2025})
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))

	got = Apply(sampleItems(), Query{Year: 2025, Month: time.March})
	assert.Equal(t, []string{"a", "b"}, ids(got))

	got = Apply(sampleItems(), Query{Month: time.January})
	assert.Equal(t, []string{"d"}, ids(got))
}

func TestApply_KeywordsAreCaseInsensitiveAnyMatch(t *testing.T) {
	got := Apply(sampleItems(), Query{Keywords: []string{"COMPOST"}})
	assert.Equal(t, []string{"a", "c"}, ids(got))

	// Any keyword suffices.
	got = Apply(sampleItems(), Query{Keywords: []string{"raft", "winter"}})
	assert.Equal(t, []string{"b", "d"}, ids(got))

	got = Apply(sampleItems(), Query{Keywords: []string{"nowhere"}})
	assert.Empty(t, got)
}

func TestApply_FacetAndKeywordCombine(t *testing.T) {
	got := Apply(sampleItems(), Query{Year: 2025, Keywords: []string{"compost"}})
	assert.Equal(t, []string{"a", "c"}, ids(got))
}

// noopSolver satisfies viz.Solver for wiring checks; layout is irrelevant.
type noopSolver struct{}

func (noopSolver) SetGraph(nodes []*viz.Node, links []*viz.Link)      {}
func (noopSolver) Configure(cooldownTicks int, velocityDecay float64) {}
func (noopSolver) SetZoomBounds(min, max float64)                     {}
func (noopSolver) CenterAt(x, y float64, transitionMS int)            {}
func (noopSolver) Zoom(scale float64, transitionMS int)               {}
func (noopSolver) ZoomScale() float64                                 { return 1 }

func TestApply_NarrowedSetComposesWithNetworkView(t *testing.T) {
	// Edges derived over the full collection, then the view narrowed to one
	// year: edges touching hidden thoughts must not survive.
	edges := []viz.SimilarityEdge{
		{SourceID: "a", TargetID: "c", Similarity: 0.9},
		{SourceID: "c", TargetID: "d", Similarity: 0.8},
	}
	visible := Apply(sampleItems(), Query{Year: 2025})

	nv := viz.NewNetworkView(noopSolver{}, viz.NetworkOptions{})
	nv.SetData(visible, edges)

	require.Len(t, nv.Links(), 1)
	assert.Equal(t, "a", nv.Links()[0].Source.ID)
	assert.Equal(t, "c", nv.Links()[0].Target.ID)
	assert.Equal(t, 1, nv.Dropped)
	assert.Len(t, nv.Nodes(), 3)
}

func TestFacets(t *testing.T) {
	facets := Facets(sampleItems())
	require.Len(t, facets, 2)

	// Newest year first.
	assert.Equal(t, 2026, facets[0].Year)
	assert.Equal(t, 1, facets[0].Count)

	assert.Equal(t, 2025, facets[1].Year)
	assert.Equal(t, 3, facets[1].Count)
	assert.Equal(t, 2, facets[1].Months[time.March])
	assert.Equal(t, 1, facets[1].Months[time.July])
}

func TestFacets_Empty(t *testing.T) {
	assert.Empty(t, Facets(nil))
}
