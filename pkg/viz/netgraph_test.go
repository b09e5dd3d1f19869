package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSolver records the calls the façade makes.
type fakeSolver struct {
	nodes []*Node
	links []*Link

	cooldown int
	decay    float64
	minZoom  float64
	maxZoom  float64

	zoom       float64
	centeredAt [2]float64
	centered   bool
}

func (s *fakeSolver) SetGraph(nodes []*Node, links []*Link) {
	s.nodes, s.links = nodes, links
}
func (s *fakeSolver) Configure(cooldownTicks int, velocityDecay float64) {
	s.cooldown, s.decay = cooldownTicks, velocityDecay
}
func (s *fakeSolver) SetZoomBounds(min, max float64) { s.minZoom, s.maxZoom = min, max }
func (s *fakeSolver) CenterAt(x, y float64, ms int) {
	s.centeredAt = [2]float64{x, y}
	s.centered = true
}
func (s *fakeSolver) Zoom(scale float64, ms int) { s.zoom = scale }
func (s *fakeSolver) ZoomScale() float64         { return s.zoom }

func testItems() []Item {
	return []Item{
		{ID: "a", Content: "alpha"},
		{ID: "b", Content: "beta"},
		{ID: "c", Content: "gamma"},
	}
}

func TestNetworkView_SetupConfiguresSolverOnce(t *testing.T) {
	solver := &fakeSolver{zoom: 1}
	NewNetworkView(solver, NetworkOptions{})

	assert.Equal(t, defaultCooldownTicks, solver.cooldown)
	assert.Equal(t, defaultVelocityDecay, solver.decay)
	assert.Equal(t, networkMinZoom, solver.minZoom)
	assert.Equal(t, networkMaxZoom, solver.maxZoom)
}

func TestNetworkView_DropsDanglingEdges(t *testing.T) {
	solver := &fakeSolver{zoom: 1}
	view := NewNetworkView(solver, NetworkOptions{})

	view.SetData(testItems(), []SimilarityEdge{
		{SourceID: "a", TargetID: "b", Similarity: 0.8},
		{SourceID: "a", TargetID: "missing", Similarity: 0.9},
		{SourceID: "missing", TargetID: "b", Similarity: 0.9},
	})

	require.Len(t, view.Links(), 1)
	assert.Equal(t, 2, view.Dropped)
	// Every retained edge has both endpoints in the node set.
	for _, l := range view.Links() {
		assert.Contains(t, []string{"a", "b", "c"}, l.Source.ID)
		assert.Contains(t, []string{"a", "b", "c"}, l.Target.ID)
	}
	// The solver sees the filtered set.
	assert.Len(t, solver.links, 1)
	assert.Len(t, solver.nodes, 3)
}

func TestNetworkView_DegreeCentralityFallbackSize(t *testing.T) {
	solver := &fakeSolver{zoom: 1}
	view := NewNetworkView(solver, NetworkOptions{})

	items := testItems()
	items[2].SizeMetric = 0.9 // explicit metric wins
	view.SetData(items, []SimilarityEdge{
		{SourceID: "a", TargetID: "b", Similarity: 0.8},
		{SourceID: "a", TargetID: "c", Similarity: 0.7},
	})

	byID := map[string]*Node{}
	for _, n := range view.Nodes() {
		byID[n.ID] = n
	}
	assert.Equal(t, 1.0, byID["a"].Size) // degree 2 / (n-1)
	assert.Equal(t, 0.5, byID["b"].Size)
	assert.Equal(t, 0.9, byID["c"].Size)
}

func TestNetworkView_ClickDelegatesToSolverCamera(t *testing.T) {
	var focused string
	solver := &fakeSolver{zoom: 1}
	view := NewNetworkView(solver, NetworkOptions{OnFocus: func(id string) { focused = id }})
	view.SetData(testItems(), nil)

	n := view.Nodes()[0]
	n.X, n.Y = 123, -45 // live solver position

	view.HandleClick(n.ID)
	require.True(t, solver.centered)
	assert.Equal(t, [2]float64{123, -45}, solver.centeredAt)
	assert.Equal(t, focusZoom, solver.zoom)
	assert.Equal(t, "a", focused)

	// Already zoomed past the threshold: camera zoom is left alone.
	solver.zoom = 2.5
	view.HandleClick(n.ID)
	assert.Equal(t, 2.5, solver.zoom)
}

func TestNetworkView_DrawUsesSolverPositionsVerbatim(t *testing.T) {
	solver := &fakeSolver{zoom: 1}
	view := NewNetworkView(solver, NetworkOptions{})
	view.SetData(testItems(), []SimilarityEdge{{SourceID: "a", TargetID: "b", Similarity: 0.6}})

	a, b := view.Nodes()[0], view.Nodes()[1]
	a.X, a.Y = 210, 140
	b.X, b.Y = 510, 380

	rec := NewRecorder(800, 600)
	rec.Clear()
	view.DrawLink(view.Links()[0], rec)
	view.DrawNode(a, rec, 2.0)

	var line, circle Op
	for _, op := range rec.Ops {
		switch op.Kind {
		case "line":
			line = op
		case "fillCircle":
			circle = op
		}
	}
	// Solver screen coordinates pass straight through, no viewport math.
	assert.Equal(t, 210.0, line.X)
	assert.Equal(t, 510.0, line.X2)
	assert.Equal(t, 210.0, circle.X)
	assert.Equal(t, 140.0, circle.Y)
}

func TestNetworkView_LabelSizeInverseToZoom(t *testing.T) {
	solver := &fakeSolver{zoom: 1}
	view := NewNetworkView(solver, NetworkOptions{})
	view.SetData(testItems(), nil)

	rec := NewRecorder(800, 600)
	rec.Clear()
	view.DrawNode(view.Nodes()[0], rec, 2.0)

	var text Op
	for _, op := range rec.Ops {
		if op.Kind == "text" {
			text = op
		}
	}
	require.Equal(t, "text", text.Kind)
	assert.Equal(t, labelSize/2.0, text.Size)
}

func TestNetworkView_HoverAndOverlay(t *testing.T) {
	solver := &fakeSolver{zoom: 1}
	view := NewNetworkView(solver, NetworkOptions{})
	view.SetData(testItems(), nil)

	assert.Equal(t, CursorGrab, view.Cursor())

	view.HandleHover("b")
	assert.Equal(t, "b", view.Hover())
	assert.Equal(t, CursorPointer, view.Cursor())

	rec := NewRecorder(800, 600)
	rec.Clear()
	view.DrawOverlay(rec)
	assert.Equal(t, 1, rec.Count("roundedRect"))

	// Unknown ids clear instead of dangling.
	view.HandleHover("ghost")
	assert.Equal(t, "", view.Hover())

	// Data replacement clears stale hover.
	view.HandleHover("b")
	view.SetData(testItems()[:1], nil)
	assert.Equal(t, "", view.Hover())
}
