// vizcheck exercises the visualization engine end to end without a browser:
// it seeds an in-memory store, derives similarity edges, and drives both
// views against the recording surface.
package main

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/hack-pad/hackpadfs/mem"

	"github.com/thoughtvault/govault/internal/store"
	"github.com/thoughtvault/govault/pkg/embed"
	"github.com/thoughtvault/govault/pkg/filter"
	"github.com/thoughtvault/govault/pkg/viz"
)

func main() {
	fmt.Println("Seeding store...")
	items, edges := seed()

	fmt.Println("\nChecking scatter view...")
	checkScatter(items)

	fmt.Println("\nChecking network view...")
	checkNetwork(items, edges)

	fmt.Println("\nChecking embed index...")
	checkEmbed(items)

	fmt.Println("\n✅ vizcheck passed")
}

func seed() ([]viz.Item, []viz.SimilarityEdge) {
	s := store.NewMemStore()
	defer s.Close()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC).Unix()
	thoughts := []*store.Thought{
		{ID: "t1", Content: "morning pages about the garden", Timestamp: base, Embedding: []float32{0.9, 0.1, 0.1}, Projected: []float64{-0.4, 0.2}},
		{ID: "t2", Content: "garden beds need compost", Timestamp: base + 3600, Embedding: []float32{0.85, 0.15, 0.1}, Projected: []float64{-0.3, 0.25}},
		{ID: "t3", Content: "reading notes on distributed consensus", Timestamp: base + 7200, Embedding: []float32{0.1, 0.9, 0.2}},
		{ID: "t4", Content: "raft leader election sketch", Timestamp: base + 9000, Embedding: []float32{0.12, 0.88, 0.25}},
		{ID: "t5", Content: "untagged scrap", Timestamp: base + 12000},
	}
	for _, t := range thoughts {
		if err := s.UpsertThought(t); err != nil {
			log.Fatalf("UpsertThought failed: %v", err)
		}
	}

	listed, err := s.ListThoughts()
	if err != nil {
		log.Fatalf("ListThoughts failed: %v", err)
	}
	fmt.Printf("  ✓ %d thoughts stored\n", len(listed))

	edges, err := s.SimilarityPairs(0.5)
	if err != nil {
		log.Fatalf("SimilarityPairs failed: %v", err)
	}
	fmt.Printf("  ✓ %d similarity edges at threshold 0.5\n", len(edges))

	items := store.Items(listed)
	facets := filter.Facets(items)
	fmt.Printf("  ✓ %d year facet(s)\n", len(facets))

	return items, edges
}

func checkScatter(items []viz.Item) {
	rec := viz.NewRecorder(800, 600)
	view := viz.NewScatterView(rec, viz.ScatterOptions{
		OnFocus: func(id string) { fmt.Printf("  ✓ focus fired for %s\n", id) },
	})
	view.SetItems(items)
	fmt.Printf("  ✓ initial frame: %d circles, %d lines, %d labels\n",
		rec.Count("fillCircle"), rec.Count("line"), rec.Count("text"))

	// Hover the first item, then click it.
	if len(items) > 0 {
		first := viz.ResolveAll(items)[0]
		vp := viz.NewViewport(800, 600)
		sx, sy := vp.ToScreen(first.X, first.Y)
		view.PointerMove(sx, sy)
		if view.Hover() != first.ID {
			log.Fatalf("expected hover %s, got %q", first.ID, view.Hover())
		}
		fmt.Printf("  ✓ hover hit %s (cursor %s)\n", view.Hover(), view.Cursor())
		view.Click(sx, sy)
		if s := view.Transform().Scale; math.Abs(s-1.5) > 1e-9 {
			log.Fatalf("expected focus zoom 1.5, got %v", s)
		}
	}

	// Zoom out past the clamp.
	for i := 0; i < 12; i++ {
		view.Wheel(+1)
	}
	if s := view.Transform().Scale; s != 0.5 {
		log.Fatalf("expected clamped scale 0.5, got %v", s)
	}
	fmt.Println("  ✓ zoom clamp held at 0.5")

	// Drag pans.
	view.ResetView()
	view.PointerDown(100, 100)
	view.PointerMove(140, 90)
	view.PointerUp()
	t := view.Transform()
	if t.OffsetX != 40 || t.OffsetY != -10 {
		log.Fatalf("unexpected pan offsets: %+v", t)
	}
	fmt.Println("  ✓ drag pan applied")
}

// stubSolver is a minimal Solver: circular layout, synchronous "ticks".
type stubSolver struct {
	nodes    []*viz.Node
	links    []*viz.Link
	zoom     float64
	centered [2]float64
}

func (s *stubSolver) SetGraph(nodes []*viz.Node, links []*viz.Link) {
	s.nodes, s.links = nodes, links
	for i, n := range nodes {
		angle := float64(i) / float64(len(nodes)) * 2 * math.Pi
		n.X = 400 + 150*math.Cos(angle)
		n.Y = 300 + 150*math.Sin(angle)
	}
}

func (s *stubSolver) Configure(cooldownTicks int, velocityDecay float64) {}
func (s *stubSolver) SetZoomBounds(min, max float64)                    {}
func (s *stubSolver) CenterAt(x, y float64, ms int)                     { s.centered = [2]float64{x, y} }
func (s *stubSolver) Zoom(scale float64, ms int)                        { s.zoom = scale }
func (s *stubSolver) ZoomScale() float64                                { return s.zoom }

func checkNetwork(items []viz.Item, edges []viz.SimilarityEdge) {
	solver := &stubSolver{zoom: 1}
	view := viz.NewNetworkView(solver, viz.NetworkOptions{})

	// Include one dangling edge to confirm it is dropped.
	edges = append(edges, viz.SimilarityEdge{SourceID: "t1", TargetID: "ghost", Similarity: 0.9})
	view.SetData(items, edges)
	if view.Dropped != 1 {
		log.Fatalf("expected 1 dropped edge, got %d", view.Dropped)
	}
	fmt.Printf("  ✓ graph: %d nodes, %d links, %d dropped\n",
		len(view.Nodes()), len(view.Links()), view.Dropped)

	rec := viz.NewRecorder(800, 600)
	rec.Clear()
	for _, l := range view.Links() {
		view.DrawLink(l, rec)
	}
	for _, n := range view.Nodes() {
		view.DrawNode(n, rec, solver.ZoomScale())
	}
	view.DrawOverlay(rec)
	fmt.Printf("  ✓ tick frame: %d circles, %d lines\n", rec.Count("fillCircle"), rec.Count("line"))

	if len(view.Nodes()) > 0 {
		id := view.Nodes()[0].ID
		view.HandleClick(id)
		if solver.zoom != 1.5 {
			log.Fatalf("expected solver zoom 1.5 after click, got %v", solver.zoom)
		}
		fmt.Printf("  ✓ click focused %s via solver camera\n", id)
	}
}

func checkEmbed(items []viz.Item) {
	fs, err := mem.NewFS()
	if err != nil {
		log.Fatalf("mem fs: %v", err)
	}
	s, err := embed.NewStore(fs, "hnsw.bin")
	if err != nil {
		log.Fatalf("embed store: %v", err)
	}
	for _, it := range items {
		if len(it.Embedding) == 0 {
			continue
		}
		if err := s.Add(it.ID, it.Embedding); err != nil {
			log.Fatalf("Add failed: %v", err)
		}
	}
	edges := s.SimilarityEdges(3, 0.5)
	fmt.Printf("  ✓ hnsw produced %d edges from %d vectors\n", len(edges), s.Len())
	if err := s.Save(); err != nil {
		log.Fatalf("Save failed: %v", err)
	}
	fmt.Println("  ✓ index persisted")
}
