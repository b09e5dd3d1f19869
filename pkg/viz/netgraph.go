package viz

import "math"

// Network view camera bounds and solver defaults. The camera belongs to the
// external solver, not to Viewport.
const (
	networkMinZoom = 0.5
	networkMaxZoom = 5.0

	defaultCooldownTicks = 200
	defaultVelocityDecay = 0.3

	baseNodeRadius = 4.0
	hitPadding     = 4.0

	focusTransitionMS = 400
)

// Node is a network-view node. X and Y are live solver positions in the
// solver's own screen-space layout; they are never run through Viewport.
type Node struct {
	ID        string
	Item      Item
	Size      float64
	X, Y      float64
}

// Link is a retained similarity edge with resolved endpoints.
type Link struct {
	Source, Target *Node
	Similarity     float64
}

// Solver is the external force-directed layout capability. Anything that
// accepts a node/edge set, drives its own tick loop, and exposes camera
// primitives is substitutable (the browser binding wraps force-graph).
type Solver interface {
	// SetGraph hands over the node and link set. The solver mutates node
	// positions on every tick until its cooldown settles.
	SetGraph(nodes []*Node, links []*Link)

	// Configure passes the iteration count and decay rate once at setup.
	Configure(cooldownTicks int, velocityDecay float64)

	SetZoomBounds(min, max float64)

	// CenterAt and Zoom are the camera primitives click-to-focus delegates to.
	CenterAt(x, y float64, transitionMS int)
	Zoom(scale float64, transitionMS int)
	ZoomScale() float64
}

// NetworkOptions configures a network view.
type NetworkOptions struct {
	CooldownTicks int
	VelocityDecay float64
	MinZoom       float64
	MaxZoom       float64

	OnFocus func(id string)
}

func (o NetworkOptions) withDefaults() NetworkOptions {
	if o.CooldownTicks == 0 {
		o.CooldownTicks = defaultCooldownTicks
	}
	if o.VelocityDecay == 0 {
		o.VelocityDecay = defaultVelocityDecay
	}
	if o.MinZoom == 0 {
		o.MinZoom = networkMinZoom
	}
	if o.MaxZoom == 0 {
		o.MaxZoom = networkMaxZoom
	}
	return o
}

// NetworkView is the thin façade over the force solver. It feeds nodes and
// filtered similarity edges in, and supplies the draw and hit callbacks the
// solver invokes per tick, delegating into the shared render pipeline so
// both views stay visually consistent.
type NetworkView struct {
	solver Solver
	opts   NetworkOptions

	nodes []*Node
	links []*Link
	byID  map[string]*Node

	hover string

	// Dropped counts edges discarded for a missing endpoint on the last
	// SetData; surfaced so the surrounding system can log the data-integrity
	// note.
	Dropped int
}

// NewNetworkView wires the façade to a solver and applies the one-time
// iteration and camera configuration.
func NewNetworkView(solver Solver, opts NetworkOptions) *NetworkView {
	opts = opts.withDefaults()
	solver.Configure(opts.CooldownTicks, opts.VelocityDecay)
	solver.SetZoomBounds(opts.MinZoom, opts.MaxZoom)
	return &NetworkView{solver: solver, opts: opts, byID: map[string]*Node{}}
}

// SetData replaces the graph. Edges referencing an absent endpoint are
// silently dropped before the solver sees them. Items without a size metric
// get one from degree centrality over the retained edge set. Stale hover is
// cleared.
func (nv *NetworkView) SetData(items []Item, edges []SimilarityEdge) {
	nv.hover = ""
	nv.byID = make(map[string]*Node, len(items))
	nv.nodes = make([]*Node, 0, len(items))
	for _, it := range items {
		n := &Node{ID: it.ID, Item: it, Size: it.SizeMetric}
		nv.nodes = append(nv.nodes, n)
		nv.byID[it.ID] = n
	}

	nv.links = nv.links[:0]
	nv.Dropped = 0
	degree := make(map[string]int, len(items))
	for _, e := range edges {
		src, ok1 := nv.byID[e.SourceID]
		dst, ok2 := nv.byID[e.TargetID]
		if !ok1 || !ok2 {
			nv.Dropped++
			continue
		}
		nv.links = append(nv.links, &Link{Source: src, Target: dst, Similarity: e.Similarity})
		degree[e.SourceID]++
		degree[e.TargetID]++
	}

	// Degree centrality, deg/(n-1) for the undirected retained graph.
	if n := len(nv.nodes); n > 1 {
		for _, node := range nv.nodes {
			if node.Size == 0 {
				node.Size = float64(degree[node.ID]) / float64(n-1)
			}
		}
	}

	nv.solver.SetGraph(nv.nodes, nv.links)
}

// Nodes returns the current node set in input order.
func (nv *NetworkView) Nodes() []*Node { return nv.nodes }

// Links returns the retained edge set.
func (nv *NetworkView) Links() []*Link { return nv.links }

func (nv *NetworkView) radius(n *Node) float64 {
	return baseNodeRadius + math.Sqrt(n.Size)*6
}

// DrawNode is the solver's node draw callback. scale is the solver camera
// zoom; label size divides by it so apparent label size stays roughly
// constant on screen. Positions are used exactly as the solver provides
// them.
func (nv *NetworkView) DrawNode(n *Node, c Canvas2D, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	drawPoint(c, n.X, n.Y, nv.radius(n), n.ID == nv.hover)
	drawLabel(c, n.Item.Content, n.X, n.Y, labelSize/scale, networkLabelMax)
}

// DrawLink is the solver's link draw callback.
func (nv *NetworkView) DrawLink(l *Link, c Canvas2D) {
	drawSimilarityLink(c, l.Source.X, l.Source.Y, l.Target.X, l.Target.Y, l.Similarity)
}

// DrawOverlay draws the tooltip for the hovered node, if any. The solver
// should invoke it after the per-node callbacks so the tooltip sits on top.
func (nv *NetworkView) DrawOverlay(c Canvas2D) {
	if nv.hover == "" {
		return
	}
	n, ok := nv.byID[nv.hover]
	if !ok {
		return
	}
	drawTooltip(c, n.Item.Content, n.Item.Timestamp, n.X, n.Y)
}

// HitRadius is the pointer hit area per node: a disc slightly larger than
// the visual radius so small nodes stay easy to target.
func (nv *NetworkView) HitRadius(n *Node) float64 {
	return nv.radius(n) + hitPadding
}

// HandleHover records the hovered node id ("" clears it).
func (nv *NetworkView) HandleHover(id string) {
	if id != "" {
		if _, ok := nv.byID[id]; !ok {
			id = ""
		}
	}
	nv.hover = id
}

// Hover exposes the hovered node id.
func (nv *NetworkView) Hover() string { return nv.hover }

// Cursor is the pointer hint; the network view never drags through this
// façade, the solver owns panning.
func (nv *NetworkView) Cursor() Cursor {
	if nv.hover != "" {
		return CursorPointer
	}
	return CursorGrab
}

// HandleClick focuses a node through the solver's camera primitives:
// center on its live position and raise zoom to the focus threshold when
// below it. Never zooms out.
func (nv *NetworkView) HandleClick(id string) {
	n, ok := nv.byID[id]
	if !ok {
		return
	}
	nv.solver.CenterAt(n.X, n.Y, focusTransitionMS)
	if nv.solver.ZoomScale() < focusZoom {
		nv.solver.Zoom(focusZoom, focusTransitionMS)
	}
	if nv.opts.OnFocus != nil {
		nv.opts.OnFocus(id)
	}
}
