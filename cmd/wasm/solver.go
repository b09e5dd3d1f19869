//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/thoughtvault/govault/pkg/viz"
)

// forceGraphSolver adapts a JS force-graph instance to viz.Solver. The
// library owns layout and camera; node positions flow back into the Go
// nodes inside the draw callbacks before each is rendered.
type forceGraphSolver struct {
	fg        js.Value
	container js.Value
	byID      map[string]*viz.Node
}

func newForceGraphSolver(fg, container js.Value) *forceGraphSolver {
	return &forceGraphSolver{fg: fg, container: container, byID: map[string]*viz.Node{}}
}

func (s *forceGraphSolver) SetGraph(nodes []*viz.Node, links []*viz.Link) {
	s.byID = make(map[string]*viz.Node, len(nodes))

	jsNodes := js.Global().Get("Array").New()
	for _, n := range nodes {
		s.byID[n.ID] = n
		obj := js.ValueOf(map[string]interface{}{"id": n.ID})
		jsNodes.Call("push", obj)
	}

	jsLinks := js.Global().Get("Array").New()
	for _, l := range links {
		obj := js.ValueOf(map[string]interface{}{
			"source":     l.Source.ID,
			"target":     l.Target.ID,
			"similarity": l.Similarity,
		})
		jsLinks.Call("push", obj)
	}

	s.fg.Call("graphData", js.ValueOf(map[string]interface{}{
		"nodes": jsNodes,
		"links": jsLinks,
	}))
}

func (s *forceGraphSolver) Configure(cooldownTicks int, velocityDecay float64) {
	s.fg.Call("cooldownTicks", cooldownTicks)
	s.fg.Call("d3VelocityDecay", velocityDecay)
}

func (s *forceGraphSolver) SetZoomBounds(min, max float64) {
	s.fg.Call("minZoom", min)
	s.fg.Call("maxZoom", max)
}

func (s *forceGraphSolver) CenterAt(x, y float64, transitionMS int) {
	s.fg.Call("centerAt", x, y, transitionMS)
}

func (s *forceGraphSolver) Zoom(scale float64, transitionMS int) {
	s.fg.Call("zoom", scale, transitionMS)
}

func (s *forceGraphSolver) ZoomScale() float64 {
	return s.fg.Call("zoom").Float()
}

// syncNode copies the live solver position into our node.
func (s *forceGraphSolver) syncNode(obj js.Value) *viz.Node {
	n, ok := s.byID[obj.Get("id").String()]
	if !ok {
		return nil
	}
	n.X = obj.Get("x").Float()
	n.Y = obj.Get("y").Float()
	return n
}

// surface wraps the context force-graph hands to its callbacks. Size comes
// from the canvas backing store scaled back to logical pixels, only the
// tooltip clamp consumes it.
func (s *forceGraphSolver) surface(ctx js.Value) viz.Canvas2D {
	canvas := ctx.Get("canvas")
	dpr := js.Global().Get("devicePixelRatio").Float()
	if dpr <= 0 {
		dpr = 1
	}
	w := canvas.Get("width").Float() / dpr
	h := canvas.Get("height").Float() / dpr
	return viz.WrapContext(ctx, w, h)
}

// bind registers the draw, hit-area and interaction callbacks with the
// library, delegating into the view so both views share one pipeline.
func (s *forceGraphSolver) bind(view *viz.NetworkView) {
	s.fg.Call("nodeCanvasObject", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if n := s.syncNode(args[0]); n != nil {
			view.DrawNode(n, s.surface(args[1]), args[2].Float())
		}
		return nil
	}))

	s.fg.Call("nodePointerAreaPaint", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		n := s.syncNode(args[0])
		if n == nil {
			return nil
		}
		s.surface(args[2]).FillCircle(n.X, n.Y, view.HitRadius(n), args[1].String(), 1)
		return nil
	}))

	s.fg.Call("linkCanvasObject", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		lnk := args[0]
		src := s.syncNode(lnk.Get("source"))
		dst := s.syncNode(lnk.Get("target"))
		if src == nil || dst == nil {
			return nil
		}
		view.DrawLink(&viz.Link{
			Source:     src,
			Target:     dst,
			Similarity: lnk.Get("similarity").Float(),
		}, s.surface(args[1]))
		return nil
	}))

	s.fg.Call("onRenderFramePost", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		view.DrawOverlay(s.surface(args[0]))
		return nil
	}))

	s.fg.Call("onNodeHover", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		id := ""
		if args[0].Truthy() {
			id = args[0].Get("id").String()
		}
		view.HandleHover(id)
		s.container.Get("style").Set("cursor", string(view.Cursor()))
		return nil
	}))

	s.fg.Call("onNodeClick", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if args[0].Truthy() {
			view.HandleClick(args[0].Get("id").String())
		}
		return nil
	}))
}
