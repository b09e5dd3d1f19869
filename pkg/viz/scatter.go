package viz

// ScatterOptions configures a scatter view. Zero values fall back to the
// defaults below.
type ScatterOptions struct {
	Padding float64
	MinZoom float64
	MaxZoom float64

	// OnFocus fires after a click recentres the viewport on an item.
	OnFocus func(id string)
}

func (o ScatterOptions) withDefaults() ScatterOptions {
	if o.Padding == 0 {
		o.Padding = defaultPadding
	}
	if o.MinZoom == 0 {
		o.MinZoom = scatterMinZoom
	}
	if o.MaxZoom == 0 {
		o.MaxZoom = scatterMaxZoom
	}
	return o
}

// ScatterView is the projected scatter plot: resolved data points, derived
// proximity links, a pannable/zoomable viewport and hover/drag interaction.
// Every event method ends in one synchronous render pass; no state is
// carried between frames besides the inputs themselves.
type ScatterView struct {
	canvas Canvas2D
	vp     Viewport
	ctl    *Controller

	items  []Item
	points []DataPoint
	pairs  []Pair
}

// NewScatterView builds a view over the given surface.
func NewScatterView(canvas Canvas2D, opts ScatterOptions) *ScatterView {
	opts = opts.withDefaults()
	w, h := canvas.Size()
	v := &ScatterView{canvas: canvas}
	v.vp = NewViewport(w, h)
	v.vp.Padding = opts.Padding
	v.vp.MinZoom = opts.MinZoom
	v.vp.MaxZoom = opts.MaxZoom
	v.ctl = NewController(&v.vp, opts.OnFocus)
	return v
}

// SetItems replaces the item collection wholesale. Projection and proximity
// links are recomputed, any in-flight drag and stale hover are cancelled.
func (v *ScatterView) SetItems(items []Item) {
	v.items = items
	v.points = ResolveAll(items)
	v.pairs = ProximityPairs(v.points)
	v.ctl.SetPoints(v.points)
	v.ctl.Cancel()
	v.Render()
}

// Resize updates the logical canvas size. Cancels drag and hover so nothing
// references a position computed under the old geometry.
func (v *ScatterView) Resize(w, h float64) {
	v.vp.Width, v.vp.Height = w, h
	v.ctl.Cancel()
	v.Render()
}

func (v *ScatterView) PointerDown(x, y float64) {
	v.ctl.PointerDown(x, y)
	v.Render()
}

func (v *ScatterView) PointerMove(x, y float64) {
	v.ctl.PointerMove(x, y)
	v.Render()
}

func (v *ScatterView) PointerUp() {
	v.ctl.PointerUp()
	v.Render()
}

func (v *ScatterView) PointerLeave() {
	v.ctl.PointerLeave()
	v.Render()
}

func (v *ScatterView) Wheel(deltaY float64) {
	v.ctl.Wheel(deltaY)
	v.Render()
}

func (v *ScatterView) Click(x, y float64) {
	v.ctl.Click(x, y)
	v.Render()
}

// ResetView restores the identity transform.
func (v *ScatterView) ResetView() {
	v.vp.Reset()
	v.Render()
}

// Hover exposes the hovered item id for surrounding UI.
func (v *ScatterView) Hover() string { return v.ctl.Hover() }

// Cursor exposes the pointer hint for the surface element.
func (v *ScatterView) Cursor() Cursor { return v.ctl.Cursor() }

// Transform returns a copy of the current viewport transform.
func (v *ScatterView) Transform() Transform { return v.vp.Transform }

// Render runs the full pipeline: backdrop, proximity links, points, labels,
// tooltip. An empty item set is a valid frame (grid and axes only). A canvas
// too small to hold the padded plot rectangle skips rendering entirely.
func (v *ScatterView) Render() {
	if pw, ph := v.vp.plotSize(); pw <= 0 || ph <= 0 {
		return
	}
	drawBackdrop(v.canvas, v.vp.Transform)

	for _, pr := range v.pairs {
		x1, y1 := v.vp.ToScreen(v.points[pr.A].X, v.points[pr.A].Y)
		x2, y2 := v.vp.ToScreen(v.points[pr.B].X, v.points[pr.B].Y)
		drawProximityLink(v.canvas, x1, y1, x2, y2)
	}

	hover := v.ctl.Hover()
	for _, p := range v.points {
		sx, sy := v.vp.ToScreen(p.X, p.Y)
		drawPoint(v.canvas, sx, sy, pointRadius, p.ID == hover)
		// Scatter labels keep a fixed size regardless of zoom.
		drawLabel(v.canvas, p.Content, sx, sy, labelSize, scatterLabelMax)
	}

	if hover != "" {
		for _, p := range v.points {
			if p.ID == hover {
				sx, sy := v.vp.ToScreen(p.X, p.Y)
				drawTooltip(v.canvas, p.Content, p.Timestamp, sx, sy)
				break
			}
		}
	}
}
