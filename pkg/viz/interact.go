package viz

import "math"

// hitRadius is the screen-space distance within which a pointer grabs a point.
const hitRadius = 15.0

// Controller is the pointer state machine for a scatter viewport: idle or
// dragging, with hover hit-testing while idle. All coordinates are
// canvas-relative logical pixels.
type Controller struct {
	vp     *Viewport
	points []DataPoint

	hover string

	dragging   bool
	lastX      float64
	lastY      float64

	onFocus func(id string)
}

// NewController wires a controller to the viewport it mutates. onFocus may be
// nil; when set it fires after a click-to-focus recentres the viewport.
func NewController(vp *Viewport, onFocus func(id string)) *Controller {
	return &Controller{vp: vp, onFocus: onFocus}
}

// SetPoints replaces the hit-test targets. Iteration order is the hover
// tie-break order: when two points are both in range the earlier one wins.
func (c *Controller) SetPoints(points []DataPoint) {
	c.points = points
}

// Cancel forces the machine back to idle and clears hover. Called on resize
// and on wholesale data replacement so stale state never references removed
// items.
func (c *Controller) Cancel() {
	c.dragging = false
	c.hover = ""
}

// Hover returns the hovered point id, or "" when nothing is in range.
func (c *Controller) Hover() string { return c.hover }

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// Cursor is the pointer hint for the current state.
func (c *Controller) Cursor() Cursor {
	switch {
	case c.dragging:
		return CursorGrabbing
	case c.hover != "":
		return CursorPointer
	default:
		return CursorGrab
	}
}

// PointerDown starts a drag at the given canvas position.
func (c *Controller) PointerDown(x, y float64) {
	c.dragging = true
	c.lastX, c.lastY = x, y
}

// PointerMove pans while dragging, otherwise updates hover by hit-testing
// against the current transform.
func (c *Controller) PointerMove(x, y float64) {
	if c.dragging {
		c.vp.Pan(x-c.lastX, y-c.lastY)
		c.lastX, c.lastY = x, y
		return
	}
	c.hover = c.hitTest(x, y)
}

// PointerUp ends a drag.
func (c *Controller) PointerUp() {
	c.dragging = false
}

// PointerLeave ends a drag and clears hover.
func (c *Controller) PointerLeave() {
	c.dragging = false
	c.hover = ""
}

// Wheel applies one zoom step. deltaY follows wheel-event convention:
// negative is zoom in. Drag state is untouched.
func (c *Controller) Wheel(deltaY float64) {
	if deltaY < 0 {
		c.vp.Zoom(zoomInFactor)
	} else {
		c.vp.Zoom(zoomOutFactor)
	}
}

// Click focuses the point under the pointer, if any: the viewport recentres
// on it and zooms up to the focus threshold (never out).
func (c *Controller) Click(x, y float64) {
	id := c.hitTest(x, y)
	if id == "" {
		return
	}
	for _, p := range c.points {
		if p.ID == id {
			c.vp.FocusOn(p.X, p.Y)
			break
		}
	}
	if c.onFocus != nil {
		c.onFocus(id)
	}
}

// hitTest returns the first point in input order within hitRadius screen
// pixels of the pointer, or "".
func (c *Controller) hitTest(x, y float64) string {
	for _, p := range c.points {
		sx, sy := c.vp.ToScreen(p.X, p.Y)
		if math.Hypot(x-sx, y-sy) <= hitRadius {
			return p.ID
		}
	}
	return ""
}
