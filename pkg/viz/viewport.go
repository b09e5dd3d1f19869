package viz

// Scatter view defaults. The network view's camera lives in the external
// solver and uses its own bounds (see netgraph.go).
const (
	defaultPadding = 60.0
	scatterMinZoom = 0.5
	scatterMaxZoom = 3.0

	// focusZoom is the scale a click-to-focus raises the view to. A click
	// never zooms out: scales already above this are left alone.
	focusZoom = 1.5

	zoomInFactor  = 1.1
	zoomOutFactor = 0.9
)

// Transform is the affine mapping between data space and screen space.
// Owned by exactly one view; mutated only through Viewport methods.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Viewport maps normalized data coordinates onto a padded plot rectangle
// inside the canvas. Y is flipped: data-space up is positive, screen rows
// grow downward.
type Viewport struct {
	Width, Height float64
	Padding       float64

	MinZoom, MaxZoom float64

	Transform Transform
}

// NewViewport returns an identity viewport for the given canvas size.
func NewViewport(width, height float64) Viewport {
	return Viewport{
		Width:     width,
		Height:    height,
		Padding:   defaultPadding,
		MinZoom:   scatterMinZoom,
		MaxZoom:   scatterMaxZoom,
		Transform: Transform{Scale: 1},
	}
}

func (v *Viewport) plotSize() (float64, float64) {
	return v.Width - 2*v.Padding, v.Height - 2*v.Padding
}

// ToScreen maps a data-space coordinate to screen pixels under the current
// transform. Not cached: canvas size, padding and transform may all change
// between calls.
func (v *Viewport) ToScreen(x, y float64) (float64, float64) {
	pw, ph := v.plotSize()
	sx := v.Padding + ((x+1)/2)*pw*v.Transform.Scale + v.Transform.OffsetX
	sy := v.Padding + ((1-y)/2)*ph*v.Transform.Scale + v.Transform.OffsetY
	return sx, sy
}

// ToData is the inverse of ToScreen. A degenerate plot rectangle (canvas
// smaller than twice the padding) maps everything to the origin.
func (v *Viewport) ToData(sx, sy float64) (float64, float64) {
	pw, ph := v.plotSize()
	if pw <= 0 || ph <= 0 {
		return 0, 0
	}
	x := (sx-v.Padding-v.Transform.OffsetX)/(pw*v.Transform.Scale)*2 - 1
	y := 1 - (sy-v.Padding-v.Transform.OffsetY)/(ph*v.Transform.Scale)*2
	return x, y
}

// Zoom multiplies the scale by factor and clamps it to [MinZoom, MaxZoom].
func (v *Viewport) Zoom(factor float64) {
	s := v.Transform.Scale * factor
	if s < v.MinZoom {
		s = v.MinZoom
	}
	if s > v.MaxZoom {
		s = v.MaxZoom
	}
	v.Transform.Scale = s
}

// Pan shifts the view by a screen-space delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.Transform.OffsetX += dx
	v.Transform.OffsetY += dy
}

// Reset restores the identity transform.
func (v *Viewport) Reset() {
	v.Transform = Transform{Scale: 1}
}

// FocusOn centers the viewport on a data-space point, raising the scale to
// focusZoom when the current zoom is below it.
func (v *Viewport) FocusOn(x, y float64) {
	if v.Transform.Scale < focusZoom {
		v.Transform.Scale = focusZoom
	}
	pw, ph := v.plotSize()
	v.Transform.OffsetX = v.Width/2 - v.Padding - ((x+1)/2)*pw*v.Transform.Scale
	v.Transform.OffsetY = v.Height/2 - v.Padding - ((1-y)/2)*ph*v.Transform.Scale
}
