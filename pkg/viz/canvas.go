package viz

// Stroke bundles line style for a single stroke call.
type Stroke struct {
	Color string
	Width float64
	Alpha float64
	Dash  []float64
}

// Canvas2D is the raster surface the render pipeline draws on. The JS
// binding in canvas_js.go targets a CanvasRenderingContext2D; Recorder is a
// pure-Go implementation for tests and native smoke runs.
//
// All coordinates are logical pixels: implementations handle device pixel
// ratio once at resize time, not per call.
type Canvas2D interface {
	// Size returns the logical width and height of the surface.
	Size() (width, height float64)

	// Clear wipes the whole surface.
	Clear()

	FillRect(x, y, w, h float64, color string, alpha float64)

	// RoundedRect fills a rounded rectangle, used for the tooltip panel.
	RoundedRect(x, y, w, h, radius float64, color string, alpha float64)

	StrokeLine(x1, y1, x2, y2 float64, style Stroke)

	FillCircle(x, y, r float64, color string, alpha float64)
	StrokeCircle(x, y, r float64, style Stroke)

	// FillGlow fills a disc with a radial gradient fading from inner at the
	// center to fully transparent at radius r.
	FillGlow(x, y, r float64, inner string)

	// FillText draws text at the given em size. align is "left" or "center".
	FillText(text string, x, y, size float64, color, align string)

	// MeasureText returns the rendered width of text at the given size.
	MeasureText(text string, size float64) float64
}
