package viz

import (
	"math"
	"strings"
	"time"
)

// Palette shared by both views so they stay visually consistent.
const (
	colorGrid      = "#8888aa"
	colorAxis      = "#555577"
	colorLink      = "#a855f7"
	colorProximity = "#22d3ee"
	colorPoint     = "#22d3ee"
	colorPointEdge = "#0f0f1a"
	colorHoverFill = "#a5f3fc"
	colorHoverEdge = "#e8e8f0"
	colorLabel     = "#8888aa"
	colorTooltipBg = "#1a1a2e"
	colorTooltipFg = "#e8e8f0"
	colorTooltipTs = "#8888aa"
)

const (
	gridCell = 50.0

	pointRadius      = 5.0
	hoverRadius      = 8.0
	hoverGlowRadius  = 18.0
	proximityAlpha   = 0.12

	scatterLabelMax = 20
	networkLabelMax = 25
	labelSize       = 10.0
	labelGap        = 14.0

	tooltipMaxWidth = 240.0
	tooltipPad      = 10.0
	tooltipLine     = 16.0

	timestampFormat = "2006-01-02 15:04"
)

// drawBackdrop runs steps 1-3 of the frame: clear, the static screen-space
// grid, and the dashed axes. The grid never pans or zooms with content; the
// axes follow pan but not scale, marking the data origin under translation
// only. That asymmetry is observable behavior, keep it.
func drawBackdrop(c Canvas2D, t Transform) {
	w, h := c.Size()
	c.Clear()

	grid := Stroke{Color: colorGrid, Width: 1, Alpha: 0.05}
	for x := 0.0; x <= w; x += gridCell {
		c.StrokeLine(x, 0, x, h, grid)
	}
	for y := 0.0; y <= h; y += gridCell {
		c.StrokeLine(0, y, w, y, grid)
	}

	axis := Stroke{Color: colorAxis, Width: 1, Alpha: 0.4, Dash: []float64{4, 4}}
	cx := w/2 + t.OffsetX
	cy := h/2 + t.OffsetY
	c.StrokeLine(0, cy, w, cy, axis)
	c.StrokeLine(cx, 0, cx, h, axis)
}

// drawSimilarityLink draws a network-view edge with alpha and width scaled
// by the similarity score.
func drawSimilarityLink(c Canvas2D, x1, y1, x2, y2, similarity float64) {
	c.StrokeLine(x1, y1, x2, y2, Stroke{
		Color: colorLink,
		Width: math.Max(similarity*2, 0.5),
		Alpha: math.Max(similarity*0.6, 0.2),
	})
}

// drawProximityLink draws a scatter-view connective line at fixed low alpha.
func drawProximityLink(c Canvas2D, x1, y1, x2, y2 float64) {
	c.StrokeLine(x1, y1, x2, y2, Stroke{Color: colorProximity, Width: 0.5, Alpha: proximityAlpha})
}

// drawPoint renders one node circle. The hovered point gets a glow halo
// (drawn first so the disc sits on top), a larger radius, lighter fill and a
// thicker border.
func drawPoint(c Canvas2D, x, y, r float64, hovered bool) {
	if hovered {
		c.FillGlow(x, y, r+hoverGlowRadius-pointRadius, colorHoverFill)
		c.FillCircle(x, y, r+hoverRadius-pointRadius, colorHoverFill, 1)
		c.StrokeCircle(x, y, r+hoverRadius-pointRadius, Stroke{Color: colorHoverEdge, Width: 2, Alpha: 1})
		return
	}
	c.FillCircle(x, y, r, colorPoint, 0.85)
	c.StrokeCircle(x, y, r, Stroke{Color: colorPointEdge, Width: 1, Alpha: 1})
}

// drawLabel writes a truncated content label centered below a point.
func drawLabel(c Canvas2D, text string, x, y, size float64, maxChars int) {
	c.FillText(truncate(text, maxChars), x, y+labelGap, size, colorLabel, "center")
}

// truncate cuts s to max characters with an ellipsis suffix when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// drawTooltip overlays the full untruncated content plus a formatted
// timestamp near the hovered point, clamped inside the canvas. It is drawn
// on the canvas itself, so it can never intercept pointer events and hover
// does not flicker when the pointer sits over it.
func drawTooltip(c Canvas2D, content string, ts time.Time, px, py float64) {
	w, h := c.Size()

	lines := wrapText(c, content, tooltipMaxWidth-2*tooltipPad, labelSize)
	stamp := ts.Format(timestampFormat)

	boxW := c.MeasureText(stamp, labelSize) + 2*tooltipPad
	for _, ln := range lines {
		if lw := c.MeasureText(ln, labelSize) + 2*tooltipPad; lw > boxW {
			boxW = lw
		}
	}
	if boxW > tooltipMaxWidth {
		boxW = tooltipMaxWidth
	}
	boxH := float64(len(lines)+1)*tooltipLine + 2*tooltipPad

	// Anchor to the upper right of the point, then clamp to bounds.
	x := px + 12
	y := py - boxH - 12
	if x+boxW > w {
		x = w - boxW
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = py + 12
	}
	if y+boxH > h {
		y = h - boxH
	}

	c.RoundedRect(x, y, boxW, boxH, 6, colorTooltipBg, 0.95)
	ty := y + tooltipPad + tooltipLine*0.75
	for _, ln := range lines {
		c.FillText(ln, x+tooltipPad, ty, labelSize, colorTooltipFg, "left")
		ty += tooltipLine
	}
	c.FillText(stamp, x+tooltipPad, ty, labelSize, colorTooltipTs, "left")
}

// wrapText breaks content into lines no wider than maxWidth. Words longer
// than a line stand alone rather than being split.
func wrapText(c Canvas2D, text string, maxWidth, size float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		next := line + " " + word
		if c.MeasureText(next, size) > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = next
	}
	return append(lines, line)
}
