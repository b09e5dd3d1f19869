package viz

// Op is one recorded draw call.
type Op struct {
	Kind  string // clear, fillRect, roundedRect, line, fillCircle, strokeCircle, glow, text
	X, Y  float64
	X2    float64
	Y2    float64
	W, H  float64
	R     float64
	Text  string
	Color string
	Alpha float64
	Size  float64
	Style Stroke
}

// Recorder is a Canvas2D that records draw operations instead of
// rasterizing. Tests and cmd/vizcheck inspect the op stream.
type Recorder struct {
	W, H float64
	Ops  []Op
}

// NewRecorder returns a recording surface with the given logical size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Clear() {
	r.Ops = r.Ops[:0]
	r.Ops = append(r.Ops, Op{Kind: "clear"})
}

func (r *Recorder) FillRect(x, y, w, h float64, color string, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: "fillRect", X: x, Y: y, W: w, H: h, Color: color, Alpha: alpha})
}

func (r *Recorder) RoundedRect(x, y, w, h, radius float64, color string, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: "roundedRect", X: x, Y: y, W: w, H: h, R: radius, Color: color, Alpha: alpha})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2 float64, style Stroke) {
	r.Ops = append(r.Ops, Op{Kind: "line", X: x1, Y: y1, X2: x2, Y2: y2, Style: style})
}

func (r *Recorder) FillCircle(x, y, radius float64, color string, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: "fillCircle", X: x, Y: y, R: radius, Color: color, Alpha: alpha})
}

func (r *Recorder) StrokeCircle(x, y, radius float64, style Stroke) {
	r.Ops = append(r.Ops, Op{Kind: "strokeCircle", X: x, Y: y, R: radius, Style: style})
}

func (r *Recorder) FillGlow(x, y, radius float64, inner string) {
	r.Ops = append(r.Ops, Op{Kind: "glow", X: x, Y: y, R: radius, Color: inner})
}

func (r *Recorder) FillText(text string, x, y, size float64, color, align string) {
	r.Ops = append(r.Ops, Op{Kind: "text", Text: text, X: x, Y: y, Size: size, Color: color})
}

// MeasureText approximates glyph width; good enough for layout assertions.
func (r *Recorder) MeasureText(text string, size float64) float64 {
	return float64(len(text)) * size * 0.6
}

// Count returns how many recorded ops have the given kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
