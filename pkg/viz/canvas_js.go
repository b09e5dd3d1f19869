//go:build js && wasm

package viz

import (
	"fmt"
	"math"
	"syscall/js"
)

// jsContext implements Canvas2D over a CanvasRenderingContext2D. Logical
// size is tracked separately; device pixel ratio is applied once by Resize,
// never inside draw calls.
type jsContext struct {
	ctx  js.Value
	w, h float64
}

// WrapContext adapts an already-sized 2D context, as handed to solver draw
// callbacks. The caller supplies the logical size.
func WrapContext(ctx js.Value, w, h float64) Canvas2D {
	return &jsContext{ctx: ctx, w: w, h: h}
}

func (c *jsContext) Size() (float64, float64) { return c.w, c.h }

func (c *jsContext) Clear() {
	c.ctx.Call("clearRect", 0, 0, c.w, c.h)
}

func (c *jsContext) FillRect(x, y, w, h float64, color string, alpha float64) {
	c.ctx.Set("globalAlpha", alpha)
	c.ctx.Set("fillStyle", color)
	c.ctx.Call("fillRect", x, y, w, h)
	c.ctx.Set("globalAlpha", 1)
}

func (c *jsContext) RoundedRect(x, y, w, h, radius float64, color string, alpha float64) {
	c.ctx.Set("globalAlpha", alpha)
	c.ctx.Set("fillStyle", color)
	c.ctx.Call("beginPath")
	c.ctx.Call("moveTo", x+radius, y)
	c.ctx.Call("arcTo", x+w, y, x+w, y+h, radius)
	c.ctx.Call("arcTo", x+w, y+h, x, y+h, radius)
	c.ctx.Call("arcTo", x, y+h, x, y, radius)
	c.ctx.Call("arcTo", x, y, x+w, y, radius)
	c.ctx.Call("closePath")
	c.ctx.Call("fill")
	c.ctx.Set("globalAlpha", 1)
}

func (c *jsContext) StrokeLine(x1, y1, x2, y2 float64, style Stroke) {
	c.applyStroke(style)
	c.ctx.Call("beginPath")
	c.ctx.Call("moveTo", x1, y1)
	c.ctx.Call("lineTo", x2, y2)
	c.ctx.Call("stroke")
	c.resetStroke(style)
}

func (c *jsContext) FillCircle(x, y, r float64, color string, alpha float64) {
	c.ctx.Set("globalAlpha", alpha)
	c.ctx.Set("fillStyle", color)
	c.ctx.Call("beginPath")
	c.ctx.Call("arc", x, y, r, 0, 2*math.Pi)
	c.ctx.Call("fill")
	c.ctx.Set("globalAlpha", 1)
}

func (c *jsContext) StrokeCircle(x, y, r float64, style Stroke) {
	c.applyStroke(style)
	c.ctx.Call("beginPath")
	c.ctx.Call("arc", x, y, r, 0, 2*math.Pi)
	c.ctx.Call("stroke")
	c.resetStroke(style)
}

func (c *jsContext) FillGlow(x, y, r float64, inner string) {
	grad := c.ctx.Call("createRadialGradient", x, y, 0, x, y, r)
	grad.Call("addColorStop", 0, inner)
	grad.Call("addColorStop", 1, "rgba(0,0,0,0)")
	c.ctx.Set("fillStyle", grad)
	c.ctx.Call("beginPath")
	c.ctx.Call("arc", x, y, r, 0, 2*math.Pi)
	c.ctx.Call("fill")
}

func (c *jsContext) FillText(text string, x, y, size float64, color, align string) {
	c.ctx.Set("font", fmt.Sprintf("%.1fpx Inter, sans-serif", size))
	c.ctx.Set("fillStyle", color)
	c.ctx.Set("textAlign", align)
	c.ctx.Call("fillText", text, x, y)
}

func (c *jsContext) MeasureText(text string, size float64) float64 {
	c.ctx.Set("font", fmt.Sprintf("%.1fpx Inter, sans-serif", size))
	return c.ctx.Call("measureText", text).Get("width").Float()
}

func (c *jsContext) applyStroke(s Stroke) {
	alpha := s.Alpha
	if alpha == 0 {
		alpha = 1
	}
	c.ctx.Set("globalAlpha", alpha)
	c.ctx.Set("strokeStyle", s.Color)
	c.ctx.Set("lineWidth", s.Width)
	if len(s.Dash) > 0 {
		dash := js.Global().Get("Array").New()
		for _, d := range s.Dash {
			dash.Call("push", d)
		}
		c.ctx.Call("setLineDash", dash)
	}
}

func (c *jsContext) resetStroke(s Stroke) {
	if len(s.Dash) > 0 {
		c.ctx.Call("setLineDash", js.Global().Get("Array").New())
	}
	c.ctx.Set("globalAlpha", 1)
}

// JSCanvas owns a <canvas> element and its 2D context.
type JSCanvas struct {
	jsContext
	canvas js.Value
}

// NewJSCanvas wraps a canvas element and performs an initial resize.
func NewJSCanvas(canvas js.Value) *JSCanvas {
	c := &JSCanvas{canvas: canvas}
	c.ctx = canvas.Call("getContext", "2d")
	c.Resize()
	return c
}

// Resize syncs the backing store with the element's CSS size and the device
// pixel ratio, so all subsequent drawing happens in logical pixels. Returns
// the logical size.
func (c *JSCanvas) Resize() (float64, float64) {
	rect := c.canvas.Call("getBoundingClientRect")
	dpr := js.Global().Get("devicePixelRatio").Float()
	if dpr <= 0 {
		dpr = 1
	}
	c.w = rect.Get("width").Float()
	c.h = rect.Get("height").Float()
	c.canvas.Set("width", c.w*dpr)
	c.canvas.Set("height", c.h*dpr)
	c.ctx.Call("setTransform", dpr, 0, 0, dpr, 0, 0)
	return c.w, c.h
}

// PointerPos converts a mouse event to canvas-relative logical coordinates.
func (c *JSCanvas) PointerPos(event js.Value) (float64, float64) {
	rect := c.canvas.Call("getBoundingClientRect")
	x := event.Get("clientX").Float() - rect.Get("left").Float()
	y := event.Get("clientY").Float() - rect.Get("top").Float()
	return x, y
}

// SetCursor applies a pointer hint to the element.
func (c *JSCanvas) SetCursor(cur Cursor) {
	c.canvas.Get("style").Set("cursor", string(cur))
}
