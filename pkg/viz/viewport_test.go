package viz

import (
	"math"
	"testing"
)

func TestViewport_OriginMapsToPlotCenter(t *testing.T) {
	// 800x600 canvas, identity transform, padding 60: data (0,0) lands at
	// exactly (400, 300).
	vp := NewViewport(800, 600)
	sx, sy := vp.ToScreen(0, 0)
	if sx != 400 || sy != 300 {
		t.Fatalf("got (%v, %v), want (400, 300)", sx, sy)
	}
}

func TestViewport_YAxisFlipped(t *testing.T) {
	vp := NewViewport(800, 600)
	_, top := vp.ToScreen(0, 1)
	_, bottom := vp.ToScreen(0, -1)
	if !(top < bottom) {
		t.Fatalf("data-space up should map to smaller screen y: top=%v bottom=%v", top, bottom)
	}
}

func TestViewport_RoundTrip(t *testing.T) {
	vp := NewViewport(800, 600)
	vp.Transform = Transform{Scale: 1.7, OffsetX: -35, OffsetY: 12}

	for _, c := range [][2]float64{{0, 0}, {-1, -1}, {1, 1}, {0.3, -0.8}, {-0.25, 0.95}} {
		sx, sy := vp.ToScreen(c[0], c[1])
		x, y := vp.ToData(sx, sy)
		if math.Abs(x-c[0]) > 1e-9 || math.Abs(y-c[1]) > 1e-9 {
			t.Errorf("round trip of (%v, %v) gave (%v, %v)", c[0], c[1], x, y)
		}
	}
}

func TestViewport_DegeneratePlotRect(t *testing.T) {
	// A canvas smaller than twice the padding has no plot rectangle; the
	// inverse mapping must stay finite.
	vp := NewViewport(100, 100)
	x, y := vp.ToData(50, 50)
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		t.Fatalf("got (%v, %v), want finite", x, y)
	}
	if x != 0 || y != 0 {
		t.Fatalf("got (%v, %v), want origin", x, y)
	}
}

func TestViewport_ZoomOutClampsAfterSeventhStep(t *testing.T) {
	vp := NewViewport(800, 600)
	for i := 1; i <= 9; i++ {
		vp.Zoom(zoomOutFactor)
		unclamped := math.Pow(0.9, float64(i))
		if i < 7 {
			if math.Abs(vp.Transform.Scale-unclamped) > 1e-9 {
				t.Fatalf("step %d: got %v, want %v", i, vp.Transform.Scale, unclamped)
			}
		} else if vp.Transform.Scale != 0.5 {
			// 0.9^7 ≈ 0.478 < 0.5, clamped from the 7th step on.
			t.Fatalf("step %d: got %v, want clamp at 0.5", i, vp.Transform.Scale)
		}
	}
}

func TestViewport_ZoomInClamps(t *testing.T) {
	vp := NewViewport(800, 600)
	for i := 0; i < 40; i++ {
		vp.Zoom(zoomInFactor)
	}
	if vp.Transform.Scale != 3 {
		t.Fatalf("got %v, want max zoom 3", vp.Transform.Scale)
	}
}

func TestViewport_PanAndReset(t *testing.T) {
	vp := NewViewport(800, 600)
	vp.Pan(25, -40)
	vp.Pan(5, 10)
	if vp.Transform.OffsetX != 30 || vp.Transform.OffsetY != -30 {
		t.Fatalf("unexpected offsets: %+v", vp.Transform)
	}
	vp.Reset()
	if vp.Transform != (Transform{Scale: 1}) {
		t.Fatalf("reset left %+v", vp.Transform)
	}
}

func TestViewport_FocusCentersPoint(t *testing.T) {
	vp := NewViewport(800, 600)
	vp.FocusOn(0.4, -0.6)
	if vp.Transform.Scale != focusZoom {
		t.Fatalf("got scale %v, want %v", vp.Transform.Scale, focusZoom)
	}
	sx, sy := vp.ToScreen(0.4, -0.6)
	if math.Abs(sx-400) > 1e-9 || math.Abs(sy-300) > 1e-9 {
		t.Fatalf("focused point at (%v, %v), want canvas center", sx, sy)
	}
}

func TestViewport_FocusNeverZoomsOut(t *testing.T) {
	vp := NewViewport(800, 600)
	vp.Transform.Scale = 2.4
	vp.FocusOn(0, 0)
	if vp.Transform.Scale != 2.4 {
		t.Fatalf("focus changed scale above threshold: %v", vp.Transform.Scale)
	}
}
