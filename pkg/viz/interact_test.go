package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testController(onFocus func(string)) (*Controller, *Viewport) {
	vp := NewViewport(800, 600)
	c := NewController(&vp, onFocus)
	c.SetPoints([]DataPoint{
		{ID: "center", X: 0, Y: 0},
		{ID: "east", X: 0.5, Y: 0},
	})
	return c, &vp
}

func TestController_DragLifecycle(t *testing.T) {
	c, vp := testController(nil)

	assert.False(t, c.Dragging())
	assert.Equal(t, CursorGrab, c.Cursor())

	c.PointerDown(200, 200)
	require.True(t, c.Dragging())
	assert.Equal(t, CursorGrabbing, c.Cursor())

	c.PointerMove(230, 190)
	assert.Equal(t, 30.0, vp.Transform.OffsetX)
	assert.Equal(t, -10.0, vp.Transform.OffsetY)

	// Deltas accumulate from the last pointer position.
	c.PointerMove(240, 190)
	assert.Equal(t, 40.0, vp.Transform.OffsetX)

	c.PointerUp()
	assert.False(t, c.Dragging())
	assert.Equal(t, CursorGrab, c.Cursor())
}

func TestController_PointerLeaveEndsDragAndHover(t *testing.T) {
	c, _ := testController(nil)

	c.PointerMove(400, 300) // hover "center"
	require.Equal(t, "center", c.Hover())

	c.PointerDown(400, 300)
	c.PointerLeave()
	assert.False(t, c.Dragging())
	assert.Equal(t, "", c.Hover())
}

func TestController_HoverHitTest(t *testing.T) {
	c, vp := testController(nil)

	// Data (0,0) is at screen (400,300); 14px off still hits, 16px misses.
	c.PointerMove(414, 300)
	assert.Equal(t, "center", c.Hover())
	assert.Equal(t, CursorPointer, c.Cursor())

	c.PointerMove(416, 300)
	assert.Equal(t, "", c.Hover())

	// Hover follows the current transform.
	vp.Pan(50, 0)
	c.PointerMove(450, 300)
	assert.Equal(t, "center", c.Hover())
}

func TestController_HoverTieBreakIsInputOrder(t *testing.T) {
	vp := NewViewport(800, 600)
	c := NewController(&vp, nil)
	// Both points project within hit range of the pointer; the earlier one
	// must win deterministically.
	c.SetPoints([]DataPoint{
		{ID: "first", X: 0.01, Y: 0},
		{ID: "second", X: -0.01, Y: 0},
	})
	c.PointerMove(400, 300)
	assert.Equal(t, "first", c.Hover())
}

func TestController_WheelZoomsWithoutChangingDragState(t *testing.T) {
	c, vp := testController(nil)

	c.Wheel(-1)
	assert.InDelta(t, 1.1, vp.Transform.Scale, 1e-9)
	c.Wheel(+1)
	assert.InDelta(t, 0.99, vp.Transform.Scale, 1e-9)

	c.PointerDown(10, 10)
	c.Wheel(-1)
	assert.True(t, c.Dragging())
}

func TestController_ClickFocusesHitPoint(t *testing.T) {
	var focused string
	c, vp := testController(func(id string) { focused = id })

	c.Click(400, 300)
	assert.Equal(t, "center", focused)
	assert.Equal(t, focusZoom, vp.Transform.Scale)

	// A miss neither focuses nor moves the view.
	focused = ""
	before := vp.Transform
	c.Click(50, 50)
	assert.Equal(t, "", focused)
	assert.Equal(t, before, vp.Transform)
}

func TestController_CancelForcesIdle(t *testing.T) {
	c, _ := testController(nil)

	c.PointerMove(400, 300)
	c.PointerDown(400, 300)
	c.Cancel()
	assert.False(t, c.Dragging())
	assert.Equal(t, "", c.Hover())
}
