package obj

import (
	"github.com/milk9111/platformer/common"
)

// DeadZone is the inner part of the view, as fractions of its size, inside
// which the target can move without scrolling the camera.
type DeadZone struct {
	Left, Right float64
	Top, Bottom float64
}

func DefaultDeadZone() DeadZone {
	return DeadZone{Left: 0.3, Right: 0.7, Top: 0.3, Bottom: 0.7}
}

// FollowDeadZone returns view shifted just enough to bring target back inside
// the dead zone, then clamped so it stays within the world. Each axis is
// handled on its own. When the world is smaller than the view on an axis the
// view is pinned to 0 on that axis.
func FollowDeadZone(target, view common.Rect, worldW, worldH float64, dz DeadZone) common.Rect {
	zoneLeft := view.Width * dz.Left
	zoneRight := view.Width * dz.Right
	zoneTop := view.Height * dz.Top
	zoneBottom := view.Height * dz.Bottom

	screenX := target.X - view.X
	screenY := target.Y - view.Y

	if screenX < zoneLeft {
		view.X = target.X - zoneLeft
	}
	if screenX+target.Width > zoneRight {
		view.X = target.Right() - zoneRight
	}
	if screenY < zoneTop {
		view.Y = target.Y - zoneTop
	}
	if screenY+target.Height > zoneBottom {
		view.Y = target.Bottom() - zoneBottom
	}

	view.X = common.Clamp(view.X, 0, worldW-view.Width)
	view.Y = common.Clamp(view.Y, 0, worldH-view.Height)
	return view
}

// Camera tracks a target with a dead zone inside fixed world bounds.
type Camera struct {
	common.Rect
	DeadZone DeadZone

	// world bounds in pixels
	worldW float64
	worldH float64
}

// NewCamera creates a camera with the given logical screen size.
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Rect:     common.Rect{Width: float64(screenW), Height: float64(screenH)},
		DeadZone: DefaultDeadZone(),
	}
}

// SetWorldBounds sets the world pixel dimensions for clamping camera position.
func (c *Camera) SetWorldBounds(w, h int) {
	c.worldW = float64(w)
	c.worldH = float64(h)
	c.clamp()
}

func (c *Camera) clamp() {
	c.X = common.Clamp(c.X, 0, c.worldW-c.Width)
	c.Y = common.Clamp(c.Y, 0, c.worldH-c.Height)
}

// Update scrolls the camera toward target. Call once per tick after the
// player has moved.
func (c *Camera) Update(target common.Rect) {
	c.Rect = FollowDeadZone(target, c.Rect, c.worldW, c.worldH, c.DeadZone)
}

// SnapTo centres the view on target, clamped to the world. Use after a level
// load so the first frame does not scroll in from the origin.
func (c *Camera) SnapTo(target common.Rect) {
	c.X = target.X + target.Width/2 - c.Width/2
	c.Y = target.Y + target.Height/2 - c.Height/2
	c.clamp()
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() (float64, float64) {
	return c.X, c.Y
}

// WorldToScreen converts a world position to view coordinates.
func (c *Camera) WorldToScreen(x, y float64) (float64, float64) {
	return x - c.X, y - c.Y
}
