package brawl

import (
	"math"

	"github.com/vovakirdan/tui-brawl/internal/core"
	"github.com/vovakirdan/tui-brawl/internal/sim"
)

// Cell scale of the arena view.
const (
	ColsPerUnit     = 2.0
	RowsPerUnit     = 1.0
	FollowSmoothing = 0.12
)

// Camera maps world units to cells of the arena viewport.
type Camera struct {
	X, Y  float64 // world point at the viewport center
	ViewW int
	ViewH int
}

// NewCamera creates a camera for a viewport of w×h cells.
func NewCamera(w, h int) *Camera {
	return &Camera{ViewW: w, ViewH: h}
}

// Resize changes the viewport size.
func (c *Camera) Resize(w, h int) {
	c.ViewW, c.ViewH = w, h
}

// Snap centers on target immediately.
func (c *Camera) Snap(target core.Vec2, b sim.Bounds) {
	c.X, c.Y = target.X, target.Y
	c.clamp(b)
}

// Follow eases toward target and keeps the view inside the arena.
func (c *Camera) Follow(target core.Vec2, b sim.Bounds) {
	c.X += (target.X - c.X) * FollowSmoothing
	c.Y += (target.Y - c.Y) * FollowSmoothing
	c.clamp(b)
}

func (c *Camera) clamp(b sim.Bounds) {
	c.X = clampAxis(c.X, float64(c.ViewW)/(2*ColsPerUnit), b.Half)
	c.Y = clampAxis(c.Y, float64(c.ViewH)/(2*RowsPerUnit), b.Half)
}

// clampAxis keeps a view of half size view inside [-world, world].
// A view wider than the world stays centered.
func clampAxis(v, view, world float64) float64 {
	if view >= world {
		return 0
	}
	return core.ClampF(v, -world+view, world-view)
}

// Project converts a world point to a viewport cell.
func (c *Camera) Project(p core.Vec2) (col, row int) {
	col = int(math.Floor((p.X-c.X)*ColsPerUnit + float64(c.ViewW)/2))
	row = int(math.Floor(float64(c.ViewH)/2 - (p.Y-c.Y)*RowsPerUnit))
	return col, row
}
