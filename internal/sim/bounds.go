package sim

import "github.com/vovakirdan/tui-brawl/internal/core"

// Bounds is the fixed arena layout, derived once from WorldSize.
type Bounds struct {
	Half       float64
	GroundY    float64 // floor collider center
	CeilingY   float64
	LeftX      float64 // wall collider centers
	RightX     float64
	GroundTop  float64
	LeftInner  float64
	RightInner float64
}

// NewBounds derives the arena layout.
func NewBounds() Bounds {
	half := WorldSize / 2
	groundY := -half + GroundThickness/2
	leftX := -half + WallThickness/2
	rightX := half - WallThickness/2
	return Bounds{
		Half:       half,
		GroundY:    groundY,
		CeilingY:   half - GroundThickness/2,
		LeftX:      leftX,
		RightX:     rightX,
		GroundTop:  groundY + GroundThickness/2,
		LeftInner:  leftX + WallThickness/2,
		RightInner: rightX - WallThickness/2,
	}
}

// StaticAdder is the part of the physics collaborator that accepts colliders.
type StaticAdder interface {
	AddStatic(center, half core.Vec2)
}

// Install creates floor, ceiling and both walls.
func (b Bounds) Install(p StaticAdder) {
	span := core.V(b.Half-WallThickness/2, GroundThickness/2)
	wall := core.V(WallThickness/2, b.Half-GroundThickness)

	p.AddStatic(core.V(0, b.GroundY), span)
	p.AddStatic(core.V(0, b.CeilingY), span)
	p.AddStatic(core.V(b.LeftX, GroundThickness/2), wall)
	p.AddStatic(core.V(b.RightX, GroundThickness/2), wall)
}

// Contains reports whether x lies between the inner wall faces.
func (b Bounds) Contains(x float64) bool {
	return x >= b.LeftInner && x <= b.RightInner
}
