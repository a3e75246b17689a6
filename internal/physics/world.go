// Package physics provides the rigid-body collaborator used by the simulation:
// dynamic axis-aligned boxes under gravity and linear damping, kept in a resolv
// collision space and separated from static colliders and from each other
// after every integration step.
package physics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-brawl/internal/core"
)

// Default world parameters.
const (
	DefaultGravity = -12.0 // m/s², applied on Y
	LinearDamping  = 1.2   // per second, same for every dynamic body

	// ContactSlop is the overlap two dynamic bodies may keep after separation.
	// Bodies at rest against each other stay slightly inside touching distance.
	ContactSlop = 0.005
)

// The collision space covers [-SpaceSize/2, SpaceSize/2] on both axes.
// Anything outside it collides with nothing.
const (
	SpaceSize = 128
	spaceCell = 2
	origin    = SpaceSize / 2
)

// Tags for objects in the collision space.
const (
	tagStatic = "static"
	tagBody   = "body"
)

// ErrInvalidShape is returned when a body is created with non-positive extents.
var ErrInvalidShape = errors.New("physics: half extents must be positive")

// BodyID is a handle to a dynamic body. The zero value is never issued.
type BodyID int

// extent is the exact box behind a space object.
type extent struct {
	center core.Vec2
	half   core.Vec2
}

type body struct {
	id    BodyID
	obj   *resolv.Object
	pos   core.Vec2
	vel   core.Vec2
	half  core.Vec2
	solid bool // pushes and is pushed by other bodies
}

func (b *body) box() extent { return extent{center: b.pos, half: b.half} }

// newObject places a space object over the box. Space cells are found from
// the object's width minus one unit, so the object is one unit wider than
// the box to keep its far edge registered.
func newObject(center, half core.Vec2, tag string) *resolv.Object {
	obj := resolv.NewObject(0, 0, 2*half.X+1, 2*half.Y+1, tag)
	moveObject(obj, center, half)
	return obj
}

func moveObject(obj *resolv.Object, center, half core.Vec2) {
	obj.X = center.X - half.X + origin
	obj.Y = center.Y - half.Y + origin
}

// sync moves the space object to the body and re-registers its cells.
func (b *body) sync() {
	moveObject(b.obj, b.pos, b.half)
	b.obj.Update()
}

// World owns dynamic bodies and static colliders.
// It is not safe for concurrent use; the frame loop owns it.
type World struct {
	gravity core.Vec2
	damping float64
	space   *resolv.Space
	bodies  map[BodyID]*body
	order   []BodyID // creation order, keeps Step deterministic
	nextID  BodyID
}

// NewWorld creates an empty world with the given gravity vector.
func NewWorld(gravity core.Vec2) *World {
	return &World{
		gravity: gravity,
		damping: LinearDamping,
		space:   resolv.NewSpace(SpaceSize, SpaceSize, spaceCell, spaceCell),
		bodies:  make(map[BodyID]*body),
	}
}

// CreateBody adds a solid dynamic box centered at start.
func (w *World) CreateBody(start, half core.Vec2) (BodyID, error) {
	if half.X <= 0 || half.Y <= 0 {
		return 0, fmt.Errorf("%w: got %+v", ErrInvalidShape, half)
	}
	w.nextID++
	id := w.nextID

	b := &body{id: id, pos: start, half: half, solid: true}
	b.obj = newObject(start, half, tagBody)
	b.obj.Data = b
	w.space.Add(b.obj)

	w.bodies[id] = b
	w.order = append(w.order, id)
	return id, nil
}

// AddStatic adds an immovable box collider.
func (w *World) AddStatic(center, half core.Vec2) {
	obj := newObject(center, half, tagStatic)
	obj.Data = &extent{center: center, half: half}
	w.space.Add(obj)
}

// SetCollidable switches body-to-body contacts for id. A body that is not
// collidable still rests on static colliders. Panics on an unknown id.
func (w *World) SetCollidable(id BodyID, solid bool) {
	w.mustBody(id).solid = solid
}

// Collidable reports whether id takes part in body-to-body contacts.
func (w *World) Collidable(id BodyID) bool {
	return w.mustBody(id).solid
}

// Has reports whether id refers to a live body.
func (w *World) Has(id BodyID) bool {
	_, ok := w.bodies[id]
	return ok
}

// Position returns the body center. Panics on an unknown id.
func (w *World) Position(id BodyID) core.Vec2 {
	return w.mustBody(id).pos
}

// Velocity returns the body linear velocity. Panics on an unknown id.
func (w *World) Velocity(id BodyID) core.Vec2 {
	return w.mustBody(id).vel
}

// SetPosition teleports the body. Panics on an unknown id.
func (w *World) SetPosition(id BodyID, p core.Vec2) {
	b := w.mustBody(id)
	b.pos = p
	b.sync()
}

// SetVelocity overwrites the body velocity. Panics on an unknown id.
func (w *World) SetVelocity(id BodyID, v core.Vec2) {
	w.mustBody(id).vel = v
}

func (w *World) mustBody(id BodyID) *body {
	b, ok := w.bodies[id]
	if !ok {
		panic(fmt.Sprintf("physics: unknown body %d", id))
	}
	return b
}

// Step integrates every dynamic body by dt seconds, then resolves contacts.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	damp := 1 / (1 + dt*w.damping)
	for _, id := range w.order {
		b := w.bodies[id]
		b.vel = b.vel.Add(w.gravity.Scale(dt)).Scale(damp)
		b.pos = b.pos.Add(b.vel.Scale(dt))
		b.sync()
	}

	w.separateBodies()

	// Statics last so walls always win over body pushes.
	for _, id := range w.order {
		w.resolveStatics(w.bodies[id])
	}
}

// touching returns the solid bodies sharing space cells with b, by id.
func (w *World) touching(b *body) []*body {
	hit := b.obj.Check(0, 0, tagBody)
	if hit == nil {
		return nil
	}
	out := make([]*body, 0, len(hit.Objects))
	for _, o := range hit.Objects {
		if other, ok := o.Data.(*body); ok && other.solid {
			out = append(out, other)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// separateBodies pushes overlapping solid pairs apart, half each.
func (w *World) separateBodies() {
	for _, id := range w.order {
		a := w.bodies[id]
		if !a.solid {
			continue
		}
		for _, b := range w.touching(a) {
			if b.id <= a.id {
				continue
			}
			separate(a, b)
		}
	}
}

func separate(a, b *body) {
	penX, penY := penetration(a.box(), b.box())
	if penX <= ContactSlop || penY <= ContactSlop {
		return
	}
	if penX < penY {
		dir := pushDir(a.pos.X, b.pos.X)
		push := (penX - ContactSlop) / 2
		a.pos.X += dir * push
		b.pos.X -= dir * push
		if rel := b.vel.X - a.vel.X; rel*dir > 0 {
			avg := (a.vel.X + b.vel.X) / 2
			a.vel.X, b.vel.X = avg, avg
		}
	} else {
		dir := pushDir(a.pos.Y, b.pos.Y)
		push := (penY - ContactSlop) / 2
		a.pos.Y += dir * push
		b.pos.Y -= dir * push
		if rel := b.vel.Y - a.vel.Y; rel*dir > 0 {
			avg := (a.vel.Y + b.vel.Y) / 2
			a.vel.Y, b.vel.Y = avg, avg
		}
	}
	a.sync()
	b.sync()
}

// resolveStatics pushes b out of every static collider it overlaps.
func (w *World) resolveStatics(b *body) {
	hit := b.obj.Check(0, 0, tagStatic)
	if hit == nil {
		return
	}
	for _, o := range hit.Objects {
		s, ok := o.Data.(*extent)
		if !ok {
			continue
		}
		penX, penY := penetration(b.box(), *s)
		if penX <= 0 || penY <= 0 {
			continue
		}
		if penX < penY {
			dir := pushDir(b.pos.X, s.center.X)
			b.pos.X += dir * penX
			if b.vel.X*dir < 0 {
				b.vel.X = 0
			}
		} else {
			dir := pushDir(b.pos.Y, s.center.Y)
			b.pos.Y += dir * penY
			if b.vel.Y*dir < 0 {
				b.vel.Y = 0
			}
		}
		b.sync()
	}
}

// penetration returns how far two boxes overlap on each axis.
func penetration(a, b extent) (x, y float64) {
	x = a.half.X + b.half.X - math.Abs(a.center.X-b.center.X)
	y = a.half.Y + b.half.Y - math.Abs(a.center.Y-b.center.Y)
	return x, y
}

// pushDir returns the direction that moves a away from b; ties push positive.
func pushDir(a, b float64) float64 {
	if a < b {
		return -1
	}
	return 1
}
