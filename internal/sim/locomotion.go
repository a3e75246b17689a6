package sim

import (
	"math"

	"github.com/vovakirdan/tui-brawl/internal/core"
)

// Profile is the speed and steering tuning of one control source.
type Profile struct {
	WalkSpeed  float64
	RunSpeed   float64
	GroundGain float64
	AirGain    float64
}

var (
	PlayerProfile = Profile{WalkSpeed: WalkSpeed, RunSpeed: PlayerRunSpeed, GroundGain: 12, AirGain: 6}
	BotProfile    = Profile{WalkSpeed: WalkSpeed, RunSpeed: BotRunSpeed, GroundGain: 10, AirGain: 4}
)

// ControlIntent is what a control source wants this frame, whether it comes
// from the keyboard or from the AI.
type ControlIntent struct {
	Left  bool
	Right bool
	Run   bool
}

// Direction returns -1, 0 or +1. Opposing keys cancel.
func (c ControlIntent) Direction() int {
	d := 0
	if c.Left {
		d--
	}
	if c.Right {
		d++
	}
	return d
}

// Directional reports whether any direction is requested.
func (c ControlIntent) Directional() bool { return c.Left || c.Right }

// intentToward builds an intent that moves along facing.
func intentToward(facing int, run bool) ControlIntent {
	return ControlIntent{Left: facing < 0, Right: facing > 0, Run: run}
}

// DesiredVelocity maps an intent to a horizontal target speed.
func (p Profile) DesiredVelocity(c ControlIntent) float64 {
	speed := p.WalkSpeed
	if c.Run {
		speed = p.RunSpeed
	}
	return float64(c.Direction()) * speed
}

// OnGround derives ground contact from the foot height and vertical speed.
func OnGround(footY, groundTop, vy float64) bool {
	return footY <= groundTop+GroundEpsilon && math.Abs(vy) < GroundedMaxVY
}

// Steer moves v toward desired by gain*dt of the gap.
func Steer(v, desired, gain, dt float64) float64 {
	return v + (desired-v)*gain*dt
}

// Motion is what locomotion did to an actor this frame, kept for animation.
type Motion struct {
	Speed       float64
	Directional bool
	Fast        bool
}

// locomote steers the actor's horizontal velocity toward the desired value.
func (s *Simulation) locomote(a *Actor, desired float64, fast bool, p Profile, dt float64) {
	if !a.Alive() {
		s.physics.SetVelocity(a.Body, core.Vec2{})
		a.motion = Motion{}
		return
	}
	pos := s.physics.Position(a.Body)
	vel := s.physics.Velocity(a.Body)

	gain := p.AirGain
	if OnGround(pos.Y-a.HalfH, s.bounds.GroundTop, vel.Y) {
		gain = p.GroundGain
	}
	vx := Steer(vel.X, desired, gain, dt)
	s.physics.SetVelocity(a.Body, core.V(vx, vel.Y))

	a.motion = Motion{
		Speed:       math.Abs(vx),
		Directional: desired != 0,
		Fast:        fast,
	}
}

// settle applies the post-step ground correction.
func (s *Simulation) settle(a *Actor) {
	pos := s.physics.Position(a.Body)
	vel := s.physics.Velocity(a.Body)
	foot := pos.Y - a.HalfH
	top := s.bounds.GroundTop

	switch {
	case OnGround(foot, top, vel.Y):
		s.physics.SetPosition(a.Body, core.V(pos.X, top+a.HalfH))
		vel.Y = 0
	case foot < top:
		s.physics.SetPosition(a.Body, core.V(pos.X, top+a.HalfH))
		vel.Y = max(0, vel.Y)
	}
	if !a.Alive() {
		vel = core.Vec2{}
	}
	s.physics.SetVelocity(a.Body, vel)
}
