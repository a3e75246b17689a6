package brawl

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-brawl/internal/core"
	"github.com/vovakirdan/tui-brawl/internal/sim"
)

// Autopilot plays the controllable actor: it walks to the nearest living bot,
// sprints across long gaps and swings once in reach.
// It satisfies sim.InputSource.
type Autopilot struct {
	rng      *rand.Rand
	state    core.Input
	disabled bool
	swing    bool
}

// NewAutopilot creates an enabled autopilot facing right.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{
		rng:   rand.New(rand.NewSource(seed)),
		state: core.Input{Facing: 1},
	}
}

// Observe decides the held keys for the next frame.
func (p *Autopilot) Observe(snap sim.Snapshot) {
	if p.disabled {
		return
	}

	me, target, ok := nearestBot(snap)
	in := core.Input{Facing: p.state.Facing}
	if !ok {
		p.state = in
		return
	}

	dx := target.Position.X - me.Position.X
	in.Facing = 1
	if dx < 0 {
		in.Facing = -1
	}

	if math.Abs(dx) > me.HalfExtents.X+target.HalfExtents.X {
		in.Left = in.Facing < 0
		in.Right = in.Facing > 0
		in.Sprint = math.Abs(dx) > 6 && snap.HUD.Stamina > 40 && !snap.HUD.SprintLocked
	} else {
		// Release between swings so every press is a fresh edge.
		p.swing = !p.swing
		in.Attack = p.swing
	}

	// Hesitate now and then so runs differ between seeds.
	if p.rng.Float64() < 0.05 {
		in.Left, in.Right, in.Sprint = false, false, false
	}
	p.state = in
}

func nearestBot(snap sim.Snapshot) (me, target sim.ActorView, ok bool) {
	found := false
	for _, a := range snap.Actors {
		if a.Kind == sim.KindPlayer {
			me, found = a, true
		}
	}
	if !found || me.Health <= 0 {
		return me, target, false
	}
	best := math.Inf(1)
	for _, a := range snap.Actors {
		if a.Kind != sim.KindBot || a.Health <= 0 {
			continue
		}
		if d := math.Abs(a.Position.X - me.Position.X); d < best {
			best, target, ok = d, a, true
		}
	}
	return me, target, ok
}

// Snapshot returns the keys decided by the last Observe.
func (p *Autopilot) Snapshot() core.Input { return p.state }

// SetEnabled stops or resumes the autopilot. Disabling releases every key.
func (p *Autopilot) SetEnabled(enabled bool) {
	p.disabled = !enabled
	if p.disabled {
		p.state = core.Input{Facing: p.state.Facing}
	}
}

// Enabled reports whether the autopilot still drives the actor.
func (p *Autopilot) Enabled() bool { return !p.disabled }
