package sim

import "github.com/vovakirdan/tui-brawl/internal/core"

// ActorView is the render-facing state of one actor.
type ActorView struct {
	ID          int
	Kind        Kind
	Position    core.Vec2
	HalfExtents core.Vec2
	Facing      int
	Mode        Mode
	Frame       int
	Health      float64
	Aggro       bool
}

// IndicatorView is the render-facing state of a damage indicator.
type IndicatorView struct {
	Position core.Vec2
	Value    int
	Color    core.Color
	Alpha    float64
}

// HUD carries the controllable actor's gauges.
type HUD struct {
	Health       float64
	Stamina      float64
	SprintLocked bool
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	Bounds     Bounds
	Actors     []ActorView
	Indicators []IndicatorView
	HUD        HUD
	Stats      Stats
	PlayerDead bool
	Cleared    bool
}

// Snapshot copies the current state out for rendering.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Bounds:     s.bounds,
		Actors:     make([]ActorView, 0, len(s.actors)),
		Indicators: make([]IndicatorView, 0, len(s.indicators)),
		HUD: HUD{
			Health:       s.player.Health,
			Stamina:      s.player.Stamina,
			SprintLocked: s.player.Locked(),
		},
		Stats:      s.stats,
		PlayerDead: !s.player.Alive(),
		Cleared:    s.Cleared(),
	}
	for _, a := range s.actors {
		snap.Actors = append(snap.Actors, ActorView{
			ID:          a.ID,
			Kind:        a.Kind,
			Position:    s.physics.Position(a.Body),
			HalfExtents: a.HalfExtents(),
			Facing:      a.Facing,
			Mode:        a.anim.Mode(),
			Frame:       a.anim.Frame(),
			Health:      a.Health,
			Aggro:       a.Aggro,
		})
	}
	for _, ind := range s.indicators {
		snap.Indicators = append(snap.Indicators, IndicatorView{
			Position: ind.Position,
			Value:    ind.Value,
			Color:    ind.Color,
			Alpha:    ind.Alpha(),
		})
	}
	return snap
}
