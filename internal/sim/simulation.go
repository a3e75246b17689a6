// Package sim is the combat simulation: a bounded arena with one controllable
// actor and a pack of autonomous ones, advanced once per rendered frame with
// physics at a fixed rate.
package sim

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-brawl/internal/core"
	"github.com/vovakirdan/tui-brawl/internal/physics"
)

var (
	// ErrNoBody is returned when an actor's physics body is missing.
	ErrNoBody = errors.New("sim: actor has no physics body")
	// ErrPopulation is returned for a bot count outside [MinPopulation, MaxPopulation].
	ErrPopulation = errors.New("sim: population out of range")
)

// Physics is the rigid-body collaborator.
type Physics interface {
	StaticAdder
	CreateBody(start, half core.Vec2) (physics.BodyID, error)
	Has(id physics.BodyID) bool
	Position(id physics.BodyID) core.Vec2
	Velocity(id physics.BodyID) core.Vec2
	SetPosition(id physics.BodyID, p core.Vec2)
	SetVelocity(id physics.BodyID, v core.Vec2)
	SetCollidable(id physics.BodyID, solid bool)
	Step(dt float64)
}

// InputSource is polled once per frame for the controllable actor.
type InputSource interface {
	Snapshot() core.Input
	SetEnabled(enabled bool)
}

// Options configures a new Simulation.
type Options struct {
	Population int // 0 picks one in [MinPopulation, MaxPopulation]
	Rand       *rand.Rand
	Frames     FrameSource
	Logger     *log.Logger
}

// Simulation owns the arena and every actor in it.
// It is single-threaded and driven by the caller's frame loop.
type Simulation struct {
	physics Physics
	bounds  Bounds
	sched   *Scheduler
	rng     *rand.Rand
	frames  FrameSource
	logger  *log.Logger
	input   InputSource

	player *Actor
	bots   []*Actor
	actors []*Actor // player first

	indicators  []Indicator
	attackHeld  bool
	inputLocked bool
	stats       Stats
}

// New builds the arena on p and spawns the player and the bot pack.
func New(p Physics, opts Options) (*Simulation, error) {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	population := opts.Population
	switch {
	case population == 0:
		population = MinPopulation + rng.Intn(MaxPopulation-MinPopulation+1)
	case population < MinPopulation || population > MaxPopulation:
		return nil, fmt.Errorf("%w: %d", ErrPopulation, population)
	}

	s := &Simulation{
		physics: p,
		bounds:  NewBounds(),
		sched:   NewScheduler(),
		rng:     rng,
		frames:  opts.Frames,
		logger:  logger,
	}
	s.bounds.Install(p)

	player, err := s.spawn(KindPlayer, 0, 1)
	if err != nil {
		return nil, err
	}
	s.player = player

	for _, x := range s.spawnPoints(population) {
		facing := 1
		if rng.Float64() < 0.5 {
			facing = -1
		}
		b, err := s.spawn(KindBot, x, facing)
		if err != nil {
			return nil, err
		}
		s.bots = append(s.bots, b)
	}

	logger.Info("arena ready", "bots", len(s.bots))
	return s, nil
}

func (s *Simulation) spawn(k Kind, x float64, facing int) (*Actor, error) {
	start := core.V(x, s.bounds.GroundTop+ActorHalfHeight)
	body, err := s.physics.CreateBody(start, core.V(ActorHalfWidth, ActorHalfHeight))
	if err != nil {
		return nil, fmt.Errorf("sim: spawn %s: %w", k, err)
	}
	a := newActor(len(s.actors), k, body, facing)
	s.actors = append(s.actors, a)
	return a, nil
}

// spawnPoints picks n bot positions clear of the player and of each other.
func (s *Simulation) spawnPoints(n int) []float64 {
	lo := s.bounds.LeftInner + ActorHalfWidth + 1
	hi := s.bounds.RightInner - ActorHalfWidth - 1
	gap := 2*ActorHalfWidth + 0.5

	xs := make([]float64, 0, n)
	for tries := 0; len(xs) < n && tries < 200*n; tries++ {
		x := lo + s.rng.Float64()*(hi-lo)
		if math.Abs(x) < SpawnClearance {
			continue
		}
		clear := true
		for _, o := range xs {
			if math.Abs(o-x) < gap {
				clear = false
				break
			}
		}
		if clear {
			xs = append(xs, x)
		}
	}

	// Fall back to alternating sides past the clearance zone.
	for i := 0; len(xs) < n; i++ {
		side := 1.0
		if i%2 == 1 {
			side = -1
		}
		xs = append(xs, side*(SpawnClearance+float64(i/2)*gap+gap))
	}
	return xs
}

// Frame advances the simulation by one rendered frame.
func (s *Simulation) Frame(dt float64, in InputSource) error {
	for _, a := range s.actors {
		if !s.physics.Has(a.Body) {
			return fmt.Errorf("%w: actor %d", ErrNoBody, a.ID)
		}
	}
	s.input = in
	dt = core.ClampF(dt, 0, MaxFrameDt)
	if s.player.Alive() {
		s.stats.Elapsed += dt
	}

	s.control(in.Snapshot(), dt)
	for _, b := range s.bots {
		s.think(b, dt)
	}

	s.sched.Advance(dt, s.physics.Step)
	for _, a := range s.actors {
		s.settle(a)
	}

	s.resolveHits()
	s.animate(dt)
	s.ageIndicators(dt)
	return nil
}

// control applies the input snapshot to the player.
func (s *Simulation) control(in core.Input, dt float64) {
	p := s.player
	p.tickAttack(dt)
	if !p.Alive() {
		s.locomote(p, 0, false, PlayerProfile, dt)
		return
	}
	if s.inputLocked {
		in = core.Input{Facing: p.Facing}
	}
	if in.Facing != 0 {
		p.Facing = in.Facing
	}

	// Opposing keys cancel, and a cancelled direction is standing still.
	intent := ControlIntent{Left: in.Left, Right: in.Right}
	moving := intent.Direction() != 0
	ran := p.Economy.Update(dt, moving, in.Sprint)

	// The swing is the last change to stamina this frame.
	s.playerAttack(in, moving)

	intent.Run = ran && p.IsSprinting(in.Sprint)
	s.locomote(p, PlayerProfile.DesiredVelocity(intent), intent.Run, PlayerProfile, dt)
}

func (s *Simulation) animate(dt float64) {
	for _, a := range s.actors {
		a.motion.Speed = math.Abs(s.physics.Velocity(a.Body).X)
		mode := SelectMode(a, a.motion)
		n := 0
		if s.frames != nil {
			n = s.frames.FrameCount(a.Kind, mode)
		}
		a.anim.Update(dt, mode, n)
	}
}

// Player returns the controllable actor.
func (s *Simulation) Player() *Actor { return s.player }

// Bots returns the autonomous actors in spawn order.
func (s *Simulation) Bots() []*Actor { return s.bots }

// PositionOf returns the actor's body center.
func (s *Simulation) PositionOf(a *Actor) core.Vec2 {
	return s.physics.Position(a.Body)
}

// Bounds returns the arena layout.
func (s *Simulation) Bounds() Bounds { return s.bounds }

// Stats returns the session statistics so far.
func (s *Simulation) Stats() Stats { return s.stats }

// Indicators returns the live damage indicators.
func (s *Simulation) Indicators() []Indicator { return s.indicators }

// Cleared reports whether every bot is dead.
func (s *Simulation) Cleared() bool {
	for _, b := range s.bots {
		if b.Alive() {
			return false
		}
	}
	return true
}

// State summarizes the session for the platform layer.
func (s *Simulation) State() core.SessionState {
	return core.SessionState{
		Score:       s.stats.Score(),
		Kills:       s.stats.Kills,
		Bots:        len(s.bots),
		DamageDealt: s.stats.DamageDealt,
		DamageTaken: s.stats.DamageTaken,
		Elapsed:     s.stats.Elapsed,
		PlayerDead:  !s.player.Alive(),
		Cleared:     s.Cleared(),
	}
}
