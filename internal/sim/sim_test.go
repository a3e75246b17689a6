package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-brawl/internal/core"
	"github.com/vovakirdan/tui-brawl/internal/physics"
)

const frameDt = 1.0 / 60

type fixedFrames int

func (f fixedFrames) FrameCount(Kind, Mode) int { return int(f) }

func newTestSim(t *testing.T, population int) (*Simulation, *physics.World) {
	t.Helper()
	w := physics.NewWorld(core.V(0, physics.DefaultGravity))
	s, err := New(w, Options{Population: population, Rand: rand.New(rand.NewSource(42))})
	require.NoError(t, err)
	return s, w
}

// place puts an actor on the floor at x, at rest.
func place(s *Simulation, a *Actor, x float64) {
	s.physics.SetPosition(a.Body, core.V(x, s.bounds.GroundTop+a.HalfH))
	s.physics.SetVelocity(a.Body, core.Vec2{})
}

// quiet keeps a wandering bot standing still.
func quiet(b *Actor) {
	b.WanderTimer = 1e9
	b.WanderMove = false
}

// isolate parks every bot except keep far from the origin, standing still.
func isolate(s *Simulation, keep ...*Actor) {
	i := 0
	for _, b := range s.bots {
		kept := false
		for _, k := range keep {
			if k == b {
				kept = true
			}
		}
		if kept {
			continue
		}
		side := 1.0
		if i%2 == 1 {
			side = -1
		}
		place(s, b, side*(12+3*float64(i/2)))
		quiet(b)
		i++
	}
}

func TestNewSpawnsArena(t *testing.T) {
	s, w := newTestSim(t, 7)

	assert.Len(t, s.Bots(), 7)

	p := s.Player()
	pos := w.Position(p.Body)
	assert.Equal(t, 0.0, pos.X)
	assert.InDelta(t, s.bounds.GroundTop+1, pos.Y, 1e-12)
	assert.Equal(t, MaxHealth, p.Health)
	assert.Equal(t, MaxStamina, p.Stamina)
	assert.Equal(t, BehaviorActive, p.Behavior)

	for _, b := range s.Bots() {
		x := w.Position(b.Body).X
		assert.GreaterOrEqual(t, math.Abs(x), SpawnClearance, "bot %d too close to the player", b.ID)
		assert.True(t, s.bounds.Contains(x-b.HalfW) && s.bounds.Contains(x+b.HalfW))
		assert.Equal(t, AttackNone, b.Attack)
		assert.Equal(t, BehaviorWander, b.Behavior)
		assert.False(t, b.Aggro)
	}
}

func TestNewPopulation(t *testing.T) {
	w := physics.NewWorld(core.V(0, physics.DefaultGravity))
	_, err := New(w, Options{Population: 4})
	assert.ErrorIs(t, err, ErrPopulation)

	_, err = New(physics.NewWorld(core.V(0, physics.DefaultGravity)), Options{Population: 11})
	assert.ErrorIs(t, err, ErrPopulation)

	for seed := int64(0); seed < 20; seed++ {
		w := physics.NewWorld(core.V(0, physics.DefaultGravity))
		s, err := New(w, Options{Rand: rand.New(rand.NewSource(seed))})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(s.Bots()), MinPopulation)
		assert.LessOrEqual(t, len(s.Bots()), MaxPopulation)
	}
}

// lostBody forgets one body, as a collaborator that dropped it would.
type lostBody struct {
	*physics.World
	lost physics.BodyID
}

func (l *lostBody) Has(id physics.BodyID) bool {
	return id != l.lost && l.World.Has(id)
}

func TestFrameFailsWithoutBody(t *testing.T) {
	w := &lostBody{World: physics.NewWorld(core.V(0, physics.DefaultGravity))}
	s, err := New(w, Options{Population: 5, Rand: rand.New(rand.NewSource(42))})
	require.NoError(t, err)
	w.lost = s.Bots()[2].Body

	err = s.Frame(frameDt, core.NewInputManager())
	assert.ErrorIs(t, err, ErrNoBody)
}

// Idle attack at close range: stamina cost, damage, indicator, aggro.
func TestScenarioIdleAttackHitsBot(t *testing.T) {
	s, w := newTestSim(t, 5)
	p := s.Player()
	target := s.Bots()[0]
	isolate(s, target)
	place(s, p, 0)
	place(s, target, 1.5)
	quiet(target)
	target.Facing = -1
	p.Stamina = 10

	in := core.NewInputManager()
	in.Press(core.ActionAttack)
	require.NoError(t, s.Frame(frameDt, in))

	// The frame's idle regen lands before the swing is paid for.
	assert.InDelta(t, 10+RegenIdle*frameDt-AttackCostIdle, p.Stamina, 1e-9)
	assert.Equal(t, AttackIdle, p.Attack)
	assert.True(t, p.AttackHitApplied)

	lost := MaxHealth - target.Health
	assert.GreaterOrEqual(t, lost, 5.0)
	assert.LessOrEqual(t, lost, 10.0)
	assert.True(t, target.Aggro)
	assert.Equal(t, BehaviorApproach, target.Behavior)

	inds := s.Indicators()
	require.Len(t, inds, 1)
	assert.InDelta(t, w.Position(target.Body).X, inds[0].Position.X, 1e-9)
	assert.Greater(t, inds[0].Position.Y, w.Position(target.Body).Y)
	assert.Equal(t, int(lost), inds[0].Value)
	assert.Equal(t, core.ColorBrightYellow, inds[0].Color)
}

// Sprint with an empty pool walks.
func TestScenarioSprintWithoutStamina(t *testing.T) {
	s, w := newTestSim(t, 5)
	p := s.Player()
	isolate(s)
	p.Stamina = 0

	in := core.NewInputManager()
	in.Press(core.ActionRight)
	in.Press(core.ActionSprint)

	for i := 0; i < 120; i++ {
		p.Stamina = 0
		require.NoError(t, s.Frame(frameDt, in))
	}

	vx := w.Velocity(p.Body).X
	assert.Greater(t, vx, 0.85*WalkSpeed)
	assert.LessOrEqual(t, vx, WalkSpeed)
	assert.Equal(t, ModeWalk, p.anim.Mode())
}

// A bot killed mid-swing drops its attack at once.
func TestScenarioBotDiesMidAttack(t *testing.T) {
	s, _ := newTestSim(t, 5)
	p := s.Player()
	bot := s.Bots()[0]
	isolate(s, bot)
	place(s, p, 0)
	place(s, bot, 1.5)
	bot.Facing = -1
	bot.fire(EventDamaged)
	s.beginAttack(bot, AttackIdle)
	bot.Health = 5
	require.True(t, bot.Attacking())

	in := core.NewInputManager()
	in.Press(core.ActionAttack)
	require.NoError(t, s.Frame(frameDt, in))

	assert.Equal(t, 0.0, bot.Health)
	assert.Equal(t, AttackNone, bot.Attack)
	assert.Equal(t, 0.0, bot.AttackTimer)
	assert.Equal(t, BehaviorDead, bot.Behavior)
	assert.Equal(t, ModeDead, SelectMode(bot, bot.motion))
	assert.Equal(t, ModeDead, bot.anim.Mode())
	assert.Equal(t, 1, s.Stats().Kills)
}

// A stalled frame runs at most the step cap.
func TestScenarioLongFrame(t *testing.T) {
	sched := NewScheduler()
	steps := 0
	n := sched.Advance(5, func(float64) { steps++ })

	assert.Equal(t, MaxStepsPerFrame, n)
	assert.Equal(t, MaxStepsPerFrame, steps)
	assert.Less(t, sched.Pending(), FixedDt)

	// Nothing of the stall carries into the next frame.
	assert.Equal(t, 0, sched.Advance(0, func(float64) { steps++ }))
	assert.Equal(t, MaxStepsPerFrame, steps)
}

type countingWorld struct {
	*physics.World
	steps int
}

func (c *countingWorld) Step(dt float64) {
	c.steps++
	c.World.Step(dt)
}

func TestFrameClampsDelta(t *testing.T) {
	w := &countingWorld{World: physics.NewWorld(core.V(0, physics.DefaultGravity))}
	s, err := New(w, Options{Population: 5, Rand: rand.New(rand.NewSource(1))})
	require.NoError(t, err)

	require.NoError(t, s.Frame(5, core.NewInputManager()))

	assert.InDelta(t, MaxFrameDt, s.Stats().Elapsed, 1e-12)
	assert.GreaterOrEqual(t, w.steps, 3)
	assert.LessOrEqual(t, w.steps, 4)
}

// Player death freezes control for the rest of the session.
func TestScenarioPlayerDeathDisablesInput(t *testing.T) {
	s, w := newTestSim(t, 5)
	p := s.Player()
	bot := s.Bots()[0]
	isolate(s, bot)
	place(s, p, 0)
	place(s, bot, 1.5)

	// Player swings away from the bot so only the bot lands a hit.
	p.Facing = -1
	p.beginAttack(AttackIdle, 10)
	p.Health = 3

	bot.Facing = -1
	bot.fire(EventDamaged)
	s.beginAttack(bot, AttackIdle)

	in := core.NewInputManager()
	in.Press(core.ActionLeft)
	require.NoError(t, s.Frame(frameDt, in))

	assert.Equal(t, 0.0, p.Health)
	assert.Equal(t, AttackNone, p.Attack)
	assert.Equal(t, 0.0, p.AttackTimer)
	assert.Equal(t, BehaviorDead, p.Behavior)
	assert.False(t, in.Enabled())
	assert.False(t, in.Snapshot().HasDirection())

	before := in.Snapshot()
	in.Press(core.ActionRight)
	in.Press(core.ActionAttack)
	assert.Equal(t, before, in.Snapshot())

	for i := 0; i < 30; i++ {
		require.NoError(t, s.Frame(frameDt, in))
	}
	assert.Equal(t, core.Vec2{}, w.Velocity(p.Body))
	assert.True(t, s.State().PlayerDead)
	assert.Equal(t, ModeDead, p.anim.Mode())
}

func TestSingleTargetPerSwing(t *testing.T) {
	s, _ := newTestSim(t, 5)
	p := s.Player()
	first, second := s.Bots()[0], s.Bots()[1]
	isolate(s, first, second)
	place(s, p, 0)
	place(s, first, 1.0)
	place(s, second, 1.5)
	p.Facing = 1
	p.beginAttack(AttackIdle, DefaultAttackDuration)

	s.resolveHits()
	s.resolveHits()

	assert.Less(t, first.Health, MaxHealth)
	assert.Equal(t, MaxHealth, second.Health)
	assert.Len(t, s.Indicators(), 1)
}

func TestHitOncePerSwing(t *testing.T) {
	s, _ := newTestSim(t, 5)
	p := s.Player()
	bot := s.Bots()[0]
	isolate(s, bot)
	place(s, p, 0)
	place(s, bot, 1.5)
	quiet(bot)

	in := core.NewInputManager()
	in.Press(core.ActionAttack)
	require.NoError(t, s.Frame(frameDt, in))
	after := bot.Health
	require.Less(t, after, MaxHealth)

	// Holding the key keeps the same swing alive.
	for p.Attacking() {
		require.NoError(t, s.Frame(frameDt, in))
		assert.Equal(t, after, bot.Health)
	}
	assert.False(t, p.AttackHitApplied)
	assert.Equal(t, 1, s.Stats().Swings)

	// A fresh press starts a new swing.
	in.Release(core.ActionAttack)
	require.NoError(t, s.Frame(frameDt, in))
	in.Press(core.ActionAttack)
	require.NoError(t, s.Frame(frameDt, in))
	assert.Equal(t, 2, s.Stats().Swings)
}

func TestZeroOffsetCountsAsFacingRight(t *testing.T) {
	tests := []struct {
		facing int
		hit    bool
	}{
		{facing: 1, hit: true},
		{facing: -1, hit: false},
	}
	for _, tt := range tests {
		s, _ := newTestSim(t, 5)
		p := s.Player()
		bot := s.Bots()[0]
		isolate(s, bot)
		place(s, p, 0)
		place(s, bot, 0)
		p.Facing = tt.facing
		p.beginAttack(AttackIdle, DefaultAttackDuration)

		s.resolveHits()
		assert.Equal(t, tt.hit, bot.Health < MaxHealth, "facing %d", tt.facing)
	}
}

func TestAttackBlockedByStamina(t *testing.T) {
	s, _ := newTestSim(t, 5)
	p := s.Player()
	isolate(s)
	p.Stamina = 4

	in := core.NewInputManager()
	in.Press(core.ActionRight)
	in.Press(core.ActionAttack)
	require.NoError(t, s.Frame(frameDt, in))

	assert.Equal(t, AttackNone, p.Attack)
	assert.InDelta(t, 4+RegenMoving*frameDt, p.Stamina, 1e-9)
}

func TestAttackDurationFromFrames(t *testing.T) {
	s, _ := newTestSim(t, 5)
	assert.Equal(t, DefaultAttackDuration, s.attackDuration(KindPlayer, AttackIdle))

	s.frames = fixedFrames(45)
	assert.InDelta(t, 0.75, s.attackDuration(KindPlayer, AttackMove), 1e-12)

	s.frames = fixedFrames(0)
	assert.Equal(t, DefaultAttackDuration, s.attackDuration(KindBot, AttackIdle))
}

func TestIndicatorsAgeAndExpire(t *testing.T) {
	s, _ := newTestSim(t, 5)
	s.indicators = []Indicator{{Position: core.V(0, 0), Value: 7, TTL: IndicatorTTL}}

	s.ageIndicators(0.25)
	require.Len(t, s.indicators, 1)
	assert.InDelta(t, 0.75, s.indicators[0].Alpha(), 1e-12)
	assert.InDelta(t, IndicatorRise*0.25, s.indicators[0].Position.Y, 1e-12)

	snap := s.Snapshot()
	require.Len(t, snap.Indicators, 1)
	assert.InDelta(t, 0.75, snap.Indicators[0].Alpha, 1e-12)

	s.ageIndicators(0.75)
	assert.Empty(t, s.indicators)
}

func TestRollDamageRange(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		d := RollDamage(r)
		require.GreaterOrEqual(t, d, 5)
		require.LessOrEqual(t, d, 10)
		seen[d] = true
	}
	assert.Len(t, seen, 6)
}

func TestSnapshotMirrorsState(t *testing.T) {
	s, w := newTestSim(t, 6)
	s.frames = fixedFrames(4)
	require.NoError(t, s.Frame(frameDt, core.NewInputManager()))

	snap := s.Snapshot()
	require.Len(t, snap.Actors, 7)
	assert.Equal(t, KindPlayer, snap.Actors[0].Kind)
	for i, a := range s.actors {
		v := snap.Actors[i]
		assert.Equal(t, a.ID, v.ID)
		assert.Equal(t, w.Position(a.Body), v.Position)
		assert.Equal(t, core.V(1, 1), v.HalfExtents)
		assert.Equal(t, a.Facing, v.Facing)
	}
	assert.Equal(t, s.Player().Stamina, snap.HUD.Stamina)
	assert.False(t, snap.HUD.SprintLocked)
	assert.False(t, snap.PlayerDead)
	assert.False(t, snap.Cleared)
}

// A long randomized brawl keeps every actor invariant after each frame.
func TestInvariantsHoldUnderRandomPlay(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		w := physics.NewWorld(core.V(0, physics.DefaultGravity))
		s, err := New(w, Options{
			Rand:   rand.New(rand.NewSource(seed)),
			Frames: fixedFrames(30),
		})
		require.NoError(t, err)
		for _, b := range s.Bots() {
			b.fire(EventDamaged)
		}

		keys := rand.New(rand.NewSource(seed * 100))
		actions := []core.Action{core.ActionLeft, core.ActionRight, core.ActionSprint, core.ActionAttack}
		in := core.NewInputManager()
		top := s.Bounds().GroundTop

		for frame := 0; frame < 3000; frame++ {
			a := actions[keys.Intn(len(actions))]
			if keys.Float64() < 0.5 {
				in.Press(a)
			} else {
				in.Release(a)
			}
			dt := frameDt * (0.5 + keys.Float64())
			require.NoError(t, s.Frame(dt, in))

			for _, act := range s.actors {
				require.GreaterOrEqual(t, act.Health, 0.0)
				require.LessOrEqual(t, act.Health, MaxHealth)
				require.GreaterOrEqual(t, act.Stamina, 0.0)
				require.LessOrEqual(t, act.Stamina, MaxStamina)
				require.Equal(t, act.AttackTimer > 0, act.Attacking(), "actor %d frame %d", act.ID, frame)

				pos := w.Position(act.Body)
				vel := w.Velocity(act.Body)
				if !act.Alive() {
					require.Equal(t, AttackNone, act.Attack)
					require.Equal(t, core.Vec2{}, vel)
				}
				foot := pos.Y - act.HalfH
				if OnGround(foot, top, vel.Y) {
					require.InDelta(t, top, foot, 1e-9)
					require.Equal(t, 0.0, vel.Y)
				}
				require.True(t, s.bounds.Contains(pos.X-act.HalfW+1e-6))
				require.True(t, s.bounds.Contains(pos.X+act.HalfW-1e-6))
			}
		}
	}
}

func TestIdleAttackIsLastStaminaChange(t *testing.T) {
	s, _ := newTestSim(t, 5)
	p := s.Player()
	isolate(s)
	require.Equal(t, MaxStamina, p.Stamina)

	in := core.NewInputManager()
	in.Press(core.ActionAttack)
	require.NoError(t, s.Frame(frameDt, in))

	assert.Equal(t, AttackIdle, p.Attack)
	assert.Equal(t, MaxStamina-AttackCostIdle, p.Stamina)
}

func TestOpposingKeysStandStill(t *testing.T) {
	s, w := newTestSim(t, 5)
	p := s.Player()
	isolate(s)
	p.Stamina = 50

	in := core.NewInputManager()
	in.Press(core.ActionLeft)
	in.Press(core.ActionRight)
	in.Press(core.ActionSprint)
	for i := 0; i < 60; i++ {
		require.NoError(t, s.Frame(frameDt, in))
	}

	assert.InDelta(t, 50+60*RegenIdle*frameDt, p.Stamina, 1e-9)
	assert.Zero(t, p.RunDuration)
	assert.InDelta(t, 0, w.Velocity(p.Body).X, 1e-9)

	in.Press(core.ActionAttack)
	require.NoError(t, s.Frame(frameDt, in))
	assert.Equal(t, AttackIdle, p.Attack)
}

func TestBotSwingNeedsAggroAndFacing(t *testing.T) {
	tests := []struct {
		name   string
		aggro  bool
		facing int
		hit    bool
	}{
		{name: "aggro facing player", aggro: true, facing: -1, hit: true},
		{name: "calm facing player", aggro: false, facing: -1, hit: false},
		{name: "aggro facing away", aggro: true, facing: 1, hit: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSim(t, 5)
			p := s.Player()
			bot := s.Bots()[0]
			isolate(s, bot)
			place(s, p, 0)
			place(s, bot, 1.5)
			bot.beginAttack(AttackIdle, DefaultAttackDuration)
			bot.Aggro = tt.aggro
			bot.Facing = tt.facing

			s.resolveHits()

			assert.Equal(t, tt.hit, p.Health < MaxHealth)
			assert.Equal(t, tt.hit, bot.AttackHitApplied)
		})
	}
}

// A corpse between a bot and the player does not keep them apart.
func TestCorpseDoesNotBlock(t *testing.T) {
	s, w := newTestSim(t, 5)
	p := s.Player()
	corpse, live := s.Bots()[0], s.Bots()[1]
	isolate(s, corpse, live)
	place(s, p, 0)
	place(s, corpse, 1.8)
	place(s, live, 4.5)
	quiet(corpse)

	corpse.Health = 1
	p.Facing = 1
	p.beginAttack(AttackIdle, DefaultAttackDuration)
	s.resolveHits()
	require.False(t, corpse.Alive())
	assert.False(t, w.Collidable(corpse.Body))
	assert.True(t, w.Collidable(live.Body))

	live.fire(EventDamaged)
	live.Aggro = true

	in := core.NewInputManager()
	for i := 0; i < 180; i++ {
		require.NoError(t, s.Frame(frameDt, in))
	}

	assert.Less(t, p.Health, MaxHealth, "live bot should reach the player")
	assert.InDelta(t, 1.8, w.Position(corpse.Body).X, 0.01, "corpse should not be shoved")
	assert.Greater(t, w.Position(p.Body).X, -1.0, "player should not be pushed back")
}
