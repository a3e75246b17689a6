package sim

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-brawl/internal/core"
)

// Indicator is a floating damage number.
type Indicator struct {
	Position core.Vec2
	Value    int
	Color    core.Color
	Age      float64
	TTL      float64
}

// Alpha fades from 1 at spawn to 0 at expiry.
func (i Indicator) Alpha() float64 {
	if i.TTL <= 0 {
		return 0
	}
	return core.ClampF(1-i.Age/i.TTL, 0, 1)
}

// Expired reports whether the indicator should be dropped.
func (i Indicator) Expired() bool { return i.Age >= i.TTL }

// Stats accumulates the outcome of a session.
type Stats struct {
	Elapsed     float64
	DamageDealt int
	DamageTaken int
	Kills       int
	Swings      int
	Hits        int
}

// Score is damage dealt plus a bonus per kill.
func (s Stats) Score() int { return s.DamageDealt + 50*s.Kills }

// attackDuration derives the swing length from the attack animation.
func (s *Simulation) attackDuration(k Kind, state AttackState) float64 {
	if s.frames == nil {
		return DefaultAttackDuration
	}
	mode := ModeIdleAttack
	if state == AttackMove {
		mode = ModeMoveAttack
	}
	n := s.frames.FrameCount(k, mode)
	if n <= 0 {
		return DefaultAttackDuration
	}
	return float64(n) / AnimationFPS
}

func (s *Simulation) beginAttack(a *Actor, state AttackState) {
	a.beginAttack(state, s.attackDuration(a.Kind, state))
	if a.Kind == KindPlayer {
		s.stats.Swings++
	}
}

// playerAttack starts a swing on the rising edge of the attack key.
// moving picks the moving swing over the idle one.
func (s *Simulation) playerAttack(in core.Input, moving bool) {
	pressed := in.Attack && !s.attackHeld
	s.attackHeld = in.Attack
	p := s.player
	if !pressed || p.Attacking() {
		return
	}

	state, cost := AttackIdle, AttackCostIdle
	if moving {
		state, cost = AttackMove, AttackCostMoving
	}
	if !p.Spend(cost) {
		return
	}
	s.beginAttack(p, state)
}

// resolveHits applies at most one hit per swing using post-step positions.
func (s *Simulation) resolveHits() {
	p := s.player
	if p.Alive() && p.Attacking() && !p.AttackHitApplied {
		for _, b := range s.bots {
			if b.Alive() && s.inReach(p, b) {
				s.hit(p, b)
				break
			}
		}
	}

	for _, b := range s.bots {
		if !p.Alive() {
			return
		}
		if !b.Alive() || !b.Aggro || !b.Attacking() || b.AttackHitApplied {
			continue
		}
		if s.inReach(b, p) {
			s.hit(b, p)
		}
	}
}

// inReach reports horizontal overlap with the attacker facing the victim.
func (s *Simulation) inReach(attacker, victim *Actor) bool {
	dx := s.physics.Position(victim.Body).X - s.physics.Position(attacker.Body).X
	if math.Abs(dx) > attacker.Reach(victim) {
		return false
	}
	return facingToward(dx) == attacker.Facing
}

// RollDamage draws a uniform integer in [DamageMin, DamageMin+DamageSpread).
func RollDamage(r *rand.Rand) int {
	return int(math.Floor(DamageMin + r.Float64()*DamageSpread))
}

func (s *Simulation) hit(attacker, victim *Actor) {
	dmg := RollDamage(s.rng)
	attacker.AttackHitApplied = true

	if victim.Kind == KindBot {
		victim.fire(EventDamaged)
		victim.Aggro = true
	}
	killed := victim.takeDamage(dmg)

	color := core.ColorBrightYellow
	if victim.Kind == KindPlayer {
		color = core.ColorBrightRed
		s.stats.DamageTaken += dmg
	} else {
		s.stats.DamageDealt += dmg
		s.stats.Hits++
	}
	pos := s.physics.Position(victim.Body)
	s.indicators = append(s.indicators, Indicator{
		Position: core.V(pos.X, pos.Y+victim.HalfH+IndicatorOffset),
		Value:    dmg,
		Color:    color,
		TTL:      IndicatorTTL,
	})

	s.logger.Debug("hit",
		"attacker", attacker.ID,
		"victim", victim.ID,
		"damage", dmg,
		"health", victim.Health,
	)

	if !killed {
		return
	}
	// Corpses stay in the arena but no longer block anyone.
	s.physics.SetCollidable(victim.Body, false)
	if victim.Kind == KindPlayer {
		s.input.SetEnabled(false)
		s.inputLocked = true
		s.logger.Info("player died", "killer", attacker.ID, "elapsed", s.stats.Elapsed)
		return
	}
	s.stats.Kills++
	s.logger.Info("bot killed", "bot", victim.ID, "kills", s.stats.Kills)
	if s.Cleared() {
		s.logger.Info("arena cleared", "elapsed", s.stats.Elapsed, "score", s.stats.Score())
	}
}

// ageIndicators drifts indicators upward and drops expired ones.
func (s *Simulation) ageIndicators(dt float64) {
	live := s.indicators[:0]
	for _, ind := range s.indicators {
		ind.Age += dt
		ind.Position.Y += IndicatorRise * dt
		if !ind.Expired() {
			live = append(live, ind)
		}
	}
	s.indicators = live
}
