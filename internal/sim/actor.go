package sim

import (
	"github.com/vovakirdan/tui-brawl/internal/core"
	"github.com/vovakirdan/tui-brawl/internal/physics"
)

// Kind separates the controllable actor from autonomous ones.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindBot
)

func (k Kind) String() string {
	if k == KindPlayer {
		return "player"
	}
	return "bot"
}

// AttackState is the swing an actor is currently in.
type AttackState uint8

const (
	AttackNone AttackState = iota
	AttackIdle
	AttackMove
)

func (s AttackState) String() string {
	switch s {
	case AttackIdle:
		return "idle-attack"
	case AttackMove:
		return "move-attack"
	default:
		return "none"
	}
}

// Actor is one combatant. Position and velocity live in the physics world
// behind Body.
type Actor struct {
	ID    int
	Kind  Kind
	Body  physics.BodyID
	HalfW float64
	HalfH float64

	Facing int
	Health float64
	Economy

	Attack           AttackState
	AttackTimer      float64
	AttackHitApplied bool

	// Bots only.
	Aggro          bool
	AttackCooldown float64
	WanderTimer    float64
	WanderMove     bool

	Behavior Behavior

	anim   Animator
	motion Motion
}

func newActor(id int, kind Kind, body physics.BodyID, facing int) *Actor {
	a := &Actor{
		ID:       id,
		Kind:     kind,
		Body:     body,
		HalfW:    ActorHalfWidth,
		HalfH:    ActorHalfHeight,
		Facing:   facing,
		Health:   MaxHealth,
		Economy:  Economy{Stamina: MaxStamina},
		Behavior: BehaviorActive,
	}
	if kind == KindBot {
		a.Behavior = BehaviorWander
	}
	return a
}

// Alive reports whether the actor still takes part in combat.
func (a *Actor) Alive() bool { return a.Health > 0 }

// Attacking reports whether a swing is in progress.
func (a *Actor) Attacking() bool { return a.Attack != AttackNone }

// HalfExtents returns the collision half size.
func (a *Actor) HalfExtents() core.Vec2 { return core.V(a.HalfW, a.HalfH) }

// Reach is the horizontal distance at which a and o can hit each other.
func (a *Actor) Reach(o *Actor) float64 { return a.HalfW + o.HalfW }

func (a *Actor) beginAttack(state AttackState, duration float64) {
	a.Attack = state
	a.AttackTimer = duration
	a.AttackHitApplied = false
}

func (a *Actor) endAttack() {
	a.Attack = AttackNone
	a.AttackTimer = 0
	a.AttackHitApplied = false
}

// tickAttack counts the swing down. Bots get a cooldown when a swing ends.
func (a *Actor) tickAttack(dt float64) {
	if a.AttackCooldown > 0 {
		a.AttackCooldown = max(0, a.AttackCooldown-dt)
	}
	if a.Attack == AttackNone {
		return
	}
	a.AttackTimer -= dt
	if a.AttackTimer <= 0 {
		a.endAttack()
		if a.Kind == KindBot {
			a.AttackCooldown = BotAttackCooldown
		}
	}
}

// takeDamage lowers health, clamped at zero. Returns true on the killing blow.
func (a *Actor) takeDamage(n int) bool {
	if !a.Alive() {
		return false
	}
	a.Health = max(0, a.Health-float64(n))
	if a.Alive() {
		return false
	}
	a.endAttack()
	a.fire(EventKilled)
	return true
}

// fire applies a behavior event and keeps the aggro flag in step with it.
func (a *Actor) fire(e Event) {
	a.Behavior = Transition(a.Behavior, e)
	if a.Kind == KindBot && a.Behavior != BehaviorDead {
		a.Aggro = a.Behavior.Aggressive()
	}
}

// facingToward returns the facing that points along dx; zero counts as +1.
func facingToward(dx float64) int {
	if f := core.Sign(dx); f != 0 {
		return f
	}
	return 1
}
