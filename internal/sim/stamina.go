package sim

import "math"

// Economy is the stamina pool and sprint lockout of the controllable actor.
type Economy struct {
	Stamina       float64
	SprintLockout float64
	RunDuration   float64
}

// Update advances the economy by dt and reports whether the actor ran.
// Lockout decays first, so a lockout ending this frame allows running.
func (e *Economy) Update(dt float64, moving, sprint bool) bool {
	e.SprintLockout = max(0, e.SprintLockout-dt)

	if moving && sprint && e.SprintLockout <= 0 && e.Stamina > 0 {
		e.RunDuration += dt
		drain := SprintDrainBase * math.Exp(SprintDrainGrowth*e.RunDuration)
		e.Stamina -= drain * dt
		if e.Stamina <= 0 {
			e.Stamina = 0
			e.SprintLockout = SprintLockout
			e.RunDuration = 0
		}
		return true
	}

	e.RunDuration = 0
	regen := RegenIdle
	if moving {
		regen = RegenMoving
	}
	e.Stamina = min(MaxStamina, e.Stamina+regen*dt)
	return false
}

// IsSprinting reports effective sprinting for a sprint request.
func (e *Economy) IsSprinting(sprint bool) bool {
	return sprint && e.Stamina > 0 && e.SprintLockout <= 0
}

// Locked reports whether sprinting is locked out after exhaustion.
func (e *Economy) Locked() bool { return e.SprintLockout > 0 }

// Spend takes cost from the pool. Insufficient stamina spends nothing.
func (e *Economy) Spend(cost float64) bool {
	if e.Stamina < cost {
		return false
	}
	e.Stamina -= cost
	return true
}
