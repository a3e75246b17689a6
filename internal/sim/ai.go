package sim

import "math"

// think runs the bot policy for one frame and steers the bot.
func (s *Simulation) think(b *Actor, dt float64) {
	b.tickAttack(dt)
	if !b.Alive() {
		s.locomote(b, 0, false, BotProfile, dt)
		return
	}

	player := s.player
	var intent ControlIntent

	switch {
	case b.Aggro && player.Alive():
		intent = s.engage(b, player)
	case b.Aggro:
		s.loseTarget(b)
		intent = s.wander(b, dt)
	default:
		intent = s.wander(b, dt)
	}

	desired := s.avoidWalls(b, BotProfile.DesiredVelocity(intent))
	s.locomote(b, desired, intent.Run, BotProfile, dt)
}

// engage faces the player, chases out of reach and swings in reach.
func (s *Simulation) engage(b, player *Actor) ControlIntent {
	bp := s.physics.Position(b.Body)
	pp := s.physics.Position(player.Body)
	dx := pp.X - bp.X
	b.Facing = facingToward(dx)

	if math.Abs(dx) > b.Reach(player) {
		b.fire(EventOutOfReach)
		return intentToward(b.Facing, true)
	}

	b.fire(EventInReach)
	if !b.Attacking() && b.AttackCooldown <= 0 {
		state := AttackIdle
		if math.Abs(s.physics.Velocity(b.Body).X) > MovingThreshold {
			state = AttackMove
		}
		s.beginAttack(b, state)
	}
	return ControlIntent{}
}

// loseTarget drops aggro after the player died.
func (s *Simulation) loseTarget(b *Actor) {
	b.fire(EventTargetLost)
	b.Aggro = false
	b.endAttack()
	b.AttackCooldown = 0
	b.WanderTimer = 0
	s.logger.Info("target lost", "bot", b.ID)
}

// wander re-rolls the move/idle choice whenever the timer runs out.
func (s *Simulation) wander(b *Actor, dt float64) ControlIntent {
	b.WanderTimer -= dt
	if b.WanderTimer <= 0 {
		b.WanderTimer = WanderMinInterval + s.rng.Float64()*(WanderMaxInterval-WanderMinInterval)
		b.WanderMove = s.rng.Float64() < WanderMoveChance
		if b.WanderMove {
			b.Facing = 1
			if s.rng.Float64() < 0.5 {
				b.Facing = -1
			}
		}
	}
	if !b.WanderMove {
		return ControlIntent{}
	}
	return intentToward(b.Facing, false)
}

// avoidWalls turns a bot away from a wall it is about to touch and keeps it
// from pushing further in.
func (s *Simulation) avoidWalls(b *Actor, desired float64) float64 {
	x := s.physics.Position(b.Body).X
	switch {
	case x-b.HalfW <= s.bounds.LeftInner+WallAvoidMargin:
		b.Facing = 1
		return max(desired, 0)
	case x+b.HalfW >= s.bounds.RightInner-WallAvoidMargin:
		b.Facing = -1
		return min(desired, 0)
	}
	return desired
}
