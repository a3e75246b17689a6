package core

// RuntimeConfig contains configuration passed to a session at start.
// The presentation adapts to the screen size; the seed drives every random
// decision of the simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the platform (default 60)
	Seed     int64 // RNG seed for deterministic sessions
	Bots     int   // Autonomous actor population, 0 = pick 5..10 from the seed
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Bots:     0,
	}
}

// SessionState summarizes a running session for the platform layer.
type SessionState struct {
	Score       int     // damage dealt plus kill bonus
	Kills       int     // autonomous actors defeated
	Bots        int     // autonomous actors spawned
	DamageDealt int     // by the controllable actor
	DamageTaken int     // by the controllable actor
	Elapsed     float64 // seconds survived
	PlayerDead  bool    // controllable actor reached zero health
	Cleared     bool    // every autonomous actor is dead
}

// Over reports whether the session reached a terminal outcome.
func (s SessionState) Over() bool {
	return s.PlayerDead || s.Cleared
}

// Outcome names the terminal outcome, or "quit" for an unfinished session.
func (s SessionState) Outcome() string {
	switch {
	case s.PlayerDead:
		return "dead"
	case s.Cleared:
		return "cleared"
	default:
		return "quit"
	}
}
