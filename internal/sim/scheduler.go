package sim

import "math"

// Scheduler turns variable frame deltas into a whole number of fixed steps.
type Scheduler struct {
	Fixed    float64
	MaxSteps int
	acc      float64
}

// NewScheduler returns a scheduler at FixedDt capped at MaxStepsPerFrame.
func NewScheduler() *Scheduler {
	return &Scheduler{Fixed: FixedDt, MaxSteps: MaxStepsPerFrame}
}

// Advance adds dt to the budget and calls step once per whole fixed step, up
// to MaxSteps. The remainder below one step carries over; budget beyond the
// cap is dropped.
func (s *Scheduler) Advance(dt float64, step func(float64)) int {
	if dt > 0 {
		s.acc += dt
	}
	n := 0
	for s.acc >= s.Fixed && n < s.MaxSteps {
		step(s.Fixed)
		s.acc -= s.Fixed
		n++
	}
	if s.acc >= s.Fixed {
		s.acc = math.Mod(s.acc, s.Fixed)
	}
	return n
}

// Pending returns the carried budget.
func (s *Scheduler) Pending() float64 { return s.acc }
