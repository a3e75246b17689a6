package sim

// Mode is the presentation state of an actor.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeWalk
	ModeRun
	ModeIdleAttack
	ModeMoveAttack
	ModeDead
)

var modeNames = [...]string{"idle", "walk", "run", "idle-attack", "move-attack", "dead"}

// String returns the frame-set key of the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Modes lists every mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeIdle, ModeWalk, ModeRun, ModeIdleAttack, ModeMoveAttack, ModeDead}
}

// ParseMode maps a frame-set key back to its mode.
func ParseMode(name string) (Mode, bool) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return ModeIdle, false
}

// SelectMode picks the presentation mode from actor state and motion.
func SelectMode(a *Actor, m Motion) Mode {
	if !a.Alive() {
		return ModeDead
	}
	switch a.Attack {
	case AttackIdle:
		return ModeIdleAttack
	case AttackMove:
		return ModeMoveAttack
	}
	if m.Directional && m.Speed > MovingThreshold {
		if m.Fast {
			return ModeRun
		}
		return ModeWalk
	}
	return ModeIdle
}

// FrameSource reports how many frames a mode's animation has.
type FrameSource interface {
	FrameCount(k Kind, m Mode) int
}

// Animator is a per-actor frame cursor at AnimationFPS.
type Animator struct {
	mode  Mode
	frame int
	timer float64
}

// Mode returns the mode of the last update.
func (an *Animator) Mode() Mode { return an.mode }

// Frame returns the current frame index.
func (an *Animator) Frame() int { return an.frame }

// Update advances the cursor. A mode change restarts from frame 0; Dead
// stops on its last frame, every other mode loops.
func (an *Animator) Update(dt float64, mode Mode, frames int) int {
	if mode != an.mode {
		an.mode = mode
		an.frame = 0
		an.timer = 0
		return 0
	}
	if frames <= 0 {
		an.frame = 0
		return 0
	}
	an.timer += dt
	for an.timer >= 1.0/AnimationFPS {
		an.timer -= 1.0 / AnimationFPS
		if mode == ModeDead {
			an.frame = min(an.frame+1, frames-1)
		} else {
			an.frame = (an.frame + 1) % frames
		}
	}
	if an.frame >= frames {
		an.frame = frames - 1
	}
	return an.frame
}
