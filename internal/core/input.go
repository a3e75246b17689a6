package core

// Action represents a semantic control action, abstracted from physical key presses.
// This allows the simulation to work with intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - walk left
	ActionRight          // D, Right arrow - walk right
	ActionSprint         // Shift modifier - run while held
	ActionAttack         // Space - melee swing
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - new session after death
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSprint:
		return "Sprint"
	case ActionAttack:
		return "Attack"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Input is the control snapshot polled once per frame.
type Input struct {
	Left   bool
	Right  bool
	Sprint bool
	Attack bool
	Facing int // -1 or +1, last pressed direction
}

// HasDirection reports whether any horizontal direction is held.
func (in Input) HasDirection() bool {
	return in.Left || in.Right
}

// InputManager tracks held control keys for the controllable actor.
// Only Left, Right, Sprint and Attack are tracked; other actions are
// platform-level and handled by the caller.
type InputManager struct {
	state    Input
	disabled bool
}

// NewInputManager creates an enabled manager facing right.
func NewInputManager() *InputManager {
	return &InputManager{state: Input{Facing: 1}}
}

// Press marks an action as held. Pressing a direction also turns the facing.
// Ignored while disabled.
func (m *InputManager) Press(a Action) {
	if m.disabled {
		return
	}
	switch a {
	case ActionLeft:
		m.state.Left = true
		m.state.Facing = -1
	case ActionRight:
		m.state.Right = true
		m.state.Facing = 1
	case ActionSprint:
		m.state.Sprint = true
	case ActionAttack:
		m.state.Attack = true
	}
}

// Release marks an action as no longer held. Ignored while disabled.
func (m *InputManager) Release(a Action) {
	if m.disabled {
		return
	}
	switch a {
	case ActionLeft:
		m.state.Left = false
	case ActionRight:
		m.state.Right = false
	case ActionSprint:
		m.state.Sprint = false
	case ActionAttack:
		m.state.Attack = false
	}
}

// Blur drops every held key, e.g. when the terminal loses focus.
func (m *InputManager) Blur() {
	facing := m.state.Facing
	m.state = Input{Facing: facing}
}

// SetEnabled switches input processing on or off.
// Disabling also clears all held keys.
func (m *InputManager) SetEnabled(enabled bool) {
	m.disabled = !enabled
	if m.disabled {
		m.Blur()
	}
}

// Enabled reports whether presses are currently accepted.
func (m *InputManager) Enabled() bool {
	return !m.disabled
}

// Snapshot returns the current held state.
func (m *InputManager) Snapshot() Input {
	return m.state
}
