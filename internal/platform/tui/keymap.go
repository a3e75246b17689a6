package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-brawl/internal/core"
)

// Terminals report presses and auto-repeats but never releases, so a held
// key is assumed released once its repeats stop arriving.
const (
	HoldInitial = 550 * time.Millisecond // covers the OS delay before auto-repeat starts
	HoldRepeat  = 150 * time.Millisecond // gap tolerated between repeats
)

// GameKeyMap defines the key bindings used during a session.
type GameKeyMap struct {
	Left        key.Binding
	Right       key.Binding
	SprintLeft  key.Binding
	SprintRight key.Binding
	Attack      key.Binding
	Pause       key.Binding
	Restart     key.Binding
	Back        key.Binding
	Quit        key.Binding
	Screenshot  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.SprintRight, k.Attack, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SprintLeft, k.SprintRight, k.Attack},
		{k.Pause, k.Restart, k.Back, k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "walk left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "walk right"),
		),
		SprintLeft: key.NewBinding(
			key.WithKeys("shift+left", "A"),
			key.WithHelp("S-←/A", "run left"),
		),
		SprintRight: key.NewBinding(
			key.WithKeys("shift+right", "D"),
			key.WithHelp("S-→/D", "run right"),
		),
		Attack: key.NewBinding(
			key.WithKeys(" ", "j"),
			key.WithHelp("space/j", "attack"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "screenshot"),
		),
	}
}

// MapKey translates a key message to a semantic action.
// Sprinting directions report the direction; use Sprinting to tell them apart.
func (k GameKeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.SprintLeft), key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.SprintRight), key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Attack):
		return core.ActionAttack
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// Sprinting reports whether msg is a running direction.
func (k GameKeyMap) Sprinting(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.SprintLeft) || key.Matches(msg, k.SprintRight)
}

// HeldKeys feeds key presses into an InputManager and releases them when
// their auto-repeats stop.
type HeldKeys struct {
	input    *core.InputManager
	deadline map[core.Action]time.Time
}

// NewHeldKeys creates a tracker driving in.
func NewHeldKeys(in *core.InputManager) *HeldKeys {
	return &HeldKeys{input: in, deadline: make(map[core.Action]time.Time)}
}

// Press records a press (or repeat) of a control action at now.
// An attack press lasts until the next Expire so every repeat is a new swing.
func (h *HeldKeys) Press(a core.Action, sprint bool, now time.Time) {
	switch a {
	case core.ActionLeft:
		h.release(core.ActionRight)
	case core.ActionRight:
		h.release(core.ActionLeft)
	case core.ActionAttack:
		h.deadline[a] = now
		h.input.Press(a)
		return
	default:
		return
	}

	if sprint {
		h.hold(core.ActionSprint, now)
	} else {
		h.release(core.ActionSprint)
	}
	h.hold(a, now)
}

func (h *HeldKeys) hold(a core.Action, now time.Time) {
	window := HoldInitial
	if _, held := h.deadline[a]; held {
		window = HoldRepeat
	}
	h.deadline[a] = now.Add(window)
	h.input.Press(a)
}

func (h *HeldKeys) release(a core.Action) {
	if _, held := h.deadline[a]; !held {
		return
	}
	delete(h.deadline, a)
	h.input.Release(a)
}

// Expire releases every action whose repeats stopped before now.
func (h *HeldKeys) Expire(now time.Time) {
	for a, d := range h.deadline {
		if now.After(d) {
			h.release(a)
		}
	}
}

// Clear forgets every held action, e.g. on focus loss.
func (h *HeldKeys) Clear() {
	clear(h.deadline)
	h.input.Blur()
}

// Held reports whether a is currently considered held.
func (h *HeldKeys) Held(a core.Action) bool {
	_, ok := h.deadline[a]
	return ok
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
