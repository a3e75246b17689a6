package sim

// Behavior is the consolidated control state of an actor.
// Bots move through Wander, Approach, Engage and Dead; the player is Active
// until it dies.
type Behavior uint8

const (
	BehaviorActive Behavior = iota
	BehaviorWander
	BehaviorApproach
	BehaviorEngage
	BehaviorDead
)

func (b Behavior) String() string {
	switch b {
	case BehaviorActive:
		return "active"
	case BehaviorWander:
		return "wander"
	case BehaviorApproach:
		return "approach"
	case BehaviorEngage:
		return "engage"
	case BehaviorDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Event drives Behavior transitions.
type Event uint8

const (
	EventDamaged    Event = iota // hit by the player
	EventInReach                 // target within melee reach
	EventOutOfReach              // target moved away
	EventTargetLost              // player died while aggroed
	EventKilled
)

var transitions = map[Behavior]map[Event]Behavior{
	BehaviorActive: {
		EventKilled: BehaviorDead,
	},
	BehaviorWander: {
		EventDamaged: BehaviorApproach,
		EventKilled:  BehaviorDead,
	},
	BehaviorApproach: {
		EventInReach:    BehaviorEngage,
		EventTargetLost: BehaviorWander,
		EventKilled:     BehaviorDead,
	},
	BehaviorEngage: {
		EventOutOfReach: BehaviorApproach,
		EventTargetLost: BehaviorWander,
		EventKilled:     BehaviorDead,
	},
	BehaviorDead: {},
}

// Transition returns the state reached from b on e.
// Events with no entry leave the state unchanged.
func Transition(b Behavior, e Event) Behavior {
	if next, ok := transitions[b][e]; ok {
		return next
	}
	return b
}

// Aggressive reports whether the state chases the player.
func (b Behavior) Aggressive() bool {
	return b == BehaviorApproach || b == BehaviorEngage
}
