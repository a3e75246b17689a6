package sim

// World layout.
const (
	WorldSize       = 60.0
	WallThickness   = 1.0
	GroundThickness = 1.0
)

// Frame pacing.
const (
	FixedDt          = 1.0 / 120
	MaxStepsPerFrame = 10
	MaxFrameDt       = 1.0 / 30
)

// Actor shape and pools.
const (
	ActorHalfWidth  = 1.0
	ActorHalfHeight = 1.0
	MaxHealth       = 100.0
	MaxStamina      = 100.0
)

// Locomotion.
const (
	GroundEpsilon   = 0.05
	GroundedMaxVY   = 1.0
	MovingThreshold = 0.2

	WalkSpeed      = 2.5
	PlayerRunSpeed = 5.0
	BotRunSpeed    = 4.2
)

// Sprint economy.
const (
	SprintDrainBase   = 0.5
	SprintDrainGrowth = 0.5
	SprintLockout     = 5.0
	RegenMoving       = 1.0
	RegenIdle         = 5.0
)

// Combat.
const (
	AttackCostMoving      = 5.0
	AttackCostIdle        = 2.0
	DefaultAttackDuration = 0.5
	AnimationFPS          = 60
	BotAttackCooldown     = 0.5
	DamageMin             = 5
	DamageSpread          = 6

	IndicatorTTL    = 1.0
	IndicatorRise   = 1.5 // units per second
	IndicatorOffset = 0.5 // above the victim's head
)

// Autonomous behavior.
const (
	WanderMinInterval = 1.0
	WanderMaxInterval = 3.0
	WanderMoveChance  = 0.6
	WallAvoidMargin   = 0.5
)

// Population.
const (
	MinPopulation  = 5
	MaxPopulation  = 10
	SpawnClearance = 4.0
)
