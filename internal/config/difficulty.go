package config

// DifficultyPreset represents a named difficulty level.
// Presets only choose how many bots enter the arena.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Valid reports whether the preset is known.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	}
	return false
}

// PopulationForPreset returns the bot count for a difficulty preset.
// Normal leaves the choice to the seed.
func PopulationForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return 10
	default:
		return 0
	}
}
