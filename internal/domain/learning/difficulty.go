package learning

import "strings"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

// SkillBand is an inclusive skill-level range.
type SkillBand struct {
	Min float64
	Max float64
}

func (b SkillBand) Contains(level float64) bool {
	return level >= b.Min && level <= b.Max
}

// Distance is how far level lies outside the band; 0 inside it.
func (b SkillBand) Distance(level float64) float64 {
	switch {
	case level < b.Min:
		return b.Min - level
	case level > b.Max:
		return level - b.Max
	default:
		return 0
	}
}

func ParseDifficulty(raw string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(raw))) {
	case DifficultyBeginner:
		return DifficultyBeginner
	case DifficultyAdvanced:
		return DifficultyAdvanced
	case DifficultyExpert:
		return DifficultyExpert
	default:
		return DifficultyIntermediate
	}
}

// Band returns the skill range a course of this difficulty targets. Unknown
// difficulties use the intermediate band.
func (d Difficulty) Band() SkillBand {
	switch ParseDifficulty(string(d)) {
	case DifficultyBeginner:
		return SkillBand{Min: 0, Max: 30}
	case DifficultyAdvanced:
		return SkillBand{Min: 50, Max: 85}
	case DifficultyExpert:
		return SkillBand{Min: 75, Max: 100}
	default:
		return SkillBand{Min: 25, Max: 60}
	}
}
