package learning

import "strings"

// LearningPace is the learner's self-declared study speed.
type LearningPace string

const (
	PaceSlow     LearningPace = "slow"
	PaceModerate LearningPace = "moderate"
	PaceFast     LearningPace = "fast"
)

// ParsePace normalizes a stored pace; anything unrecognized is moderate.
func ParsePace(raw string) LearningPace {
	switch LearningPace(strings.ToLower(strings.TrimSpace(raw))) {
	case PaceSlow:
		return PaceSlow
	case PaceFast:
		return PaceFast
	default:
		return PaceModerate
	}
}

// CompletionMultiplier scales course hours into calendar time.
func (p LearningPace) CompletionMultiplier() float64 {
	switch ParsePace(string(p)) {
	case PaceSlow:
		return 1.5
	case PaceFast:
		return 0.7
	default:
		return 1.0
	}
}

// ForecastMultiplier scales projected weeks to a target skill level.
func (p LearningPace) ForecastMultiplier() float64 {
	switch ParsePace(string(p)) {
	case PaceSlow:
		return 1.3
	case PaceFast:
		return 0.8
	default:
		return 1.0
	}
}

// WeeksPerSkill is the time needed to pick up one missing job skill.
func (p LearningPace) WeeksPerSkill() int {
	switch ParsePace(string(p)) {
	case PaceSlow:
		return 4
	case PaceFast:
		return 2
	default:
		return 3
	}
}
