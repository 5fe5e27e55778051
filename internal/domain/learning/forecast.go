package learning

import "time"

// ProgressPoint is one historical skill-level sample.
type ProgressPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	SkillLevel float64   `json:"skill_level"`
}

type RateSource string

const (
	RateFromHistory RateSource = "history"
	RateDefault     RateSource = "default"
)

type ForecastMilestone struct {
	Week  int     `json:"week"`
	Level float64 `json:"level"`
	Label string  `json:"label"`
}

type ConfidenceInterval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type ProgressForecast struct {
	CurrentLevel       float64             `json:"current_level"`
	TargetLevel        float64             `json:"target_level"`
	EstimatedWeeks     int                 `json:"estimated_weeks"`
	LearningRate       float64             `json:"learning_rate"`
	RateSource         RateSource          `json:"rate_source"`
	Milestones         []ForecastMilestone `json:"milestones"`
	ConfidenceInterval ConfidenceInterval  `json:"confidence_interval"`
}

// AchievementLabel names the proficiency band a skill level falls into.
func AchievementLabel(level float64) string {
	switch {
	case level >= 90:
		return "AI Expert — Master Level"
	case level >= 75:
		return "Advanced Practitioner"
	case level >= 60:
		return "Intermediate Specialist"
	case level >= 40:
		return "Competent User"
	default:
		return "Foundational Knowledge"
	}
}
