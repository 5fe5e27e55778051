package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

const (
	// DefaultRate is skill points per week assumed without usable history.
	DefaultRate = 5.0
	// ReferenceCommitment is the weekly hours the rate is normalized to.
	ReferenceCommitment = 10.0
	// DefaultVariability is the interval half-width when history is too short.
	DefaultVariability = 2.0
	// MaxWeeks caps the confidence interval.
	MaxWeeks = 52.0

	milestoneCount = 4
	week           = 7 * 24 * time.Hour
)

type Engine struct {
	log *logger.Logger
}

func New(baseLog *logger.Logger) *Engine {
	if baseLog == nil {
		baseLog = logger.NewNop()
	}
	return &Engine{log: baseLog.With("service", "ForecastEngine")}
}

// Forecast projects how many weeks the learner needs to move from their current level
// to target, given their recorded progress.
func (e *Engine) Forecast(profile learning.UserProfile, history []learning.ProgressPoint, target float64) learning.ProgressForecast {
	points := sortedCopy(history)
	current := profile.CurrentSkillLevel

	rate, source := learningRate(points)
	commitment := profile.TimeCommitment
	if commitment <= 0 {
		commitment = learning.DefaultTimeCommitment
	}
	base := math.Max(0, target-current) / rate
	adjusted := base * (ReferenceCommitment / commitment) * profile.LearningPace.ForecastMultiplier()
	est := learning.CeilInt(adjusted)
	if est < 0 {
		est = 0
	}

	v := variability(points)
	ci := learning.ConfidenceInterval{
		Min: learning.Round(learning.Clamp(float64(est)-v, 0, MaxWeeks), 1),
		Max: learning.Round(learning.Clamp(float64(est)+v, 0, MaxWeeks), 1),
	}

	if source == learning.RateDefault && len(points) >= 2 {
		e.log.Debug("history unusable for rate, using default",
			"user_id", profile.ID,
			"points", len(points),
		)
	}
	return learning.ProgressForecast{
		CurrentLevel:       current,
		TargetLevel:        target,
		EstimatedWeeks:     est,
		LearningRate:       learning.Round(rate, 2),
		RateSource:         source,
		Milestones:         milestones(current, target, est),
		ConfidenceInterval: ci,
	}
}

func sortedCopy(history []learning.ProgressPoint) []learning.ProgressPoint {
	out := append([]learning.ProgressPoint(nil), history...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// learningRate is points per week between the first and last samples. A zero span or a
// rate that is not positive falls back to DefaultRate.
func learningRate(points []learning.ProgressPoint) (float64, learning.RateSource) {
	if len(points) < 2 {
		return DefaultRate, learning.RateDefault
	}
	first, last := points[0], points[len(points)-1]
	r, ok := weeklyRate(first, last)
	if !ok || r <= 0 {
		return DefaultRate, learning.RateDefault
	}
	return r, learning.RateFromHistory
}

func weeklyRate(a, b learning.ProgressPoint) (float64, bool) {
	weeks := float64(b.Timestamp.Sub(a.Timestamp)) / float64(week)
	if weeks <= 0 {
		return 0, false
	}
	return (b.SkillLevel - a.SkillLevel) / weeks, true
}

// variability is the population standard deviation of the weekly rates between
// consecutive samples.
func variability(points []learning.ProgressPoint) float64 {
	if len(points) < 3 {
		return DefaultVariability
	}
	rates := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		if r, ok := weeklyRate(points[i-1], points[i]); ok {
			rates = append(rates, r)
		}
	}
	if len(rates) == 0 {
		return DefaultVariability
	}
	var mean float64
	for _, r := range rates {
		mean += r
	}
	mean /= float64(len(rates))
	var sq float64
	for _, r := range rates {
		sq += (r - mean) * (r - mean)
	}
	return math.Sqrt(sq / float64(len(rates)))
}

func milestones(current, target float64, est int) []learning.ForecastMilestone {
	out := make([]learning.ForecastMilestone, 0, milestoneCount)
	for i := 1; i <= milestoneCount; i++ {
		frac := float64(i) / milestoneCount
		level := learning.Round(current+(target-current)*frac, 2)
		out = append(out, learning.ForecastMilestone{
			Week:  learning.CeilInt(float64(est) * frac),
			Level: level,
			Label: learning.AchievementLabel(level),
		})
	}
	return out
}
