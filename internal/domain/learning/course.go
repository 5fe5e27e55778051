package learning

// Course is an immutable catalog entry.
type Course struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Difficulty     Difficulty `json:"difficulty"`
	Topics         []string   `json:"topics"`
	EstimatedHours float64    `json:"estimated_hours"`
	Prerequisites  []string   `json:"prerequisites"`
	Skills         []string   `json:"skills"`
	// CompletionRate is the historical fraction of enrollees who finished, 0..1.
	CompletionRate float64 `json:"completion_rate"`
	// AverageRating is 0..5.
	AverageRating float64 `json:"average_rating"`
}

// PeerOutcome is how one similar learner fared in a course.
type PeerOutcome struct {
	UserID   string  `json:"user_id"`
	Progress float64 `json:"progress"`
	Rating   float64 `json:"rating"`
}

// CompletionDays converts the course's hours into whole calendar days for a learner
// with the given pace and weekly time commitment. Always at least one day.
func (c Course) CompletionDays(pace LearningPace, hoursPerWeek float64) int {
	if hoursPerWeek <= 0 {
		hoursPerWeek = DefaultTimeCommitment
	}
	hours := c.EstimatedHours
	if hours <= 0 {
		hours = 1
	}
	days := ceilInt(hours * pace.CompletionMultiplier() / hoursPerWeek * 7)
	if days < 1 {
		return 1
	}
	return days
}
