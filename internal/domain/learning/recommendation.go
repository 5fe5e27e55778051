package learning

// Recommendation is one scored, not-yet-completed course.
type Recommendation struct {
	CourseID string   `json:"course_id"`
	Title    string   `json:"title"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons"`
	// EstimatedCompletionDays is calendar days at the learner's pace and commitment.
	EstimatedCompletionDays int `json:"estimated_completion_days"`
	// SkillGapFilled lists skills the course teaches that the learner lacks.
	SkillGapFilled []string           `json:"skill_gap_filled"`
	Confidence     float64            `json:"confidence"`
	Signals        map[string]float64 `json:"signals,omitempty"`
	Prerequisites  []string           `json:"prerequisites,omitempty"`
}
