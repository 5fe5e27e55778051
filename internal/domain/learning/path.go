package learning

import "time"

// LearningPath is an ordered, budget-bounded course sequence toward a target level.
type LearningPath struct {
	ID                     string      `json:"id"`
	Name                   string      `json:"name"`
	Courses                []string    `json:"courses"`
	EstimatedDurationWeeks int         `json:"estimated_duration_weeks"`
	TargetSkillLevel       float64     `json:"target_skill_level"`
	ProjectedSkillLevel    float64     `json:"projected_skill_level"`
	Milestones             []Milestone `json:"milestones"`
	// Unschedulable holds selected courses dropped because their prerequisites form a cycle.
	Unschedulable []string `json:"unschedulable,omitempty"`
}

type Milestone struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CourseID       string    `json:"course_id"`
	Week           int       `json:"week"`
	TargetDate     time.Time `json:"target_date"`
	SkillsAcquired []string  `json:"skills_acquired"`
}
