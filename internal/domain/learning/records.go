package learning

import (
	"time"

	"gorm.io/datatypes"
)

// Read models for the tables the learning platform already writes. The engine only
// reads them; column names follow the platform's schema.

type UserProfileRecord struct {
	ID              string                      `gorm:"column:id;primaryKey" json:"id"`
	SkillLevel      *float64                    `gorm:"column:skill_level" json:"skill_level"`
	LearningGoals   datatypes.JSONSlice[string] `gorm:"column:learning_goals" json:"learning_goals"`
	LearningPace    string                      `gorm:"column:learning_pace" json:"learning_pace"`
	PreferredTopics datatypes.JSONSlice[string] `gorm:"column:preferred_topics" json:"preferred_topics"`
	TimeCommitment  *float64                    `gorm:"column:time_commitment" json:"time_commitment"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

func (UserProfileRecord) TableName() string { return "user_profiles" }

// ToDomain maps the stored row; NULL columns fall back to the profile defaults.
func (r *UserProfileRecord) ToDomain() *UserProfile {
	if r == nil {
		return nil
	}
	p := &UserProfile{
		ID:                r.ID,
		CurrentSkillLevel: DefaultSkillLevel,
		LearningGoals:     []string(r.LearningGoals),
		LearningPace:      ParsePace(r.LearningPace),
		PreferredTopics:   []string(r.PreferredTopics),
		TimeCommitment:    DefaultTimeCommitment,
	}
	if r.SkillLevel != nil {
		p.CurrentSkillLevel = *r.SkillLevel
	}
	if r.TimeCommitment != nil && *r.TimeCommitment > 0 {
		p.TimeCommitment = *r.TimeCommitment
	}
	return p
}

type CourseRecord struct {
	ID              string                      `gorm:"column:id;primaryKey" json:"id"`
	Title           string                      `gorm:"column:title;not null" json:"title"`
	DifficultyLevel string                      `gorm:"column:difficulty_level" json:"difficulty_level"`
	Topics          datatypes.JSONSlice[string] `gorm:"column:topics" json:"topics"`
	EstimatedHours  float64                     `gorm:"column:estimated_hours" json:"estimated_hours"`
	Prerequisites   datatypes.JSONSlice[string] `gorm:"column:prerequisites" json:"prerequisites"`
	Skills          datatypes.JSONSlice[string] `gorm:"column:skills" json:"skills"`
	CompletionRate  float64                     `gorm:"column:completion_rate" json:"completion_rate"`
	AverageRating   float64                     `gorm:"column:average_rating" json:"average_rating"`
	CreatedAt       time.Time                   `json:"created_at"`
}

func (CourseRecord) TableName() string { return "courses" }

func (r CourseRecord) ToDomain() Course {
	return Course{
		ID:             r.ID,
		Title:          r.Title,
		Difficulty:     ParseDifficulty(r.DifficultyLevel),
		Topics:         Dedupe(r.Topics),
		EstimatedHours: r.EstimatedHours,
		Prerequisites:  dedupeIDs(r.Prerequisites),
		Skills:         Dedupe(r.Skills),
		CompletionRate: Clamp(r.CompletionRate, 0, 1),
		AverageRating:  Clamp(r.AverageRating, 0, 5),
	}
}

// CourseEnrollment doubles as the source of completed courses (progress 100) and
// of peer outcomes (progress, rating).
type CourseEnrollment struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"column:user_id;not null;index:idx_enrollment_user_course,priority:1" json:"user_id"`
	CourseID  string    `gorm:"column:course_id;not null;index:idx_enrollment_user_course,priority:2;index" json:"course_id"`
	Progress  float64   `gorm:"column:progress;not null;default:0" json:"progress"`
	Rating    *float64  `gorm:"column:rating" json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (CourseEnrollment) TableName() string { return "course_enrollments" }

const CompletedProgress = 100.0

func (e CourseEnrollment) Completed() bool { return e.Progress >= CompletedProgress }

type AssessmentResult struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"column:user_id;not null;index" json:"user_id"`
	Category  string    `gorm:"column:category;not null" json:"category"`
	Score     float64   `gorm:"column:score;not null" json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

func (AssessmentResult) TableName() string { return "ai_assessment_results" }

type JobListingRecord struct {
	ID             string                      `gorm:"column:id;primaryKey" json:"id"`
	Title          string                      `gorm:"column:title;not null" json:"title"`
	Company        string                      `gorm:"column:company" json:"company"`
	RequiredSkills datatypes.JSONSlice[string] `gorm:"column:required_skills" json:"required_skills"`
	IsActive       bool                        `gorm:"column:is_active;not null;default:true;index" json:"is_active"`
	CreatedAt      time.Time                   `json:"created_at"`
}

func (JobListingRecord) TableName() string { return "job_listings" }

func (r JobListingRecord) ToDomain() JobListing {
	return JobListing{
		ID:             r.ID,
		Title:          r.Title,
		Company:        r.Company,
		RequiredSkills: Dedupe(r.RequiredSkills),
		Active:         r.IsActive,
	}
}

type UserSkill struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"column:user_id;not null;index" json:"user_id"`
	SkillName string    `gorm:"column:skill_name;not null" json:"skill_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserSkill) TableName() string { return "user_skills" }

type SkillProgress struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"column:user_id;not null;index:idx_skill_progress_user_time,priority:1" json:"user_id"`
	SkillLevel float64   `gorm:"column:skill_level;not null" json:"skill_level"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null;index:idx_skill_progress_user_time,priority:2" json:"recorded_at"`
}

func (SkillProgress) TableName() string { return "skill_progress" }

func (r SkillProgress) ToDomain() ProgressPoint {
	return ProgressPoint{Timestamp: r.RecordedAt.UTC(), SkillLevel: Clamp(r.SkillLevel, 0, 100)}
}
