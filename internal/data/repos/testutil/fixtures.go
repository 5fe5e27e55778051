package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/neurobridge-recommender/internal/domain/learning"
)

func SeedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, id string, level float64, pace string, topics ...string) *types.UserProfileRecord {
	tb.Helper()
	commitment := 10.0
	p := &types.UserProfileRecord{
		ID:              id,
		SkillLevel:      &level,
		LearningGoals:   datatypes.JSONSlice[string]{"career change"},
		LearningPace:    pace,
		PreferredTopics: datatypes.JSONSlice[string](topics),
		TimeCommitment:  &commitment,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, id, difficulty string, topics, skills, prereqs []string) *types.CourseRecord {
	tb.Helper()
	c := &types.CourseRecord{
		ID:              id,
		Title:           "Course " + id,
		DifficultyLevel: difficulty,
		Topics:          datatypes.JSONSlice[string](topics),
		EstimatedHours:  10,
		Prerequisites:   datatypes.JSONSlice[string](prereqs),
		Skills:          datatypes.JSONSlice[string](skills),
		CompletionRate:  0.8,
		AverageRating:   4.2,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, courseID string, progress float64, rating *float64) *types.CourseEnrollment {
	tb.Helper()
	e := &types.CourseEnrollment{
		UserID:   userID,
		CourseID: courseID,
		Progress: progress,
		Rating:   rating,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

func SeedAssessment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, category string, score float64) *types.AssessmentResult {
	tb.Helper()
	a := &types.AssessmentResult{UserID: userID, Category: category, Score: score}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed assessment: %v", err)
	}
	return a
}

func SeedJob(tb testing.TB, ctx context.Context, tx *gorm.DB, id string, active bool, skills ...string) *types.JobListingRecord {
	tb.Helper()
	j := &types.JobListingRecord{
		ID:             id,
		Title:          "Job " + id,
		Company:        "Acme",
		RequiredSkills: datatypes.JSONSlice[string](skills),
		IsActive:       active,
		CreatedAt:      time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Select("*").Create(j).Error; err != nil {
		tb.Fatalf("seed job: %v", err)
	}
	return j
}

func SeedSkill(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, name string) *types.UserSkill {
	tb.Helper()
	s := &types.UserSkill{UserID: userID, SkillName: name}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed skill: %v", err)
	}
	return s
}

func SeedProgress(tb testing.TB, ctx context.Context, tx *gorm.DB, userID string, at time.Time, level float64) *types.SkillProgress {
	tb.Helper()
	p := &types.SkillProgress{UserID: userID, SkillLevel: level, RecordedAt: at}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed progress: %v", err)
	}
	return p
}

func PtrFloat(v float64) *float64 { return &v }
