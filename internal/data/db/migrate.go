package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
)

// AutoMigrateAll creates the read-model tables. Production schemas are owned by the
// learning platform; this exists for local sqlite runs and tests.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// =========================
		// Learners
		// =========================
		&learning.UserProfileRecord{},
		&learning.UserSkill{},
		&learning.AssessmentResult{},
		&learning.SkillProgress{},

		// =========================
		// Catalog
		// =========================
		&learning.CourseRecord{},
		&learning.CourseEnrollment{},
		&learning.JobListingRecord{},
	)
}
