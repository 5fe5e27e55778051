package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/neurobridge-recommender/internal/data/repos/learning"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

type UserProfileRepo = learning.UserProfileRepo
type UserSkillRepo = learning.UserSkillRepo
type AssessmentRepo = learning.AssessmentRepo
type SkillProgressRepo = learning.SkillProgressRepo

type CourseRepo = learning.CourseRepo
type EnrollmentRepo = learning.EnrollmentRepo
type JobListingRepo = learning.JobListingRepo

type CoEnrollment = learning.CoEnrollment

func NewUserProfileRepo(db *gorm.DB, baseLog *logger.Logger) UserProfileRepo {
	return learning.NewUserProfileRepo(db, baseLog)
}

func NewUserSkillRepo(db *gorm.DB, baseLog *logger.Logger) UserSkillRepo {
	return learning.NewUserSkillRepo(db, baseLog)
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return learning.NewAssessmentRepo(db, baseLog)
}

func NewSkillProgressRepo(db *gorm.DB, baseLog *logger.Logger) SkillProgressRepo {
	return learning.NewSkillProgressRepo(db, baseLog)
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return learning.NewCourseRepo(db, baseLog)
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return learning.NewEnrollmentRepo(db, baseLog)
}

func NewJobListingRepo(db *gorm.DB, baseLog *logger.Logger) JobListingRepo {
	return learning.NewJobListingRepo(db, baseLog)
}

// Set bundles every read repository the gateways need.
type Set struct {
	Profiles    UserProfileRepo
	Skills      UserSkillRepo
	Assessments AssessmentRepo
	Progress    SkillProgressRepo
	Courses     CourseRepo
	Enrollments EnrollmentRepo
	Jobs        JobListingRepo
}

func NewSet(db *gorm.DB, baseLog *logger.Logger) Set {
	return Set{
		Profiles:    NewUserProfileRepo(db, baseLog),
		Skills:      NewUserSkillRepo(db, baseLog),
		Assessments: NewAssessmentRepo(db, baseLog),
		Progress:    NewSkillProgressRepo(db, baseLog),
		Courses:     NewCourseRepo(db, baseLog),
		Enrollments: NewEnrollmentRepo(db, baseLog),
		Jobs:        NewJobListingRepo(db, baseLog),
	}
}
