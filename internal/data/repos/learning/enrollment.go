package learning

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

// CoEnrollment is another learner ranked by how many courses they share with the subject.
type CoEnrollment struct {
	UserID  string `gorm:"column:user_id"`
	Overlap int    `gorm:"column:overlap"`
}

type EnrollmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.CourseEnrollment) ([]*types.CourseEnrollment, error)
	CompletedCourseIDs(ctx context.Context, tx *gorm.DB, userID string) ([]string, error)
	ListByCourseAndUsers(ctx context.Context, tx *gorm.DB, courseID string, userIDs []string) ([]*types.CourseEnrollment, error)
	CoEnrolledUsers(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]CoEnrollment, error)
	ListAfter(ctx context.Context, tx *gorm.DB, afterID int64, limit int) ([]*types.CourseEnrollment, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	repoLog := baseLog.With("repo", "EnrollmentRepo")
	return &enrollmentRepo{db: db, log: repoLog}
}

func (r *enrollmentRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.CourseEnrollment) ([]*types.CourseEnrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.CourseEnrollment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *enrollmentRepo) CompletedCourseIDs(ctx context.Context, tx *gorm.DB, userID string) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []string
	if err := transaction.WithContext(ctx).
		Model(&types.CourseEnrollment{}).
		Where("user_id = ? AND progress >= ?", userID, types.CompletedProgress).
		Distinct("course_id").
		Order("course_id ASC").
		Pluck("course_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *enrollmentRepo) ListByCourseAndUsers(ctx context.Context, tx *gorm.DB, courseID string, userIDs []string) ([]*types.CourseEnrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CourseEnrollment
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("course_id = ? AND user_id IN ?", courseID, userIDs).
		Order("user_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// CoEnrolledUsers ranks other learners by shared enrollments, most shared first.
func (r *enrollmentRepo) CoEnrolledUsers(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]CoEnrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []CoEnrollment
	if limit <= 0 {
		return results, nil
	}

	mine := transaction.
		Model(&types.CourseEnrollment{}).
		Select("course_id").
		Where("user_id = ?", userID)

	if err := transaction.WithContext(ctx).
		Model(&types.CourseEnrollment{}).
		Select("user_id, COUNT(DISTINCT course_id) AS overlap").
		Where("course_id IN (?) AND user_id <> ?", mine, userID).
		Group("user_id").
		Order("overlap DESC, user_id ASC").
		Limit(limit).
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListAfter pages through all enrollments by id.
func (r *enrollmentRepo) ListAfter(ctx context.Context, tx *gorm.DB, afterID int64, limit int) ([]*types.CourseEnrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CourseEnrollment
	if limit <= 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
