package learning

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

type JobListingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.JobListingRecord) ([]*types.JobListingRecord, error)
	List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.JobListingRecord, error)
}

type jobListingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobListingRepo(db *gorm.DB, baseLog *logger.Logger) JobListingRepo {
	repoLog := baseLog.With("repo", "JobListingRepo")
	return &jobListingRepo{db: db, log: repoLog}
}

func (r *jobListingRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.JobListingRecord) ([]*types.JobListingRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.JobListingRecord{}, nil
	}

	// Select("*") so an explicit IsActive=false is written instead of the column default
	if err := transaction.WithContext(ctx).Select("*").Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *jobListingRepo) List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.JobListingRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var results []*types.JobListingRecord
	if err := q.Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
