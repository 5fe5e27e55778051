package learning

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

type SkillProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillProgress) ([]*types.SkillProgress, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*types.SkillProgress, error)
}

type skillProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillProgressRepo(db *gorm.DB, baseLog *logger.Logger) SkillProgressRepo {
	repoLog := baseLog.With("repo", "SkillProgressRepo")
	return &skillProgressRepo{db: db, log: repoLog}
}

func (r *skillProgressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.SkillProgress) ([]*types.SkillProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.SkillProgress{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *skillProgressRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*types.SkillProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SkillProgress
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
