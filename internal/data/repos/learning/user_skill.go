package learning

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

type UserSkillRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.UserSkill) ([]*types.UserSkill, error)
	ListSkillNames(ctx context.Context, tx *gorm.DB, userID string) ([]string, error)
}

type userSkillRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserSkillRepo(db *gorm.DB, baseLog *logger.Logger) UserSkillRepo {
	repoLog := baseLog.With("repo", "UserSkillRepo")
	return &userSkillRepo{db: db, log: repoLog}
}

func (r *userSkillRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserSkill) ([]*types.UserSkill, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.UserSkill{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userSkillRepo) ListSkillNames(ctx context.Context, tx *gorm.DB, userID string) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var names []string
	if err := transaction.WithContext(ctx).
		Model(&types.UserSkill{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("skill_name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
