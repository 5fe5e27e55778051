package learning

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

type UserProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profiles []*types.UserProfileRecord) ([]*types.UserProfileRecord, error)
	// GetByUserID returns nil, nil when the learner has no stored profile.
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*types.UserProfileRecord, error)
}

type userProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserProfileRepo(db *gorm.DB, baseLog *logger.Logger) UserProfileRepo {
	repoLog := baseLog.With("repo", "UserProfileRepo")
	return &userProfileRepo{db: db, log: repoLog}
}

func (r *userProfileRepo) Create(ctx context.Context, tx *gorm.DB, profiles []*types.UserProfileRecord) ([]*types.UserProfileRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(profiles) == 0 {
		return []*types.UserProfileRecord{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *userProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*types.UserProfileRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var out types.UserProfileRecord
	err := transaction.WithContext(ctx).
		Where("id = ?", userID).
		Limit(1).
		Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
