package learning

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

type AssessmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.AssessmentResult) ([]*types.AssessmentResult, error)
	// AverageByCategory averages every result the learner has per category.
	AverageByCategory(ctx context.Context, tx *gorm.DB, userID string) (map[string]float64, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	repoLog := baseLog.With("repo", "AssessmentRepo")
	return &assessmentRepo{db: db, log: repoLog}
}

func (r *assessmentRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.AssessmentResult) ([]*types.AssessmentResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.AssessmentResult{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *assessmentRepo) AverageByCategory(ctx context.Context, tx *gorm.DB, userID string) (map[string]float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []struct {
		Category string
		Score    float64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.AssessmentResult{}).
		Select("category, AVG(score) AS score").
		Where("user_id = ?", userID).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.Category] = row.Score
	}
	return out, nil
}
