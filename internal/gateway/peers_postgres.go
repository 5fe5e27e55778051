package gateway

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

// one extra row covers a function that ranks the learner against themselves
const similarUsersSQL = `SELECT id::text FROM find_similar_users(target_user_id => $1) LIMIT $2`

type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresPeerSimilarity delegates similarity to the find_similar_users stored function,
// which takes a single target_user_id argument and returns (id, similarity) rows ranked
// most similar first.
type PostgresPeerSimilarity struct {
	db  pgQuerier
	log *logger.Logger
}

func NewPostgresPeerSimilarity(pool *pgxpool.Pool, baseLog *logger.Logger) *PostgresPeerSimilarity {
	return &PostgresPeerSimilarity{db: pool, log: baseLog.With("gateway", "PostgresPeerSimilarity")}
}

func (p *PostgresPeerSimilarity) FindSimilarUsers(ctx context.Context, userID string, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	rows, err := p.db.Query(ctx, similarUsersSQL, userID, limit+1)
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && id != userID && len(out) < limit {
			out = append(out, id)
		}
	}
	return out, nil
}

func (p *PostgresPeerSimilarity) GetPeerOutcomes(ctx context.Context, courseID string, peerIDs []string) ([]learning.PeerOutcome, error) {
	if len(peerIDs) == 0 {
		return []learning.PeerOutcome{}, nil
	}
	rows, err := p.db.Query(ctx, `
SELECT user_id::text, progress, rating
FROM course_enrollments
WHERE course_id = $1 AND user_id = ANY($2)
ORDER BY user_id`, courseID, peerIDs)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (learning.PeerOutcome, error) {
		var (
			userID   string
			progress float64
			rating   *float64
		)
		if err := row.Scan(&userID, &progress, &rating); err != nil {
			return learning.PeerOutcome{}, err
		}
		return outcomeFromEnrollment(userID, progress, rating), nil
	})
}
