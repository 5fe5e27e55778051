package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	types "github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
	"github.com/yungbote/neurobridge-recommender/internal/platform/neo4jdb"
)

// UpsertEnrollments mirrors enrollment rows into the co-enrollment graph
// (:Learner)-[:ENROLLED_IN {progress, rating}]->(:Course).
func UpsertEnrollments(ctx context.Context, client *neo4jdb.Client, log *logger.Logger, rows []*types.CourseEnrollment) (int, error) {
	if client == nil || client.Driver == nil {
		return 0, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	relRows := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		if r == nil || r.UserID == "" || r.CourseID == "" {
			continue
		}
		var rating any
		if r.Rating != nil {
			rating = *r.Rating
		}
		relRows = append(relRows, map[string]any{
			"user_id":   r.UserID,
			"course_id": r.CourseID,
			"progress":  r.Progress,
			"rating":    rating,
			"synced_at": now,
		})
	}
	if len(relRows) == 0 {
		return 0, nil
	}

	session := client.WriteSession(ctx)
	defer session.Close(ctx)

	// Best-effort schema init.
	for _, stmt := range []string{
		`CREATE CONSTRAINT learner_id_unique IF NOT EXISTS FOR (l:Learner) REQUIRE l.id IS UNIQUE`,
		`CREATE CONSTRAINT course_id_unique IF NOT EXISTS FOR (c:Course) REQUIRE c.id IS UNIQUE`,
	} {
		if res, err := session.Run(ctx, stmt, nil); err != nil {
			if log != nil {
				log.Warn("neo4j schema init failed (continuing)", "error", err)
			}
		} else {
			_, _ = res.Consume(ctx)
		}
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
UNWIND $rows AS r
MERGE (l:Learner {id: r.user_id})
MERGE (c:Course {id: r.course_id})
MERGE (l)-[e:ENROLLED_IN]->(c)
SET e.progress = r.progress,
    e.rating = r.rating,
    e.synced_at = r.synced_at
`, map[string]any{"rows": relRows})
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return 0, err
	}
	return len(relRows), nil
}

// SimilarLearners ranks learners by the number of courses they share with userID.
func SimilarLearners(ctx context.Context, client *neo4jdb.Client, userID string, limit int) ([]string, error) {
	if client == nil || client.Driver == nil || limit <= 0 {
		return []string{}, nil
	}
	session := client.ReadSession(ctx)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (me:Learner {id: $user_id})-[:ENROLLED_IN]->(c:Course)<-[:ENROLLED_IN]-(peer:Learner)
WHERE peer.id <> $user_id
WITH peer, count(DISTINCT c) AS overlap
RETURN peer.id AS id
ORDER BY overlap DESC, id ASC
LIMIT $limit
`, map[string]any{"user_id": userID, "limit": int64(limit)})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(records))
		for _, rec := range records {
			if v, ok := rec.Get("id"); ok {
				if s, ok := v.(string); ok && s != "" {
					ids = append(ids, s)
				}
			}
		}
		return ids, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]string), nil
}

// PeerOutcomes reads the enrollment edges of peerIDs into courseID.
func PeerOutcomes(ctx context.Context, client *neo4jdb.Client, courseID string, peerIDs []string) ([]types.PeerOutcome, error) {
	if client == nil || client.Driver == nil || len(peerIDs) == 0 {
		return []types.PeerOutcome{}, nil
	}
	session := client.ReadSession(ctx)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (peer:Learner)-[e:ENROLLED_IN]->(:Course {id: $course_id})
WHERE peer.id IN $peer_ids
RETURN peer.id AS id, e.progress AS progress, e.rating AS rating
ORDER BY id ASC
`, map[string]any{"course_id": courseID, "peer_ids": peerIDs})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		outcomes := make([]types.PeerOutcome, 0, len(records))
		for _, rec := range records {
			id, _ := rec.Get("id")
			progress, _ := rec.Get("progress")
			rating, _ := rec.Get("rating")
			userID, _ := id.(string)
			outcomes = append(outcomes, types.PeerOutcome{
				UserID:   userID,
				Progress: types.Clamp(toFloat(progress), 0, 100),
				Rating:   types.Clamp(toFloat(rating), 0, 5),
			})
		}
		return outcomes, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]types.PeerOutcome), nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		return 0
	}
}
