package gateway

import (
	"context"

	"github.com/yungbote/neurobridge-recommender/internal/data/graph"
	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
	"github.com/yungbote/neurobridge-recommender/internal/platform/neo4jdb"
)

// Neo4jPeerSimilarity reads similarity and outcomes from the co-enrollment graph.
type Neo4jPeerSimilarity struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewNeo4jPeerSimilarity(client *neo4jdb.Client, baseLog *logger.Logger) *Neo4jPeerSimilarity {
	return &Neo4jPeerSimilarity{client: client, log: baseLog.With("gateway", "Neo4jPeerSimilarity")}
}

func (n *Neo4jPeerSimilarity) FindSimilarUsers(ctx context.Context, userID string, limit int) ([]string, error) {
	return graph.SimilarLearners(ctx, n.client, userID, limit)
}

func (n *Neo4jPeerSimilarity) GetPeerOutcomes(ctx context.Context, courseID string, peerIDs []string) ([]learning.PeerOutcome, error) {
	return graph.PeerOutcomes(ctx, n.client, courseID, peerIDs)
}
