package app

import (
	"fmt"

	"github.com/yungbote/neurobridge-recommender/internal/data/repos"
	"github.com/yungbote/neurobridge-recommender/internal/gateway"
	"github.com/yungbote/neurobridge-recommender/internal/observability"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

// wireGateways builds the store-backed gateways, then layers the catalog cache
// and the circuit breakers on top.
func wireGateways(log *logger.Logger, cfg Config, set repos.Set, clients Clients, metrics *observability.Metrics) (gateway.Gateways, error) {
	log.Info("Wiring gateways...", "peer_backend", cfg.PeerBackend)

	store := gateway.NewStore(set, log)
	gw := gateway.Gateways{
		Profiles: store,
		Catalog:  store,
		History:  store,
	}

	switch cfg.PeerBackend {
	case PeerBackendEnrollment, "":
		gw.Peers = gateway.NewEnrollmentPeers(set.Enrollments, log)
	case PeerBackendPostgresFn:
		if clients.Pgx == nil {
			return gateway.Gateways{}, fmt.Errorf("peer backend %s: pgx pool not configured", cfg.PeerBackend)
		}
		gw.Peers = gateway.NewPostgresPeerSimilarity(clients.Pgx, log)
	case PeerBackendNeo4j:
		if clients.Neo4j == nil {
			return gateway.Gateways{}, fmt.Errorf("peer backend %s: neo4j not configured", cfg.PeerBackend)
		}
		gw.Peers = gateway.NewNeo4jPeerSimilarity(clients.Neo4j, log)
	default:
		return gateway.Gateways{}, fmt.Errorf("unknown peer backend %q", cfg.PeerBackend)
	}

	if clients.Redis != nil {
		gw.Catalog = gateway.NewCachedCatalog(gw.Catalog, clients.Redis, cfg.CacheTTL, cfg.Redis.Prefix, metrics, log)
	}
	if cfg.BreakerEnabled {
		gw = gateway.WithBreakers(gw, cfg.Breaker, metrics, log)
	}
	return gw, nil
}
