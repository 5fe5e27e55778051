package app

import (
	"context"

	httpH "github.com/yungbote/neurobridge-recommender/internal/http/handlers"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

type Handlers struct {
	Recommendation *httpH.RecommendationHandler
	Health         *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services, checks map[string]httpH.Check) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Recommendation: httpH.NewRecommendationHandler(services.Recommendation),
		Health:         httpH.NewHealthHandler(checks),
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

// readinessChecks probes every configured backing store.
func readinessChecks(database pinger, clients Clients) map[string]httpH.Check {
	checks := map[string]httpH.Check{}
	if database != nil {
		checks["database"] = database.Ping
	}
	if clients.Pgx != nil {
		checks["pgx"] = clients.Pgx.Ping
	}
	if clients.Redis != nil {
		rdb := clients.Redis
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	if clients.Neo4j != nil {
		graph := clients.Neo4j
		checks["neo4j"] = func(ctx context.Context) error { return graph.Driver.VerifyConnectivity(ctx) }
	}
	return checks
}
