package app

import (
	"github.com/yungbote/neurobridge-recommender/internal/engine/forecast"
	"github.com/yungbote/neurobridge-recommender/internal/engine/jobmatch"
	"github.com/yungbote/neurobridge-recommender/internal/engine/planner"
	"github.com/yungbote/neurobridge-recommender/internal/engine/scoring"
	"github.com/yungbote/neurobridge-recommender/internal/gateway"
	"github.com/yungbote/neurobridge-recommender/internal/observability"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
	"github.com/yungbote/neurobridge-recommender/internal/services"
)

type Services struct {
	Recommendation services.RecommendationService
}

func wireServices(log *logger.Logger, cfg Config, gw gateway.Gateways, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	engines := services.Engines{
		Scoring:  scoring.New(gw.Peers, cfg.Scoring, log).WithMetrics(metrics),
		Planner:  planner.New(log),
		Jobs:     jobmatch.New(log),
		Forecast: forecast.New(log),
	}
	return Services{
		Recommendation: services.NewRecommendationService(log, gw, engines, metrics, services.RecommendationConfig{
			PeerLimit:      cfg.PeerLimit,
			PathCandidates: cfg.PathCandidates,
		}),
	}
}
