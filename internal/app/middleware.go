package app

import (
	httpMW "github.com/yungbote/neurobridge-recommender/internal/http/middleware"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

type Middleware struct {
	RateLimiter *httpMW.RateLimiter
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	if cfg.RateLimitRPS > 0 {
		log.Info("api rate limit enabled", "rps", cfg.RateLimitRPS, "burst", cfg.RateLimitBurst)
	}
	return Middleware{
		RateLimiter: httpMW.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
}
