package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	redisclient "github.com/yungbote/neurobridge-recommender/internal/clients/redis"
	"github.com/yungbote/neurobridge-recommender/internal/data/db"
	"github.com/yungbote/neurobridge-recommender/internal/engine/scoring"
	"github.com/yungbote/neurobridge-recommender/internal/gateway"
	"github.com/yungbote/neurobridge-recommender/internal/observability"
	"github.com/yungbote/neurobridge-recommender/internal/platform/envutil"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
	"github.com/yungbote/neurobridge-recommender/internal/platform/neo4jdb"
	"github.com/yungbote/neurobridge-recommender/internal/services"
)

const (
	PeerBackendEnrollment = "enrollment"
	PeerBackendPostgresFn = "postgres_fn"
	PeerBackendNeo4j      = "neo4j"
)

type Config struct {
	Env         string
	Port        string
	ServiceName string
	Version     string

	DB          db.Config
	PgxMaxConns int
	Neo4j       neo4jdb.Config
	Redis       redisclient.Config

	PeerBackend    string
	PeerLimit      int
	PathCandidates int
	Scoring        scoring.Config

	CacheTTL       time.Duration
	BreakerEnabled bool
	Breaker        gateway.BreakerSettings

	Otel           observability.OtelConfig
	MetricsEnabled bool
	// MetricsAddr serves /metrics on its own listener; empty keeps it on the API router only.
	MetricsAddr string

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadConfig(log *logger.Logger) (Config, error) {
	breaker := gateway.DefaultBreakerSettings()
	cfg := Config{
		Env:         envutil.String("APP_ENV", "development"),
		Port:        envutil.String("PORT", "8080"),
		ServiceName: envutil.String("SERVICE_NAME", "neurobridge-recommender"),
		Version:     envutil.String("SERVICE_VERSION", "dev"),

		DB: db.Config{
			Driver:        envutil.String("DB_DRIVER", db.DriverPostgres),
			DSN:           envutil.String("POSTGRES_DSN", ""),
			Host:          envutil.String("POSTGRES_HOST", "localhost"),
			Port:          envutil.String("POSTGRES_PORT", "5432"),
			User:          envutil.String("POSTGRES_USER", "postgres"),
			Password:      envutil.String("POSTGRES_PASSWORD", ""),
			Name:          envutil.String("POSTGRES_NAME", "neurobridge"),
			SQLitePath:    envutil.String("SQLITE_PATH", ""),
			SlowThreshold: envutil.Duration("DB_SLOW_THRESHOLD", time.Second),
			MaxOpenConns:  envutil.Int("DB_MAX_OPEN_CONNS", 20),
			AutoMigrate:   envutil.Bool("DB_AUTO_MIGRATE", false),
		},
		PgxMaxConns: envutil.Int("PGX_MAX_CONNS", 10),
		Neo4j:       neo4jdb.ConfigFromEnv(),
		Redis:       redisclient.ConfigFromEnv(),

		PeerBackend:    strings.ToLower(envutil.String("PEER_SIMILARITY_BACKEND", PeerBackendEnrollment)),
		PeerLimit:      envutil.Int("PEER_LIMIT", services.DefaultPeerLimit),
		PathCandidates: envutil.Int("PATH_CANDIDATES", services.DefaultPathCandidates),
		Scoring: scoring.Config{
			Weights:     scoring.DefaultWeights(),
			Concurrency: envutil.Int("SCORING_CONCURRENCY", scoring.DefaultConcurrency),
		},

		CacheTTL:       envutil.Duration("CATALOG_CACHE_TTL", gateway.DefaultCacheTTL),
		BreakerEnabled: envutil.Bool("BREAKER_ENABLED", true),
		Breaker: gateway.BreakerSettings{
			MaxRequests:         uint32(envutil.Int("BREAKER_MAX_REQUESTS", int(breaker.MaxRequests))),
			Interval:            envutil.Duration("BREAKER_INTERVAL", breaker.Interval),
			Timeout:             envutil.Duration("BREAKER_TIMEOUT", breaker.Timeout),
			ConsecutiveFailures: uint32(envutil.Int("BREAKER_CONSECUTIVE_FAILURES", int(breaker.ConsecutiveFailures))),
			MinRequests:         uint32(envutil.Int("BREAKER_MIN_REQUESTS", int(breaker.MinRequests))),
			FailureRatio:        envutil.Float("BREAKER_FAILURE_RATIO", breaker.FailureRatio),
		},

		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 1),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
		},
		MetricsEnabled: envutil.Bool("METRICS_ENABLED", true),
		MetricsAddr:    envutil.String("METRICS_ADDR", ""),

		CORSOrigins:    envutil.List("CORS_ALLOWED_ORIGINS", nil),
		RateLimitRPS:   envutil.Float("RATE_LIMIT_RPS", 0),
		RateLimitBurst: envutil.Int("RATE_LIMIT_BURST", 20),
	}

	if path := envutil.String("RECOMMENDER_CONFIG_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := cfg.applyOverlay(raw); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		if log != nil {
			log.Info("applied config overlay", "path", path)
		}
	}

	cfg.Otel.ServiceName = cfg.ServiceName
	cfg.Otel.Environment = cfg.Env
	cfg.Otel.Version = cfg.Version

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Scoring.Weights.Validate(); err != nil {
		return err
	}
	switch c.PeerBackend {
	case PeerBackendEnrollment, PeerBackendPostgresFn, PeerBackendNeo4j:
	default:
		return fmt.Errorf("unknown PEER_SIMILARITY_BACKEND %q", c.PeerBackend)
	}
	if c.PeerBackend == PeerBackendNeo4j && strings.TrimSpace(c.Neo4j.URI) == "" {
		return fmt.Errorf("PEER_SIMILARITY_BACKEND=neo4j requires NEO4J_URI")
	}
	if c.PeerLimit <= 0 {
		return fmt.Errorf("peer limit must be positive, got %d", c.PeerLimit)
	}
	if c.PathCandidates <= 0 {
		return fmt.Errorf("path candidates must be positive, got %d", c.PathCandidates)
	}
	if c.Breaker.FailureRatio < 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("breaker failure ratio must be within [0,1], got %v", c.Breaker.FailureRatio)
	}
	return nil
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

type weightsOverlay struct {
	AssessmentAlignment *float64 `yaml:"assessment_alignment"`
	TopicRelevance      *float64 `yaml:"topic_relevance"`
	DifficultyMatch     *float64 `yaml:"difficulty_match"`
	CompletionRate      *float64 `yaml:"completion_rate"`
	PeerSuccess         *float64 `yaml:"peer_success"`
}

type fileOverlay struct {
	Scoring *struct {
		Weights     *weightsOverlay `yaml:"weights"`
		Concurrency *int            `yaml:"concurrency"`
	} `yaml:"scoring"`
	Peers *struct {
		Backend        *string `yaml:"backend"`
		Limit          *int    `yaml:"limit"`
		PathCandidates *int    `yaml:"path_candidates"`
	} `yaml:"peers"`
	Cache *struct {
		TTL *string `yaml:"ttl"`
	} `yaml:"cache"`
	Breaker *struct {
		Enabled             *bool    `yaml:"enabled"`
		MaxRequests         *uint32  `yaml:"max_requests"`
		Interval            *string  `yaml:"interval"`
		Timeout             *string  `yaml:"timeout"`
		ConsecutiveFailures *uint32  `yaml:"consecutive_failures"`
		MinRequests         *uint32  `yaml:"min_requests"`
		FailureRatio        *float64 `yaml:"failure_ratio"`
	} `yaml:"breaker"`
}

// applyOverlay sets only the keys present in the file.
func (c *Config) applyOverlay(raw []byte) error {
	var o fileOverlay
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	if s := o.Scoring; s != nil {
		if w := s.Weights; w != nil {
			setFloat(&c.Scoring.Weights.AssessmentAlignment, w.AssessmentAlignment)
			setFloat(&c.Scoring.Weights.TopicRelevance, w.TopicRelevance)
			setFloat(&c.Scoring.Weights.DifficultyMatch, w.DifficultyMatch)
			setFloat(&c.Scoring.Weights.CompletionRate, w.CompletionRate)
			setFloat(&c.Scoring.Weights.PeerSuccess, w.PeerSuccess)
		}
		if s.Concurrency != nil {
			c.Scoring.Concurrency = *s.Concurrency
		}
	}

	if p := o.Peers; p != nil {
		if p.Backend != nil {
			c.PeerBackend = strings.ToLower(strings.TrimSpace(*p.Backend))
		}
		if p.Limit != nil {
			c.PeerLimit = *p.Limit
		}
		if p.PathCandidates != nil {
			c.PathCandidates = *p.PathCandidates
		}
	}

	if o.Cache != nil && o.Cache.TTL != nil {
		d, err := time.ParseDuration(*o.Cache.TTL)
		if err != nil {
			return fmt.Errorf("cache.ttl: %w", err)
		}
		c.CacheTTL = d
	}

	if b := o.Breaker; b != nil {
		if b.Enabled != nil {
			c.BreakerEnabled = *b.Enabled
		}
		if b.MaxRequests != nil {
			c.Breaker.MaxRequests = *b.MaxRequests
		}
		if b.ConsecutiveFailures != nil {
			c.Breaker.ConsecutiveFailures = *b.ConsecutiveFailures
		}
		if b.MinRequests != nil {
			c.Breaker.MinRequests = *b.MinRequests
		}
		if b.FailureRatio != nil {
			c.Breaker.FailureRatio = *b.FailureRatio
		}
		if b.Interval != nil {
			d, err := time.ParseDuration(*b.Interval)
			if err != nil {
				return fmt.Errorf("breaker.interval: %w", err)
			}
			c.Breaker.Interval = d
		}
		if b.Timeout != nil {
			d, err := time.ParseDuration(*b.Timeout)
			if err != nil {
				return fmt.Errorf("breaker.timeout: %w", err)
			}
			c.Breaker.Timeout = d
		}
	}
	return nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
