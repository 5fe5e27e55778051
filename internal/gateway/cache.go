package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/neurobridge-recommender/internal/domain/learning"
	"github.com/yungbote/neurobridge-recommender/internal/observability"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
)

const DefaultCacheTTL = 5 * time.Minute

type kvStore interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

type redisStore struct {
	rdb *goredis.Client
}

func (s redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s redisStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, val, ttl).Err()
}

// CachedCatalog is a read-through cache in front of a CatalogGateway. Cache failures
// are logged and fall through to the wrapped gateway.
type CachedCatalog struct {
	next    CatalogGateway
	store   kvStore
	ttl     time.Duration
	prefix  string
	metrics *observability.Metrics
	log     *logger.Logger
}

func NewCachedCatalog(next CatalogGateway, rdb *goredis.Client, ttl time.Duration, prefix string, metrics *observability.Metrics, baseLog *logger.Logger) *CachedCatalog {
	return newCachedCatalog(next, redisStore{rdb: rdb}, ttl, prefix, metrics, baseLog)
}

func newCachedCatalog(next CatalogGateway, store kvStore, ttl time.Duration, prefix string, metrics *observability.Metrics, baseLog *logger.Logger) *CachedCatalog {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if prefix == "" {
		prefix = "recsys"
	}
	return &CachedCatalog{
		next:    next,
		store:   store,
		ttl:     ttl,
		prefix:  prefix,
		metrics: metrics,
		log:     baseLog.With("gateway", "CachedCatalog"),
	}
}

func (c *CachedCatalog) GetAllCourses(ctx context.Context) ([]learning.Course, error) {
	return readThrough(ctx, c, "courses", c.prefix+":catalog:courses", func(ctx context.Context) ([]learning.Course, error) {
		return c.next.GetAllCourses(ctx)
	})
}

func (c *CachedCatalog) GetJobListings(ctx context.Context, activeOnly bool) ([]learning.JobListing, error) {
	key := fmt.Sprintf("%s:catalog:jobs:active=%t", c.prefix, activeOnly)
	return readThrough(ctx, c, "jobs", key, func(ctx context.Context) ([]learning.JobListing, error) {
		return c.next.GetJobListings(ctx, activeOnly)
	})
}

func readThrough[T any](ctx context.Context, c *CachedCatalog, kind, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if raw, ok, err := c.store.Get(ctx, key); err != nil {
		c.log.Warn("catalog cache read failed", "key", key, "error", err)
	} else if ok {
		var cached []T
		if err := json.Unmarshal(raw, &cached); err == nil {
			c.metrics.IncCacheLookup(kind, true)
			return cached, nil
		}
		c.log.Warn("catalog cache entry unreadable", "key", key)
	}
	c.metrics.IncCacheLookup(kind, false)

	out, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(out); err == nil {
		if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
			c.log.Warn("catalog cache write failed", "key", key, "error", err)
		}
	}
	return out, nil
}
