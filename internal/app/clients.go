package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	redisclient "github.com/yungbote/neurobridge-recommender/internal/clients/redis"
	"github.com/yungbote/neurobridge-recommender/internal/data/db"
	"github.com/yungbote/neurobridge-recommender/internal/platform/logger"
	"github.com/yungbote/neurobridge-recommender/internal/platform/neo4jdb"
)

// Clients are the optional backing stores next to the primary GORM database.
// A nil member means the store is not configured.
type Clients struct {
	Pgx   *pgxpool.Pool
	Redis *goredis.Client
	Neo4j *neo4jdb.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Pgx pool for the stored similarity function
	if cfg.PeerBackend == PeerBackendPostgresFn {
		if cfg.DB.Driver != "" && cfg.DB.Driver != db.DriverPostgres {
			return Clients{}, fmt.Errorf("PEER_SIMILARITY_BACKEND=%s requires DB_DRIVER=postgres", cfg.PeerBackend)
		}
		pool, err := db.OpenPgxPool(ctx, cfg.DB.PostgresDSN(), int32(cfg.PgxMaxConns))
		if err != nil {
			return Clients{}, fmt.Errorf("init pgx pool: %w", err)
		}
		out.Pgx = pool
	}

	// Redis
	rdb, err := redisclient.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		out.Close(ctx)
		return Clients{}, fmt.Errorf("init redis client: %w", err)
	}
	out.Redis = rdb

	// Neo4j
	graph, err := neo4jdb.New(cfg.Neo4j, log)
	if err != nil {
		out.Close(ctx)
		return Clients{}, fmt.Errorf("init neo4j client: %w", err)
	}
	out.Neo4j = graph

	return out, nil
}

func (c Clients) Close(ctx context.Context) {
	if c.Pgx != nil {
		c.Pgx.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Neo4j != nil {
		_ = c.Neo4j.Close(ctx)
	}
}
