package redisStore

import (
	"context"
	"time"

	"chatknowledge/internal/config"
	"chatknowledge/pkg/logger_i"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	client *redis.Client
	logger *logger_i.Logger
}

// New dials Redis and pings it. Returns nil when Redis is offline so callers
// can fall back to the in-memory stores.
func New(ctx context.Context, cfg *config.Config) *Store {
	logger := logger_i.NewLogger("Redis Store")

	client := redis.NewClient(&redis.Options{
		Addr:                  cfg.RedisAddr,
		Password:              cfg.RedisPassword,
		DB:                    cfg.RedisDB,
		ContextTimeoutEnabled: true,
		ReadTimeout:           config.RedisReadTimeout,
		WriteTimeout:          config.RedisWriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline: ", "error", err.Error())
		return nil
	}
	logger.Info("Redis store init successfully")

	store := &Store{client: client, logger: logger}
	go store.closeOnDone(ctx)
	return store
}

func (s *Store) closeOnDone(ctx context.Context) {
	<-ctx.Done()
	s.logger.Info("Closing Redis store")
	if err := s.client.Close(); err != nil {
		s.logger.Error("Error closing redis client", "error", err)
	}
}

// NewTestStore wraps an externally managed client. Only for tests.
func NewTestStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		logger: logger_i.NewLogger("test redis"),
	}
}
