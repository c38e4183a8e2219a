// Package app assembles stores and usecases from configuration. Both the API
// server and the atsctl command use it.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"young-ats/config"
	"young-ats/internal/domain"
	badgerrepo "young-ats/internal/repository/badger"
	"young-ats/internal/repository/postgres"
	redisrepo "young-ats/internal/repository/redis"
	"young-ats/internal/usecase"
	"young-ats/pkg/database"
	"young-ats/pkg/logger"
	"young-ats/pkg/redis"
)

// Stores holds the repositories selected by STORE_DRIVER, plus the session
// store and event publisher.
type Stores struct {
	Candidates domain.CandidateRepository
	Jobs       domain.JobRepository
	Sessions   domain.SessionRepository
	Events     domain.EventPublisher
	Health     map[string]usecase.HealthCheck

	pool    *pgxpool.Pool
	badger  *database.BadgerDB
	redis   *goredis.Client
	closers []func() error
}

// OpenStores connects the document store and, when configured, Redis.
// Sessions live in Redis when it is reachable and in Badger otherwise.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	s := &Stores{Health: map[string]usecase.HealthCheck{}}

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		s.pool = pool
		s.closers = append(s.closers, func() error { pool.Close(); return nil })

		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			s.Close()
			return nil, err
		}
		s.Candidates = postgres.NewCandidateRepository(pool)
		s.Jobs = postgres.NewJobRepository(pool)
		s.Health["postgres"] = func(ctx context.Context) error { return pool.Ping(ctx) }

	case config.StoreDriverBadger:
		if err := s.openBadger(cfg); err != nil {
			return nil, err
		}
		s.Candidates = badgerrepo.NewCandidateRepository(s.badger.DB)
		s.Jobs = badgerrepo.NewJobRepository(s.badger.DB)

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if err := redis.Initialize(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warnw("Redis unavailable, continuing without it", "error", err)
		}
	} else {
		s.redis = redis.Client()
		s.closers = append(s.closers, redis.Close)
		s.Health["redis"] = redis.HealthCheck
	}

	if s.redis != nil {
		s.Sessions = redisrepo.NewSessionRepository(s.redis)
	} else {
		if s.badger == nil {
			if err := s.openBadger(cfg); err != nil {
				s.Close()
				return nil, err
			}
		}
		s.Sessions = badgerrepo.NewSessionRepository(s.badger.DB)
	}
	s.Events = redisrepo.NewEventPublisher(s.redis)

	sessionStore := "badger"
	if s.redis != nil {
		sessionStore = "redis"
	}
	logger.Log.Infow("Stores ready", "driver", cfg.StoreDriver, "sessions", sessionStore)
	return s, nil
}

func (s *Stores) openBadger(cfg *config.Config) error {
	bcfg := database.DefaultBadgerConfig(cfg.BadgerPath)
	bcfg.Logger = logger.Log
	db, err := database.NewBadgerConnection(bcfg)
	if err != nil {
		return err
	}
	s.badger = db
	s.closers = append(s.closers, db.Close)
	s.Health["badger"] = func(context.Context) error {
		if db.IsClosed() {
			return errors.New("closed")
		}
		return nil
	}
	return nil
}

// Close releases every connection in reverse order of opening.
func (s *Stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			logger.Log.Warnw("close store failed", "error", err)
		}
	}
	s.closers = nil
}
