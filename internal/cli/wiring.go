package cli

import (
	"context"
	"fmt"
	"time"

	"quizzler/internal/app"
	"quizzler/internal/config"
	"quizzler/internal/infra/memory"
	"quizzler/internal/infra/opentdb"
	"quizzler/internal/infra/postgres"
	redisinfra "quizzler/internal/infra/redis"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// deps is the object graph shared by the server and terminal commands.
type deps struct {
	service  *app.QuizService
	sessions app.SessionRepository

	redis *redis.Client
	pool  *pgxpool.Pool
}

func (d *deps) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
	if d.redis != nil {
		_ = d.redis.Close()
	}
}

type provider interface {
	app.CategoryProvider
	app.QuestionProvider
}

func buildDeps(ctx context.Context, cfg config.Config) (*deps, error) {
	d := &deps{}

	if cfg.Redis.Addr != "" {
		d.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var source provider
	switch cfg.Provider.Kind {
	case "", config.ProviderOpenTDB:
		timeout := config.TTLDuration(cfg.Provider.Timeout, 10*time.Second)
		source = opentdb.NewClient(cfg.Provider.BaseURL, timeout)
	case config.ProviderPostgres:
		if cfg.Postgres.URL == "" {
			d.Close()
			return nil, fmt.Errorf("provider %q requires postgres.url", cfg.Provider.Kind)
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		d.pool = pool
		source = postgres.NewQuestionBank(pool)
	case config.ProviderStatic:
		source = memory.SampleBank()
	default:
		d.Close()
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider.Kind)
	}

	categoryTTL := config.TTLDuration(cfg.Quiz.CategoryTTL, time.Hour)
	var categories app.CategoryProvider
	if d.redis != nil {
		categories = redisinfra.NewCategoryCache(d.redis, source, categoryTTL)
	} else {
		categories = memory.NewCategoryCache(source, categoryTTL)
	}

	shuffler := app.NewShuffler()
	if d.redis != nil {
		sessionTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)
		d.sessions = redisinfra.NewSessionStore(d.redis, sessionTTL, shuffler)
	} else {
		d.sessions = memory.NewSessionStore(shuffler)
	}

	d.service = app.NewQuizService(app.NewGateway(categories, source), cfg.Quiz.QuestionCount)
	return d, nil
}
