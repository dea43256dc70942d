package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"quote-run-service/internal/app"
	"quote-run-service/internal/config"
	"quote-run-service/internal/daily"
	"quote-run-service/internal/domain"
	"quote-run-service/internal/infra/file"
	"quote-run-service/internal/infra/memory"
	pgstore "quote-run-service/internal/infra/postgres"
	redisstore "quote-run-service/internal/infra/redis"
	"quote-run-service/internal/match"
)

// buildService assembles the game service from config: Redis or Postgres
// state when configured (memory otherwise), and a Postgres, file or built-in pool.
func buildService(ctx context.Context, cfg config.Config) (*app.GameService, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = redisClient.Close() })
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		var err error
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, pool.Close)
	}

	var loader memory.PoolLoader = memory.NewStaticPoolLoader(map[string]domain.Pool{cfg.Pool.ID: samplePool()})
	switch {
	case pool != nil:
		loader = pgstore.NewPoolLoader(pool)
	case cfg.Pool.Path != "":
		loader = file.NewPoolLoader(cfg.Pool.Path)
	}

	poolTTL := config.TTLDuration(cfg.Pool.TTL, 10*time.Minute)
	var pools app.PoolRepository
	if redisClient != nil {
		pools = redisstore.NewPoolRepository(redisClient, loader, poolTTL)
	} else {
		pools = memory.NewPoolRepository(loader, poolTTL)
	}

	var states app.StateRepository
	switch {
	case redisClient != nil:
		states = redisstore.NewStateStore(redisClient, config.TTLDuration(cfg.Redis.TTL, 0))
	case pool != nil:
		states = pgstore.NewStateStore(pool)
	default:
		log.Printf("no redis or postgres configured, run state is kept in memory")
		states = memory.NewStateStore()
	}

	loc, err := cfg.Location()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("load timezone: %w", err)
	}
	cal, err := daily.NewCalendar(cfg.Game.AnchorDate, loc)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	service := app.NewGameService(states, pools, app.Options{
		PoolID:   cfg.Pool.ID,
		Calendar: cal,
		Matcher:  match.Matcher{TypoTolerance: cfg.Game.TypoTolerance},
		PlayURL:  cfg.Game.PlayURL,
	})
	return service, cleanup, nil
}

// samplePool is served when neither Postgres nor a pool file is configured.
func samplePool() domain.Pool {
	return domain.Pool{
		Quotes: []domain.Quote{
			{ID: "casablanca-kid", Quote: "Here's looking at you, kid.", Tier: 1, Answers: []string{"casablanca"}, Hint1: "Released in 1942.", Hint2: "Set in a Moroccan nightclub.", Display: "Casablanca", Year: 1942},
			{ID: "kane-rosebud", Quote: "Rosebud.", Tier: 2, Answers: []string{"citizen kane"}, Hint1: "A newspaper magnate.", Hint2: "Directed by its star.", Display: "Citizen Kane", Year: 1941},
			{ID: "godfather-offer", Quote: "I'm gonna make him an offer he can't refuse.", Tier: 2, Answers: []string{"the godfather", "godfather"}, Hint1: "A crime family saga.", Hint2: "The Corleones.", Display: "The Godfather", Year: 1972},
			{ID: "shining-johnny", Quote: "Here's Johnny!", Tier: 3, Answers: []string{"the shining", "shining"}, Hint1: "A remote hotel in winter.", Hint2: "Room 237.", Display: "The Shining", Year: 1980},
			{ID: "network-mad", Quote: "I'm as mad as hell, and I'm not going to take this anymore!", Tier: 3, Answers: []string{"network"}, Hint1: "Television satire.", Hint2: "A newsman's on-air breakdown.", Display: "Network", Year: 1976},
			{ID: "chinatown-jake", Quote: "Forget it, Jake. It's Chinatown.", Tier: 4, Answers: []string{"chinatown"}, Hint1: "A water conspiracy.", Hint2: "Neo-noir detective.", Display: "Chinatown", Year: 1974},
		},
	}
}
