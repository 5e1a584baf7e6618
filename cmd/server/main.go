package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/tunegraph/tunegraph/internal/cache"
	"github.com/tunegraph/tunegraph/internal/config"
	"github.com/tunegraph/tunegraph/internal/engine"
	"github.com/tunegraph/tunegraph/internal/handler"
	"github.com/tunegraph/tunegraph/internal/repository"
	"github.com/tunegraph/tunegraph/internal/router"
	"github.com/tunegraph/tunegraph/internal/service"
	"github.com/tunegraph/tunegraph/internal/spotify"
	"github.com/tunegraph/tunegraph/internal/youtube"
	"github.com/tunegraph/tunegraph/seeds"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config %v", err)
	}

	ctx := context.Background()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to parse database config %v", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("failed to connect to database %v", err)
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool); err != nil {
		log.Fatalf("database not ready: %v", err)
	}
	log.Println("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrateDown(ctx, pool); err != nil {
			log.Fatalf("failed to migrate down %v", err)
		}
		log.Println("migrations dropped")
		return
	}

	if err := migrateUp(ctx, pool); err != nil {
		log.Fatalf("failed to migrate up %v", err)
	}

	// ------------ Redis ---------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to parse redis url %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// ------------ Wiring --------------------
	repo := repository.NewRepository(pool)
	recCache := cache.NewCache(redisClient, cfg.CacheTTL)

	// ------------ Setup Seed Data ---------------
	if cfg.SeedOnEmpty {
		if err := checkSeed(ctx, repo, pool); err != nil {
			log.Fatalf("failed to check seed %v", err)
		}
	}

	eng, err := engine.New(repo, engine.DistanceConfig{
		Dimensions: cfg.RecDimensions,
		Weights:    cfg.RecWeights,
	})
	if err != nil {
		log.Fatalf("failed to build recommendation engine: %v", err)
	}

	spotifyClient := spotify.NewFromCredentials(ctx, cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	youtubeClient := youtube.NewClient(nil, "", cfg.YouTubeAPIKey)

	svc := service.NewService(repo, recCache, eng, spotifyClient, youtubeClient, cfg.RecDefault, cfg.RecMax)
	h := handler.NewHandler(svc)
	r := router.Setup(h)

	// ---------------- Server --------------------
	log.Printf("Server running on %s", cfg.Addr())
	log.Fatal(http.ListenAndServe(cfg.Addr(), r))
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Printf("waiting for database... (%d/30)", i+1)
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.down.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	log.Println("migrations dropped successfully")
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.up.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	log.Println("migrations applied successfully")
	return nil
}

func checkSeed(ctx context.Context, repo *repository.Repository, pool *pgxpool.Pool) error {
	count, err := repo.CountTracks(ctx)
	if err != nil {
		return fmt.Errorf("check tracks count: %w", err)
	}
	if count > 0 {
		log.Printf("catalog already populated (%d tracks), skipping seed", count)
		return nil
	}
	return seeds.Setup(ctx, pool)
}
