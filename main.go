package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron"

	"github.com/FitMentor/fitmentor-backend/internal/config"
	"github.com/FitMentor/fitmentor-backend/internal/plancache"
	"github.com/FitMentor/fitmentor-backend/internal/repository"
	"github.com/FitMentor/fitmentor-backend/middleware/ratelimit"
	"github.com/FitMentor/fitmentor-backend/services"
)

var (
	chatService    *services.OpenRouterService
	plannerService *services.PlannerService
	cache          plancache.Cache = plancache.Noop{}
	repo           *repository.Repository
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	chatService = services.NewOpenRouterService(
		cfg.OpenRouterAPIKey, cfg.OpenRouterURL, cfg.Model, cfg.RequestTimeout,
	)
	plannerService = services.NewPlannerService(chatService)

	if !chatService.Configured() {
		log.Println("Warning: OPENROUTER_API_KEY not set, AI plan generation is disabled")
	}

	if cfg.CacheEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		cache = plancache.NewRedis(rdb, plancache.WithTTL(cfg.CacheTTL))
		log.Printf("Plan cache enabled (redis at %s, TTL %s)", cfg.RedisAddr, cfg.CacheTTL)
	}

	if cfg.DatabaseEnabled() {
		db, err := sql.Open("postgres", cfg.DSN())
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		if err := db.Ping(); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		repo = repository.New(db)
		log.Printf("Plan history enabled (postgres at %s, retention %d days)", cfg.DBHost, cfg.RetentionDays)

		c := cron.New()
		retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
		if err := c.AddFunc("@daily", func() {
			n, err := repo.Plan.DeleteOlderThan(time.Now().Add(-retention))
			if err != nil {
				log.Printf("Plan history prune failed: %v", err)
				return
			}
			if n > 0 {
				log.Printf("Pruned %d expired plans from history", n)
			}
		}); err != nil {
			log.Fatalf("Failed to schedule history prune: %v", err)
		}
		c.Start()
	}

	limiter := ratelimit.New(ratelimit.Options{
		RPS:       cfg.RateLimitRPS,
		Burst:     cfg.RateLimitBurst,
		KeyHeader: "X-Api-Key",
	})
	limiter.StartJanitor(context.Background())

	mux := http.NewServeMux()

	mux.HandleFunc("GET /", rootHandler)
	mux.HandleFunc("GET /api", apiInfoHandler)
	mux.HandleFunc("GET /api/health", healthHandler)
	mux.HandleFunc("GET /api/plans", planHistoryHandler)
	mux.HandleFunc("GET /api/plans/{id}", planByIDHandler)

	mux.Handle("POST /api/generate-plan", limiter.Middleware(http.HandlerFunc(generatePlanHandler)))
	mux.HandleFunc("OPTIONS /api/generate-plan", corsPreflightHandler)

	mux.HandleFunc("POST /api/calculate-bmi", calculateBMIHandler)
	mux.HandleFunc("OPTIONS /api/calculate-bmi", corsPreflightHandler)

	mux.HandleFunc("POST /api/calculate-calories", calculateCaloriesHandler)
	mux.HandleFunc("OPTIONS /api/calculate-calories", corsPreflightHandler)

	log.Printf("FitMentor AI API listening on port %s (model: %s)", cfg.Port, chatService.Model())
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
