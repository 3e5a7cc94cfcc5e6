package main // Entry point package

import (
	"context" // context for the schema bootstrap
	"log"     // Logging library

	"github.com/joho/godotenv"                    // optional .env loading for local development
	"github.com/labstack/echo/v4"                 // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo's built-in middleware (CORS)

	"movienight/internal/config"     // Internal config loader
	"movienight/internal/database"   // Database pool + schema bootstrap
	"movienight/internal/handler"    // HTTP handlers
	"movienight/internal/middleware" // Redis response cache + rate limiter
	"movienight/internal/queue"      // Night event consumer
	"movienight/internal/repository" // Data access layer
	"movienight/internal/router"     // Internal router setup
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("database: %v", err)
	}

	// Repositories share the one pool; it is the only process-wide state.
	movieRepo := repository.NewMovieRepo(db)
	personRepo := repository.NewPersonRepo(db)
	nightRepo := repository.NewNightRepo(db)
	ratingRepo := repository.NewRatingRepo(db)
	statsRepo := repository.NewStatsRepo(db)
	watchlistRepo := repository.NewWatchlistRepo(db)

	// Redis is optional; a nil client disables the response cache.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	cacheMW := middleware.NewRedisCache(cacheCfg, rdb)
	invalidate := middleware.NewInvalidator(cacheCfg, rdb)

	movies := handler.NewMovieHandler(movieRepo, statsRepo)
	movies.Invalidate = invalidate
	persons := handler.NewPersonHandler(personRepo, statsRepo)
	persons.Invalidate = invalidate
	nights := handler.NewNightHandler(nightRepo, statsRepo)
	nights.Invalidate = invalidate
	ratings := handler.NewRatingHandler(ratingRepo)
	ratings.Invalidate = invalidate
	watchlists := handler.NewWatchlistHandler(watchlistRepo)
	watchlists.Invalidate = invalidate

	e := echo.New() // Create Echo instance
	corsCfg := echomw.DefaultCORSConfig
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	e.Use(echomw.CORSWithConfig(corsCfg))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e) // Register banner + health routes
	router.RegisterAPI(e, movies, persons, nights, ratings, watchlists, cacheMW)

	// Consume night.recorded events in the background; the consumer has
	// its own reconnect loop and never takes the server down.
	go func() {
		if err := queue.StartNightConsumer(); err != nil {
			log.Printf("night-consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
