package main

import (
	"liquor-trace-service/internal/adapters/cache"
	"liquor-trace-service/internal/adapters/repositories"
	"liquor-trace-service/internal/api"
	"liquor-trace-service/internal/config"
	"liquor-trace-service/internal/platform/db"
	"liquor-trace-service/internal/ports"
	"liquor-trace-service/internal/services"
	"log"
	"net/http"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis) behind ports, builds the
// simulation engine from the fleet seed, and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	fleet, err := config.LoadFleet(cfg.FleetPath)
	if err != nil {
		log.Fatal(err)
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		log.Fatal(err)
	}

	engine, err := services.NewEngine(services.EngineConfig{
		Routes:          fleet.Routes,
		Vehicles:        fleet.Vehicles,
		Facilities:      fleet.Facilities,
		Period:          cfg.RoutePeriod,
		Seed:            cfg.PerturbationSeed,
		Thresholds:      services.GeofenceThresholds{MediumKm: cfg.GeofenceMediumKm, HighKm: cfg.GeofenceHighKm},
		ToleranceFactor: cfg.ToleranceFactor,
	}, catalog)
	if err != nil {
		log.Fatal(err)
	}

	// Redis is optional: without it every request recomputes its snapshot,
	// which is still cheap (pure computation, no I/O).
	var snapCache ports.SnapshotCache
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		redisCache, err := cache.NewRedisSnapshotCache(cfg.RedisAddr, cfg.SnapshotTTL)
		if err != nil {
			log.Fatal(err)
		}
		defer redisCache.Close()
		snapCache = redisCache
		log.Printf("Snapshot cache enabled addr=%s ttl=%s", cfg.RedisAddr, cfg.SnapshotTTL)
	}

	router := api.NewRouter(engine, catalog, snapCache)

	log.Printf(
		"Server listening addr=%s routes=%d vehicles=%d facilities=%d period=%s",
		cfg.ListenAddr(), len(fleet.Routes), len(fleet.Vehicles), len(fleet.Facilities), cfg.RoutePeriod,
	)
	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openCatalog prefers the Postgres catalog when DATABASE_URL is set and
// falls back to the JSON seed file for local runs.
func openCatalog(cfg config.Config) (ports.BatchCatalog, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Printf("DATABASE_URL not set, loading batch catalog from %s", cfg.SeedPath)
		return repositories.LoadMemoryBatchCatalog(cfg.SeedPath)
	}

	pool, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	return repositories.NewPostgresBatchCatalog(pool), nil
}
