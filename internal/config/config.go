package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven settings for the simulation service.
type Config struct {
	Port             int
	FleetPath        string
	SeedPath         string
	DatabaseURL      string
	RedisAddr        string
	RoutePeriod      time.Duration
	PerturbationSeed int64
	ToleranceFactor  float64
	GeofenceMediumKm float64
	GeofenceHighKm   float64
	SnapshotTTL      time.Duration
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:             8080,
		FleetPath:        "data/seeds/fleet.json",
		SeedPath:         "data/seeds/batches.json",
		RoutePeriod:      24 * time.Hour,
		PerturbationSeed: 42,
		ToleranceFactor:  0.9,
		GeofenceMediumKm: 10,
		GeofenceHighKm:   15,
		SnapshotTTL:      5 * time.Second,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return cfg, fmt.Errorf("invalid PORT: %s", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("FLEET_PATH"); v != "" {
		cfg.FleetPath = v
	}
	if v := os.Getenv("SEED_PATH"); v != "" {
		cfg.SeedPath = v
	}

	// Both optional: without DATABASE_URL the catalog loads from the seed
	// file, without REDIS_ADDR snapshots are recomputed per request.
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")

	if v := os.Getenv("ROUTE_PERIOD_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return cfg, fmt.Errorf("invalid ROUTE_PERIOD_SECONDS: %s", v)
		}
		cfg.RoutePeriod = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("PERTURBATION_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid PERTURBATION_SEED: %s", v)
		}
		cfg.PerturbationSeed = seed
	}

	if v := os.Getenv("TOLERANCE_FACTOR"); v != "" {
		tol, err := strconv.ParseFloat(v, 64)
		if err != nil || tol <= 0 || tol > 1 {
			return cfg, fmt.Errorf("invalid TOLERANCE_FACTOR: %s", v)
		}
		cfg.ToleranceFactor = tol
	}

	if v := os.Getenv("GEOFENCE_MEDIUM_KM"); v != "" {
		km, err := strconv.ParseFloat(v, 64)
		if err != nil || km <= 0 {
			return cfg, fmt.Errorf("invalid GEOFENCE_MEDIUM_KM: %s", v)
		}
		cfg.GeofenceMediumKm = km
	}

	if v := os.Getenv("GEOFENCE_HIGH_KM"); v != "" {
		km, err := strconv.ParseFloat(v, 64)
		if err != nil || km <= 0 {
			return cfg, fmt.Errorf("invalid GEOFENCE_HIGH_KM: %s", v)
		}
		cfg.GeofenceHighKm = km
	}

	if v := os.Getenv("SNAPSHOT_TTL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return cfg, fmt.Errorf("invalid SNAPSHOT_TTL_SECONDS: %s", v)
		}
		cfg.SnapshotTTL = time.Duration(secs) * time.Second
	}

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
