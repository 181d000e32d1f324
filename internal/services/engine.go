package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"liquor-trace-service/internal/domain"
	"liquor-trace-service/internal/platform/obs"
	"liquor-trace-service/internal/ports"
	"math/rand"
	"time"
)

// VehicleAssignment binds a vehicle to the route it is expected to follow.
type VehicleAssignment struct {
	VehicleID   string
	RouteID     string
	CargoLiters int
}

// EngineConfig is the validated static configuration the simulation runs on.
type EngineConfig struct {
	Routes          map[string]*domain.Route
	Vehicles        []VehicleAssignment
	Facilities      []Facility
	Period          time.Duration
	Seed            int64
	Thresholds      GeofenceThresholds
	ToleranceFactor float64
}

// Engine composes the interpolator, geofence classifier, ledger simulator and
// label checker into per-tick snapshots. It holds no mutable state: every
// snapshot is recomputed from (timestamp, config, seed), so concurrent
// callers need no coordination.
type Engine struct {
	cfg     EngineConfig
	catalog ports.BatchCatalog
}

// NewEngine validates the full configuration up front. A defective setup
// fails here and never produces a snapshot.
func NewEngine(cfg EngineConfig, catalog ports.BatchCatalog) (*Engine, error) {
	if cfg.Period <= 0 {
		return nil, fmt.Errorf(
			"new engine: %w: route period must be positive, got %s",
			domain.ErrConfiguration, cfg.Period,
		)
	}

	if len(cfg.Routes) == 0 {
		return nil, fmt.Errorf("new engine: %w: no routes configured", domain.ErrConfiguration)
	}
	for id, route := range cfg.Routes {
		if route == nil {
			return nil, fmt.Errorf("new engine: %w: route %q is nil", domain.ErrConfiguration, id)
		}
	}

	for _, v := range cfg.Vehicles {
		if v.VehicleID == "" {
			return nil, fmt.Errorf("new engine: %w: vehicle id must be non-empty", domain.ErrConfiguration)
		}
		if _, ok := cfg.Routes[v.RouteID]; !ok {
			return nil, fmt.Errorf(
				"new engine: %w: vehicle %q references unknown route %q",
				domain.ErrConfiguration, v.VehicleID, v.RouteID,
			)
		}
	}

	for _, f := range cfg.Facilities {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("new engine: %w", err)
		}
	}

	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	if cfg.ToleranceFactor <= 0 || cfg.ToleranceFactor > 1 {
		return nil, fmt.Errorf(
			"new engine: %w: tolerance factor must be in (0, 1], got %v",
			domain.ErrConfiguration, cfg.ToleranceFactor,
		)
	}

	if catalog == nil {
		return nil, fmt.Errorf("new engine: %w: batch catalog is nil", domain.ErrConfiguration)
	}

	return &Engine{cfg: cfg, catalog: catalog}, nil
}

// Snapshot computes the complete derived state for the given timestamp.
// Identical (timestamp, config, seed) inputs yield identical snapshots,
// which is what makes dashboard fixtures reproducible.
func (e *Engine) Snapshot(ctx context.Context, at time.Time) (_ *domain.Snapshot, err error) {
	defer obs.Time(ctx, "engine.Snapshot")(&err)

	// The cycle fraction depends only on the timestamp; all vehicles share it.
	f, err := CycleFraction(at, e.cfg.Period)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	vehicles := make(map[string]domain.VehicleState, len(e.cfg.Vehicles))
	for _, v := range e.cfg.Vehicles {
		route := e.cfg.Routes[v.RouteID]

		intended, err := PositionAtFraction(route, f)
		if err != nil {
			return nil, fmt.Errorf("snapshot: vehicle %q: %w", v.VehicleID, err)
		}

		rng := e.tickRNG(at, v.VehicleID)
		actual := PerturbPosition(intended, rng)
		deviation, tier := ClassifyDeviation(intended, actual, e.cfg.Thresholds)

		vehicles[v.VehicleID] = domain.VehicleState{
			VehicleID:   v.VehicleID,
			RouteID:     v.RouteID,
			Position:    actual,
			Intended:    intended,
			DeviationKm: deviation,
			Tier:        tier,
			ProgressPct: f * 100,
			CargoLiters: v.CargoLiters,
		}
	}

	windowStart := at.UTC().Truncate(24 * time.Hour)
	windowEnd := windowStart.Add(24 * time.Hour)

	ledger := make(map[string]domain.LedgerEntry, len(e.cfg.Facilities))
	for _, f := range e.cfg.Facilities {
		rng := e.tickRNG(at, f.FacilityID)
		entry, err := SimulateLedger(f, windowStart, windowEnd, rng, e.cfg.ToleranceFactor)
		if err != nil {
			return nil, fmt.Errorf("snapshot: facility %q: %w", f.FacilityID, err)
		}
		ledger[f.FacilityID] = entry
	}

	records, err := e.catalog.ListBatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot: list batches: %w", err)
	}

	batches := make(map[string]domain.BatchStatus, len(records))
	for _, rec := range records {
		batches[rec.BatchID] = domain.BatchStatus{
			Batch:   rec,
			Verdict: VerifyBatch(rec, at),
		}
	}

	return &domain.Snapshot{
		At:       at,
		Vehicles: vehicles,
		Ledger:   ledger,
		Batches:  batches,
	}, nil
}

// tickRNG returns a generator seeded per entity per tick: the same timestamp
// always replays identically, successive seconds diverge.
func (e *Engine) tickRNG(at time.Time, entityID string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(entityID))
	return rand.New(rand.NewSource(e.cfg.Seed ^ at.Unix() ^ int64(h.Sum64())))
}
