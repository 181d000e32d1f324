package services

import (
	"context"
	"errors"
	"liquor-trace-service/internal/domain"
	"reflect"
	"testing"
	"time"
)

type stubCatalog struct {
	records []domain.BatchRecord
	err     error
}

func (s *stubCatalog) ListBatches(ctx context.Context) ([]domain.BatchRecord, error) {
	return s.records, s.err
}

func (s *stubCatalog) GetBatch(ctx context.Context, batchID string) (domain.BatchRecord, bool, error) {
	if s.err != nil {
		return domain.BatchRecord{}, false, s.err
	}
	for _, rec := range s.records {
		if rec.BatchID == batchID {
			return rec, true, nil
		}
	}
	return domain.BatchRecord{}, false, nil
}

func testEngineConfig(t *testing.T) EngineConfig {
	t.Helper()

	route, err := domain.NewRoute("BLR-MYS", []domain.Coordinates{
		{Lat: 12.9716, Lon: 77.5946},
		{Lat: 12.2958, Lon: 76.6394},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return EngineConfig{
		Routes: map[string]*domain.Route{route.ID: route},
		Vehicles: []VehicleAssignment{
			{VehicleID: "TRK-KA-0001", RouteID: "BLR-MYS", CargoLiters: 18000},
			{VehicleID: "TRK-KA-0002", RouteID: "BLR-MYS", CargoLiters: 9500},
		},
		Facilities: []Facility{
			{FacilityID: "FAC-BLR-001", YieldRatio: 0.8, InputMinLiters: 50000, InputMaxLiters: 200000},
		},
		Period:          24 * time.Hour,
		Seed:            42,
		Thresholds:      GeofenceThresholds{MediumKm: 10, HighKm: 15},
		ToleranceFactor: 0.9,
	}
}

func testCatalog() *stubCatalog {
	return &stubCatalog{records: []domain.BatchRecord{
		{
			BatchID:         "BATCH-2024-BLR-000001",
			Product:         "PREMIUM_WHISKY",
			ManufactureDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			ExpiryDate:      time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC),
			Seal:            domain.SealIntact,
		},
		{
			BatchID:         "BATCH-2019-BLR-000002",
			Product:         "STANDARD_RUM",
			ManufactureDate: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
			ExpiryDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Seal:            domain.SealBroken,
		},
	}}
}

func TestEngineSnapshotContents(t *testing.T) {
	engine, err := NewEngine(testEngineConfig(t), testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	at := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	snap, err := engine.Snapshot(context.Background(), at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !snap.At.Equal(at) {
		t.Errorf("snapshot at = %v, want %v", snap.At, at)
	}

	if len(snap.Vehicles) != 2 {
		t.Fatalf("vehicles = %d, want 2", len(snap.Vehicles))
	}
	for id, v := range snap.Vehicles {
		if v.RouteID != "BLR-MYS" {
			t.Errorf("vehicle %s route = %q, want BLR-MYS", id, v.RouteID)
		}
		if v.ProgressPct < 0 || v.ProgressPct >= 100 {
			t.Errorf("vehicle %s progress = %v, want [0, 100)", id, v.ProgressPct)
		}
		if v.DeviationKm != domain.HaversineKm(v.Intended, v.Position) {
			t.Errorf("vehicle %s deviation inconsistent with positions", id)
		}
	}

	entry, ok := snap.Ledger["FAC-BLR-001"]
	if !ok {
		t.Fatal("missing ledger entry for FAC-BLR-001")
	}
	if !entry.WindowStart.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("window start = %v, want start of day", entry.WindowStart)
	}

	if got := snap.Batches["BATCH-2024-BLR-000001"].Verdict; got != domain.VerdictAuthentic {
		t.Errorf("verdict = %v, want AUTHENTIC", got)
	}
	if got := snap.Batches["BATCH-2019-BLR-000002"].Verdict; got != domain.VerdictTampered {
		t.Errorf("verdict = %v, want TAMPERED", got)
	}
}

func TestEngineSnapshotDeterministicForTimestamp(t *testing.T) {
	engine, err := NewEngine(testEngineConfig(t), testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	at := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)

	first, err := engine.Snapshot(context.Background(), at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.Snapshot(context.Background(), at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("snapshots for the same timestamp differ")
	}
}

func TestEngineVehiclePositionsMoveBetweenTicks(t *testing.T) {
	engine, err := NewEngine(testEngineConfig(t), testCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	morning, err := engine.Snapshot(context.Background(), time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	evening, err := engine.Snapshot(context.Background(), time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := "TRK-KA-0001"
	if morning.Vehicles[v].Intended == evening.Vehicles[v].Intended {
		t.Error("intended position did not move over twelve hours")
	}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	catalog := testCatalog()

	cases := []struct {
		name   string
		mutate func(*EngineConfig)
	}{
		{"zero period", func(c *EngineConfig) { c.Period = 0 }},
		{"no routes", func(c *EngineConfig) { c.Routes = nil }},
		{"unknown route reference", func(c *EngineConfig) { c.Vehicles[0].RouteID = "NOPE" }},
		{"empty vehicle id", func(c *EngineConfig) { c.Vehicles[0].VehicleID = "" }},
		{"zero yield facility", func(c *EngineConfig) { c.Facilities[0].YieldRatio = 0 }},
		{"zero input range facility", func(c *EngineConfig) {
			c.Facilities[0].InputMinLiters = 0
			c.Facilities[0].InputMaxLiters = 0
		}},
		{"inverted thresholds", func(c *EngineConfig) { c.Thresholds = GeofenceThresholds{MediumKm: 15, HighKm: 10} }},
		{"zero tolerance", func(c *EngineConfig) { c.ToleranceFactor = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testEngineConfig(t)
			tc.mutate(&cfg)

			engine, err := NewEngine(cfg, catalog)
			if !errors.Is(err, domain.ErrConfiguration) {
				t.Fatalf("err = %v, want ErrConfiguration", err)
			}
			if engine != nil {
				t.Fatal("engine should be nil on invalid config")
			}
		})
	}
}

func TestEngineSnapshotPropagatesCatalogFailure(t *testing.T) {
	engine, err := NewEngine(testEngineConfig(t), &stubCatalog{err: errors.New("catalog down")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := engine.Snapshot(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error from failing catalog")
	}
}
