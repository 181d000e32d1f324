package handlers

import (
	"context"
	"encoding/json"
	"liquor-trace-service/internal/api/dto"
	"liquor-trace-service/internal/domain"
	"liquor-trace-service/internal/services"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

type stubCatalog struct {
	records []domain.BatchRecord
}

func (s *stubCatalog) ListBatches(ctx context.Context) ([]domain.BatchRecord, error) {
	return s.records, nil
}

func (s *stubCatalog) GetBatch(ctx context.Context, batchID string) (domain.BatchRecord, bool, error) {
	for _, rec := range s.records {
		if rec.BatchID == batchID {
			return rec, true, nil
		}
	}
	return domain.BatchRecord{}, false, nil
}

func newTestEngine(t *testing.T, catalog *stubCatalog) *services.Engine {
	t.Helper()

	route, err := domain.NewRoute("BLR-MYS", []domain.Coordinates{
		{Lat: 12.9716, Lon: 77.5946},
		{Lat: 12.2958, Lon: 76.6394},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	engine, err := services.NewEngine(services.EngineConfig{
		Routes: map[string]*domain.Route{route.ID: route},
		Vehicles: []services.VehicleAssignment{
			{VehicleID: "TRK-KA-0001", RouteID: "BLR-MYS", CargoLiters: 18000},
		},
		Facilities: []services.Facility{
			{FacilityID: "FAC-BLR-001", YieldRatio: 0.8, InputMinLiters: 50000, InputMaxLiters: 200000},
		},
		Period:          24 * time.Hour,
		Seed:            42,
		Thresholds:      services.GeofenceThresholds{MediumKm: 10, HighKm: 15},
		ToleranceFactor: 0.9,
	}, catalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return engine
}

func authenticBatch() domain.BatchRecord {
	return domain.BatchRecord{
		BatchID:         "BATCH-2024-BLR-000001",
		Product:         "PREMIUM_WHISKY",
		ManufactureDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:      time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
		Seal:            domain.SealIntact,
	}
}

func TestSnapshotHandler(t *testing.T) {
	catalog := &stubCatalog{records: []domain.BatchRecord{authenticBatch()}}
	h := &SnapshotHandler{Engine: newTestEngine(t, catalog)}

	req := httptest.NewRequest(http.MethodGet, "/snapshot?at=2024-06-01T14:00:00Z", nil)
	rec := httptest.NewRecorder()
	h.Snapshot(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.SnapshotResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	v, ok := res.Vehicles["TRK-KA-0001"]
	if !ok {
		t.Fatal("missing vehicle in response")
	}
	if v.RouteID != "BLR-MYS" {
		t.Errorf("route = %q, want BLR-MYS", v.RouteID)
	}

	if _, ok := res.Ledger["FAC-BLR-001"]; !ok {
		t.Fatal("missing ledger entry in response")
	}

	if got := res.Batches["BATCH-2024-BLR-000001"].Verdict; got != string(domain.VerdictAuthentic) {
		t.Errorf("verdict = %q, want AUTHENTIC", got)
	}
}

func TestSnapshotHandlerReproducibleForExplicitTimestamp(t *testing.T) {
	catalog := &stubCatalog{records: []domain.BatchRecord{authenticBatch()}}
	h := &SnapshotHandler{Engine: newTestEngine(t, catalog)}

	get := func() dto.SnapshotResponse {
		req := httptest.NewRequest(http.MethodGet, "/snapshot?at=2024-06-01T14:00:00Z", nil)
		rec := httptest.NewRecorder()
		h.Snapshot(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var res dto.SnapshotResponse
		if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return res
	}

	if first, second := get(), get(); !reflect.DeepEqual(first.Vehicles, second.Vehicles) {
		t.Error("vehicle states differ between identical requests")
	}
}

func TestSnapshotHandlerRejectsBadTimestamp(t *testing.T) {
	catalog := &stubCatalog{records: []domain.BatchRecord{authenticBatch()}}
	h := &SnapshotHandler{Engine: newTestEngine(t, catalog)}

	req := httptest.NewRequest(http.MethodGet, "/snapshot?at=yesterday", nil)
	rec := httptest.NewRecorder()
	h.Snapshot(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestVerifyHandler(t *testing.T) {
	catalog := &stubCatalog{records: []domain.BatchRecord{authenticBatch()}}
	h := &VerifyHandler{Catalog: catalog}

	req := httptest.NewRequest(http.MethodGet, "/verify?batch_id=BATCH-2024-BLR-000001", nil)
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.VerifyResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !res.Found {
		t.Error("found = false, want true")
	}
	if res.Verdict != string(domain.VerdictAuthentic) {
		t.Errorf("verdict = %q, want AUTHENTIC", res.Verdict)
	}
	if res.Product != "PREMIUM_WHISKY" {
		t.Errorf("product = %q, want PREMIUM_WHISKY", res.Product)
	}
}

func TestVerifyHandlerUnknownBatch(t *testing.T) {
	catalog := &stubCatalog{records: []domain.BatchRecord{authenticBatch()}}
	h := &VerifyHandler{Catalog: catalog}

	req := httptest.NewRequest(http.MethodGet, "/verify?batch_id=BATCH-FAKE-999999", nil)
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.VerifyResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.Found {
		t.Error("found = true, want false")
	}
	if res.Verdict != string(domain.VerdictCounterfeit) {
		t.Errorf("verdict = %q, want COUNTERFEIT", res.Verdict)
	}
}

func TestVerifyHandlerRequiresBatchID(t *testing.T) {
	h := &VerifyHandler{Catalog: &stubCatalog{}}

	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	rec := httptest.NewRecorder()
	h.Verify(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandlersRejectWrongMethod(t *testing.T) {
	catalog := &stubCatalog{records: []domain.BatchRecord{authenticBatch()}}
	snapshotHandler := &SnapshotHandler{Engine: newTestEngine(t, catalog)}
	verifyHandler := &VerifyHandler{Catalog: catalog}

	endpoints := map[string]http.HandlerFunc{
		"/health":   Health,
		"/snapshot": snapshotHandler.Snapshot,
		"/verify":   verifyHandler.Verify,
	}

	for path, handler := range endpoints {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: status = %d, want 405", path, rec.Code)
		}
	}
}
