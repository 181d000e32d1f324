package handlers

import (
	"liquor-trace-service/internal/api/dto"
	"liquor-trace-service/internal/domain"
	"liquor-trace-service/internal/ports"
	"liquor-trace-service/internal/services"
	"log"
	"net/http"
	"time"
)

// SnapshotHandler serves the per-tick simulation state consumed by the
// dashboard. Cache is optional; when present, concurrent sessions hitting
// the same tick share one computation.
type SnapshotHandler struct {
	Engine *services.Engine
	Cache  ports.SnapshotCache
}

// Snapshot returns the derived state for now, or for an explicit ?at=RFC3339
// timestamp so test fixtures stay reproducible.
func (h *SnapshotHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	at := time.Now().UTC()
	if v := r.URL.Query().Get("at"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "at must be RFC3339")
			return
		}
		at = parsed.UTC()
	}

	// Snapshots are keyed by whole seconds so concurrent sessions land on
	// the same tick.
	at = at.Truncate(time.Second)

	if h.Cache != nil {
		if snap, ok := h.Cache.Get(r.Context(), at); ok {
			writeJSON(w, r, http.StatusOK, toSnapshotResponse(snap))
			return
		}
	}

	snap, err := h.Engine.Snapshot(r.Context(), at)
	if err != nil {
		log.Printf("snapshot failed: at=%s err=%v", at.Format(time.RFC3339), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.Cache != nil {
		h.Cache.Put(r.Context(), snap)
	}

	writeJSON(w, r, http.StatusOK, toSnapshotResponse(snap))
}

func toSnapshotResponse(snap *domain.Snapshot) dto.SnapshotResponse {
	res := dto.SnapshotResponse{
		At:       snap.At,
		Vehicles: make(map[string]dto.VehicleResponse, len(snap.Vehicles)),
		Ledger:   make(map[string]dto.LedgerEntryResponse, len(snap.Ledger)),
		Batches:  make(map[string]dto.BatchStatusResponse, len(snap.Batches)),
	}

	for id, v := range snap.Vehicles {
		res.Vehicles[id] = dto.VehicleResponse{
			VehicleID:   v.VehicleID,
			RouteID:     v.RouteID,
			Position:    dto.PositionResponse{Lat: v.Position.Lat, Lon: v.Position.Lon},
			Intended:    dto.PositionResponse{Lat: v.Intended.Lat, Lon: v.Intended.Lon},
			DeviationKm: v.DeviationKm,
			RiskTier:    string(v.Tier),
			ProgressPct: v.ProgressPct,
			CargoLiters: v.CargoLiters,
		}
	}

	for id, e := range snap.Ledger {
		res.Ledger[id] = dto.LedgerEntryResponse{
			FacilityID:         e.FacilityID,
			WindowStart:        e.WindowStart,
			WindowEnd:          e.WindowEnd,
			InputLiters:        e.InputLiters,
			TheoreticalLiters:  e.TheoreticalLiters,
			ActualOutputLiters: e.ActualOutputLiters,
			VariancePct:        e.VariancePct,
			Diverted:           e.Diverted,
		}
	}

	for id, b := range snap.Batches {
		res.Batches[id] = dto.BatchStatusResponse{
			BatchID:         b.Batch.BatchID,
			Product:         b.Batch.Product,
			ManufactureDate: b.Batch.ManufactureDate,
			ExpiryDate:      b.Batch.ExpiryDate,
			SealStatus:      string(b.Batch.Seal),
			Verdict:         string(b.Verdict),
		}
	}

	return res
}
