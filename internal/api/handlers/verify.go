package handlers

import (
	"liquor-trace-service/internal/api/dto"
	"liquor-trace-service/internal/domain"
	"liquor-trace-service/internal/ports"
	"liquor-trace-service/internal/services"
	"log"
	"net/http"
	"strings"
	"time"
)

// VerifyHandler authenticates a single batch label against the catalog.
type VerifyHandler struct {
	Catalog ports.BatchCatalog
}

// Verify resolves ?batch_id= to a verdict. An id absent from the catalog
// renders a counterfeit verdict with found=false rather than a 404: to the
// inspector at the shelf, an unknown label is a failed authentication.
func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	batchID := strings.TrimSpace(r.URL.Query().Get("batch_id"))
	if batchID == "" {
		writeError(w, r, http.StatusBadRequest, "batch_id is required")
		return
	}

	rec, found, err := h.Catalog.GetBatch(r.Context(), batchID)
	if err != nil {
		log.Printf("verify failed: batch_id=%q err=%v", batchID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if !found {
		writeJSON(w, r, http.StatusOK, dto.VerifyResponse{
			BatchID: batchID,
			Found:   false,
			Verdict: string(domain.VerdictCounterfeit),
		})
		return
	}

	manufacture := rec.ManufactureDate
	expiry := rec.ExpiryDate
	writeJSON(w, r, http.StatusOK, dto.VerifyResponse{
		BatchID:         rec.BatchID,
		Found:           true,
		Verdict:         string(services.VerifyBatch(rec, time.Now().UTC())),
		Product:         rec.Product,
		ManufactureDate: &manufacture,
		ExpiryDate:      &expiry,
		SealStatus:      string(rec.Seal),
	})
}
