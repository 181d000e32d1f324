package api

import (
	"liquor-trace-service/internal/api/handlers"
	"liquor-trace-service/internal/ports"
	"liquor-trace-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(engine *services.Engine, catalog ports.BatchCatalog, snapCache ports.SnapshotCache) http.Handler {
	mux := http.NewServeMux()

	snapshotHandler := &handlers.SnapshotHandler{
		Engine: engine,
		Cache:  snapCache,
	}
	verifyHandler := &handlers.VerifyHandler{Catalog: catalog}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/snapshot", snapshotHandler.Snapshot)
	mux.HandleFunc("/verify", verifyHandler.Verify)

	return loggingMiddleware(mux)
}
