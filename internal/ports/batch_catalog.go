package ports

import (
	"context"
	"liquor-trace-service/internal/domain"
)

// Port: a boundary for retrieving the batch catalog from a data source.
type BatchCatalog interface {
	// Return all batch records available for label authentication.
	ListBatches(ctx context.Context) ([]domain.BatchRecord, error)
	// Look up a single batch by id. The boolean reports whether the batch
	// exists; an absent batch is not an error.
	GetBatch(ctx context.Context, batchID string) (domain.BatchRecord, bool, error)
}
