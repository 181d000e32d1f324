package repositories

import (
	"context"
	"fmt"
	"liquor-trace-service/internal/domain"
)

// In-memory implementation of the BatchCatalog port, used for local runs
// without a database and as a test fixture.
type MemoryBatchCatalog struct {
	records []domain.BatchRecord
}

// NewMemoryBatchCatalog validates every record up front so a defective
// catalog fails at load, not mid-snapshot.
func NewMemoryBatchCatalog(records []domain.BatchRecord) (*MemoryBatchCatalog, error) {
	copied := make([]domain.BatchRecord, len(records))
	copy(copied, records)

	for _, rec := range copied {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("memory batch catalog: %w", err)
		}
	}

	return &MemoryBatchCatalog{records: copied}, nil
}

// LoadMemoryBatchCatalog builds an in-memory catalog from a JSON seed file.
func LoadMemoryBatchCatalog(jsonPath string) (*MemoryBatchCatalog, error) {
	records, err := ReadSeedFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load memory batch catalog: %w", err)
	}

	return NewMemoryBatchCatalog(records)
}

// Return a copy of all batch records.
func (m *MemoryBatchCatalog) ListBatches(ctx context.Context) ([]domain.BatchRecord, error) {
	out := make([]domain.BatchRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Look up a single batch by id.
func (m *MemoryBatchCatalog) GetBatch(ctx context.Context, batchID string) (domain.BatchRecord, bool, error) {
	for _, rec := range m.records {
		if rec.BatchID == batchID {
			return rec, true, nil
		}
	}
	return domain.BatchRecord{}, false, nil
}
