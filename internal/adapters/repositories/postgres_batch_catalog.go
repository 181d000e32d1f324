package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"liquor-trace-service/internal/domain"
)

// Postgres-backed implementation of the BatchCatalog port.
type PostgresBatchCatalog struct{ DB *sql.DB }

func NewPostgresBatchCatalog(db *sql.DB) *PostgresBatchCatalog {
	return &PostgresBatchCatalog{DB: db}
}

// Return all batch records stored in the database.
func (p *PostgresBatchCatalog) ListBatches(ctx context.Context) ([]domain.BatchRecord, error) {
	if p.DB == nil {
		return nil, errors.New("postgres batch catalog: DB is nil")
	}

	query := `
	SELECT
		batch_id,
		product,
		manufacture_date,
		expiry_date,
		seal_status
	FROM batches
	ORDER BY batch_id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list batches: query batches table: %w", err)
	}
	defer rows.Close()

	records := make([]domain.BatchRecord, 0, 64)
	for rows.Next() {
		var rec domain.BatchRecord
		var seal string
		err := rows.Scan(&rec.BatchID, &rec.Product, &rec.ManufactureDate, &rec.ExpiryDate, &seal)
		if err != nil {
			return nil, fmt.Errorf("list batches: scan row: %w", err)
		}

		rec.Seal = domain.SealStatus(seal)
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("list batches: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list batches: row iteration: %w", err)
	}

	return records, nil
}

// Look up a single batch by id, filtered in the database.
func (p *PostgresBatchCatalog) GetBatch(ctx context.Context, batchID string) (domain.BatchRecord, bool, error) {
	if p.DB == nil {
		return domain.BatchRecord{}, false, errors.New("postgres batch catalog: DB is nil")
	}

	query := `
	SELECT
		batch_id,
		product,
		manufacture_date,
		expiry_date,
		seal_status
	FROM batches
	WHERE batch_id = $1;
	`
	var rec domain.BatchRecord
	var seal string
	err := p.DB.QueryRowContext(ctx, query, batchID).
		Scan(&rec.BatchID, &rec.Product, &rec.ManufactureDate, &rec.ExpiryDate, &seal)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BatchRecord{}, false, nil
	}
	if err != nil {
		return domain.BatchRecord{}, false, fmt.Errorf("get batch: query batch %q: %w", batchID, err)
	}

	rec.Seal = domain.SealStatus(seal)
	if err := rec.Validate(); err != nil {
		return domain.BatchRecord{}, false, fmt.Errorf("get batch: %w", err)
	}

	return rec, true, nil
}
