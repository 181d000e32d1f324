package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"liquor-trace-service/internal/domain"
	"os"
	"strings"
	"time"
)

// Initialize the batch catalog schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createBatchesQuery := `
	CREATE TABLE IF NOT EXISTS batches (
		batch_id TEXT PRIMARY KEY,
		product TEXT NOT NULL,
		manufacture_date TIMESTAMPTZ NOT NULL,
		expiry_date TIMESTAMPTZ NOT NULL,
		seal_status TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_batches_expiry_date
	ON batches(expiry_date);
	`

	statements := []string{
		createBatchesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// BatchSeed mirrors one batch catalog entry in the JSON seed file.
type BatchSeed struct {
	BatchID         string `json:"batch_id"`
	Product         string `json:"product"`
	ManufactureDate string `json:"manufacture_date"`
	ExpiryDate      string `json:"expiry_date"`
	SealStatus      string `json:"seal_status"`
}

// Record converts a seed row into a validated catalog record.
func (s BatchSeed) Record() (domain.BatchRecord, error) {
	manufacture, err := time.Parse("2006-01-02", strings.TrimSpace(s.ManufactureDate))
	if err != nil {
		return domain.BatchRecord{}, fmt.Errorf(
			"batch seed: %w: batch %q manufacture date: %v",
			domain.ErrConfiguration, s.BatchID, err,
		)
	}

	expiry, err := time.Parse("2006-01-02", strings.TrimSpace(s.ExpiryDate))
	if err != nil {
		return domain.BatchRecord{}, fmt.Errorf(
			"batch seed: %w: batch %q expiry date: %v",
			domain.ErrConfiguration, s.BatchID, err,
		)
	}

	rec := domain.BatchRecord{
		BatchID:         strings.TrimSpace(s.BatchID),
		Product:         strings.TrimSpace(s.Product),
		ManufactureDate: manufacture,
		ExpiryDate:      expiry,
		Seal:            domain.SealStatus(strings.TrimSpace(s.SealStatus)),
	}

	if err := rec.Validate(); err != nil {
		return domain.BatchRecord{}, fmt.Errorf("batch seed: %w", err)
	}

	return rec, nil
}

// ReadSeedFile parses and validates the batch catalog seed JSON.
func ReadSeedFile(jsonPath string) ([]domain.BatchRecord, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed batches: read %q: %w", jsonPath, err)
	}

	var data []BatchSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed batches: parse json: %w", err)
	}

	records := make([]domain.BatchRecord, 0, len(data))
	for i, item := range data {
		rec, err := item.Record()
		if err != nil {
			return nil, fmt.Errorf("seed batches: item at index %d: %w", i, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// Populate the batch catalog from a JSON seed file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	records, err := ReadSeedFile(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed batches: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO batches (
		batch_id,
		product,
		manufacture_date,
		expiry_date,
		seal_status
	)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (batch_id) DO UPDATE
	SET product = EXCLUDED.product,
		manufacture_date = EXCLUDED.manufacture_date,
		expiry_date = EXCLUDED.expiry_date,
		seal_status = EXCLUDED.seal_status;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed batches: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(rec.BatchID, rec.Product, rec.ManufactureDate, rec.ExpiryDate, string(rec.Seal)); err != nil {
			return fmt.Errorf("seed batches: insert batch_id=%q: %w", rec.BatchID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed batches: commit tx: %w", err)
	}

	return nil
}
