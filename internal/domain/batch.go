package domain

import (
	"fmt"
	"time"
)

// SealStatus is the recorded physical seal integrity of a batch.
type SealStatus string

const (
	SealIntact SealStatus = "INTACT"
	SealBroken SealStatus = "BROKEN"
)

// Verdict is the outcome of authenticating a batch label. The failure
// reasons stay distinct so the caller can render the specific problem.
type Verdict string

const (
	VerdictAuthentic   Verdict = "AUTHENTIC"
	VerdictExpired     Verdict = "EXPIRED"
	VerdictTampered    Verdict = "TAMPERED"
	VerdictCounterfeit Verdict = "COUNTERFEIT"
)

// BatchRecord is one entry in the batch catalog used for label authentication.
type BatchRecord struct {
	BatchID         string
	Product         string
	ManufactureDate time.Time
	ExpiryDate      time.Time
	Seal            SealStatus
}

// Validate rejects malformed catalog entries at load time.
func (b BatchRecord) Validate() error {
	if b.BatchID == "" {
		return fmt.Errorf("batch record: %w: batch id must be non-empty", ErrConfiguration)
	}

	if b.ExpiryDate.Before(b.ManufactureDate) {
		return fmt.Errorf(
			"batch record: %w: batch %q expiry %s precedes manufacture %s",
			ErrConfiguration, b.BatchID,
			b.ExpiryDate.Format("2006-01-02"), b.ManufactureDate.Format("2006-01-02"),
		)
	}

	if b.Seal != SealIntact && b.Seal != SealBroken {
		return fmt.Errorf(
			"batch record: %w: batch %q has unknown seal status %q",
			ErrConfiguration, b.BatchID, b.Seal,
		)
	}

	return nil
}
