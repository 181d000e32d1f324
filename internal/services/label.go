package services

import (
	"liquor-trace-service/internal/domain"
	"time"
)

// VerifyBatch authenticates a batch label against its catalog record at the
// given time. A broken seal always reads as tampered, regardless of date
// validity; otherwise the manufacture and expiry dates must bracket now.
// A batch queried before its manufacture date reads as counterfeit, since no
// genuine label can circulate before the batch exists.
func VerifyBatch(rec domain.BatchRecord, now time.Time) domain.Verdict {
	if rec.Seal != domain.SealIntact {
		return domain.VerdictTampered
	}

	if now.After(rec.ExpiryDate) {
		return domain.VerdictExpired
	}

	if now.Before(rec.ManufactureDate) {
		return domain.VerdictCounterfeit
	}

	return domain.VerdictAuthentic
}
