package services

import (
	"fmt"
	"liquor-trace-service/internal/domain"
	"math/rand"
	"time"
)

// Facility is the static configuration of one production facility:
// its expected input-to-output conversion ratio and the plausible range
// of molasses input per window.
type Facility struct {
	FacilityID     string
	YieldRatio     float64
	InputMinLiters float64
	InputMaxLiters float64
}

func (f Facility) Validate() error {
	if f.FacilityID == "" {
		return fmt.Errorf("facility: %w: facility id must be non-empty", domain.ErrConfiguration)
	}

	if f.YieldRatio <= 0 {
		return fmt.Errorf(
			"facility: %w: facility %q yield ratio must be positive, got %v",
			domain.ErrConfiguration, f.FacilityID, f.YieldRatio,
		)
	}

	if f.InputMinLiters < 0 || f.InputMaxLiters <= 0 || f.InputMaxLiters < f.InputMinLiters {
		return fmt.Errorf(
			"facility: %w: facility %q input range [%v, %v] is invalid",
			domain.ErrConfiguration, f.FacilityID, f.InputMinLiters, f.InputMaxLiters,
		)
	}

	return nil
}

const (
	// Share of windows in which a facility under-reports output.
	diversionProbability = 0.05
	// Diverting facilities report only 40-70% of the theoretical yield.
	diversionOutputMin = 0.4
	diversionOutputMax = 0.7
	// Honest fermentation waste sits between 2% and 8%.
	wasteMin = 0.02
	wasteMax = 0.08
)

// NewLedgerEntry derives a ledger entry from concrete input and output
// quantities. The diversion flag is raised iff the actual output fell below
// the tolerated share of the theoretical yield.
func NewLedgerEntry(
	f Facility,
	windowStart, windowEnd time.Time,
	inputLiters, actualOutputLiters, toleranceFactor float64,
) (domain.LedgerEntry, error) {
	if err := f.Validate(); err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("new ledger entry: %w", err)
	}

	if toleranceFactor <= 0 || toleranceFactor > 1 {
		return domain.LedgerEntry{}, fmt.Errorf(
			"new ledger entry: %w: tolerance factor must be in (0, 1], got %v",
			domain.ErrConfiguration, toleranceFactor,
		)
	}

	theoretical := inputLiters * f.YieldRatio

	// A zero input window has nothing to divert and no meaningful variance.
	variance := 0.0
	if theoretical > 0 {
		variance = (actualOutputLiters - theoretical) / theoretical * 100
	}

	return domain.LedgerEntry{
		FacilityID:         f.FacilityID,
		WindowStart:        windowStart,
		WindowEnd:          windowEnd,
		InputLiters:        inputLiters,
		TheoreticalLiters:  theoretical,
		ActualOutputLiters: actualOutputLiters,
		VariancePct:        variance,
		Diverted:           actualOutputLiters < theoretical*toleranceFactor,
	}, nil
}

// SimulateLedger generates one facility's ledger entry for a time window.
// The input quantity is drawn from the facility's configured range; the
// actual output is the theoretical yield minus ordinary waste, except for the
// occasional diversion draw where most of the output goes unrecorded. Pure
// generation, no I/O: the caller seeds rng per facility per tick.
func SimulateLedger(
	f Facility,
	windowStart, windowEnd time.Time,
	rng *rand.Rand,
	toleranceFactor float64,
) (domain.LedgerEntry, error) {
	if err := f.Validate(); err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("simulate ledger: %w", err)
	}

	input := f.InputMinLiters + rng.Float64()*(f.InputMaxLiters-f.InputMinLiters)
	theoretical := input * f.YieldRatio

	var actual float64
	if rng.Float64() < diversionProbability {
		actual = theoretical * (diversionOutputMin + rng.Float64()*(diversionOutputMax-diversionOutputMin))
	} else {
		waste := wasteMin + rng.Float64()*(wasteMax-wasteMin)
		actual = theoretical * (1 - waste)
	}

	entry, err := NewLedgerEntry(f, windowStart, windowEnd, input, actual, toleranceFactor)
	if err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("simulate ledger: %w", err)
	}

	return entry, nil
}
