package domain

import "time"

// LedgerEntry is one facility's simulated input/output balance for a time
// window. Diverted is derived: actual output fell below the tolerated share
// of the theoretical yield, suggesting unrecorded removal of product.
type LedgerEntry struct {
	FacilityID         string
	WindowStart        time.Time
	WindowEnd          time.Time
	InputLiters        float64
	TheoreticalLiters  float64
	ActualOutputLiters float64
	VariancePct        float64
	Diverted           bool
}
