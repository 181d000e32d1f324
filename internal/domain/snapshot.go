package domain

import "time"

// BatchStatus pairs a catalog record with its verdict at the snapshot time.
type BatchStatus struct {
	Batch   BatchRecord
	Verdict Verdict
}

// Snapshot is the complete derived state of the simulation for a single point
// in time: vehicle positions with risk tiers, per-facility ledger entries,
// and the batch catalog's verdicts. It is a pure function of (timestamp,
// static configuration, seed) and is recomputed on demand, never stored.
type Snapshot struct {
	At       time.Time
	Vehicles map[string]VehicleState
	Ledger   map[string]LedgerEntry
	Batches  map[string]BatchStatus
}
