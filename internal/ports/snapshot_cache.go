package ports

import (
	"context"
	"liquor-trace-service/internal/domain"
	"time"
)

// Optional boundary for sharing computed snapshots between concurrent
// dashboard sessions. Cache misses and failures degrade to recomputation;
// a snapshot is always derivable from the timestamp alone.
type SnapshotCache interface {
	// Return the cached snapshot for the given tick, if present.
	Get(ctx context.Context, at time.Time) (*domain.Snapshot, bool)
	// Store a snapshot under its tick.
	Put(ctx context.Context, snap *domain.Snapshot)
}
