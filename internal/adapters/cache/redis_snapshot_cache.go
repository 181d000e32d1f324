package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"liquor-trace-service/internal/domain"
	"liquor-trace-service/internal/ports"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotCache shares computed snapshots between concurrent dashboard
// sessions. Snapshots are keyed by their tick (unix second) and expire after
// a short TTL; any cache failure degrades to recomputation, never to a
// request failure.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.SnapshotCache = (*RedisSnapshotCache)(nil)

func NewRedisSnapshotCache(addr string, ttl time.Duration) (*RedisSnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis snapshot cache: connect to %q: %w", addr, err)
	}

	return &RedisSnapshotCache{client: client, ttl: ttl}, nil
}

func snapshotKey(at time.Time) string {
	return fmt.Sprintf("snapshot:%d", at.Unix())
}

// Return the cached snapshot for the given tick, if present.
func (c *RedisSnapshotCache) Get(ctx context.Context, at time.Time) (*domain.Snapshot, bool) {
	data, err := c.client.Get(ctx, snapshotKey(at)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("snapshot cache get failed: key=%s err=%v", snapshotKey(at), err)
		return nil, false
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("snapshot cache decode failed: key=%s err=%v", snapshotKey(at), err)
		return nil, false
	}

	return &snap, true
}

// Store a snapshot under its tick.
func (c *RedisSnapshotCache) Put(ctx context.Context, snap *domain.Snapshot) {
	if snap == nil {
		return
	}

	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("snapshot cache encode failed: key=%s err=%v", snapshotKey(snap.At), err)
		return
	}

	if err := c.client.Set(ctx, snapshotKey(snap.At), data, c.ttl).Err(); err != nil {
		log.Printf("snapshot cache set failed: key=%s err=%v", snapshotKey(snap.At), err)
	}
}

// Close releases the underlying Redis connection.
func (c *RedisSnapshotCache) Close() error {
	return c.client.Close()
}
