package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/Williamfew09/youtube-dashboard/internal/metrics"
	"github.com/Williamfew09/youtube-dashboard/internal/model"
)

// DefaultSnapshotTTL bounds how often the upstream APIs are hit.
const DefaultSnapshotTTL = 300 * time.Second

// SnapshotSource computes a fresh snapshot on a cache miss.
type SnapshotSource interface {
	ComputeSnapshot(ctx context.Context) (*model.DashboardSnapshot, error)
}

// CacheService holds the most recent dashboard snapshot for ttl. The slot
// lives in process memory (L1); when Redis is configured the snapshot is
// also written there (L2) so other replicas and restarts reuse it.
// Concurrent misses share one recomputation.
type CacheService struct {
	source SnapshotSource
	ttl    time.Duration
	rdb    *redis.Client
	key    string
	now    func() time.Time
	log    zerolog.Logger

	mu        sync.RWMutex
	snapshot  *model.DashboardSnapshot
	createdAt time.Time

	group singleflight.Group
}

// sharedSnapshot is the L2 envelope. Degraded travels beside the snapshot
// because the snapshot's own field is kept out of the API payload.
type sharedSnapshot struct {
	Snapshot *model.DashboardSnapshot `json:"snapshot"`
	Degraded []string                 `json:"degraded,omitempty"`
	CachedAt time.Time                `json:"cached_at"`
}

// NewCacheService creates a snapshot cache in front of source. If redisURL is
// empty or the connection fails, the cache runs in-memory only.
func NewCacheService(source SnapshotSource, ttl time.Duration, redisURL, key string, log zerolog.Logger) *CacheService {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	c := &CacheService{
		source: source,
		ttl:    ttl,
		key:    key,
		now:    time.Now,
		log:    log,
	}

	if redisURL == "" {
		log.Info().Msg("redis: no URL configured, shared snapshot cache disabled")
		return c
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn().Err(err).Msg("redis: invalid URL, shared snapshot cache disabled")
		return c
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis: connection failed, shared snapshot cache disabled")
		_ = rdb.Close()
		return c
	}

	log.Info().Str("addr", opts.Addr).Msg("redis: connected, shared snapshot cache enabled")
	c.rdb = rdb
	return c
}

// Client returns the underlying Redis client. May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// Get returns the cached snapshot while it is younger than the TTL, and
// otherwise recomputes, stores and returns a new one. A failed recomputation
// leaves the previous state untouched.
func (c *CacheService) Get(ctx context.Context) (*model.DashboardSnapshot, error) {
	if snap, ok := c.fresh(); ok {
		metrics.Metrics.CacheHits.WithLabelValues("l1").Inc()
		c.log.Debug().Msg("cache: returning cached snapshot")
		return snap, nil
	}

	v, err, _ := c.group.Do(c.key, func() (any, error) {
		// Another caller may have refreshed the slot while we waited.
		if snap, ok := c.fresh(); ok {
			return snap, nil
		}
		if snap, at, ok := c.loadShared(ctx); ok {
			metrics.Metrics.CacheHits.WithLabelValues("l2").Inc()
			c.store(snap, at)
			return snap, nil
		}

		metrics.Metrics.CacheMisses.Inc()
		c.log.Info().Msg("cache: fetching fresh snapshot")

		snap, err := c.source.ComputeSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		at := c.now()
		c.store(snap, at)
		c.saveShared(ctx, snap, at)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.DashboardSnapshot), nil
}

// Invalidate drops the cached snapshot so the next Get recomputes.
func (c *CacheService) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.snapshot = nil
	c.createdAt = time.Time{}
	c.mu.Unlock()

	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.key).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *CacheService) fresh() (*model.DashboardSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil || c.now().Sub(c.createdAt) >= c.ttl {
		return nil, false
	}
	return c.snapshot, true
}

func (c *CacheService) store(snap *model.DashboardSnapshot, at time.Time) {
	c.mu.Lock()
	c.snapshot = snap
	c.createdAt = at
	c.mu.Unlock()
}

func (c *CacheService) loadShared(ctx context.Context) (*model.DashboardSnapshot, time.Time, bool) {
	if c.rdb == nil {
		return nil, time.Time{}, false
	}
	data, err := c.rdb.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("cache: redis get failed")
		}
		return nil, time.Time{}, false
	}

	var env sharedSnapshot
	if err := json.Unmarshal(data, &env); err != nil || env.Snapshot == nil {
		return nil, time.Time{}, false
	}
	if c.now().Sub(env.CachedAt) >= c.ttl {
		return nil, time.Time{}, false
	}
	env.Snapshot.Degraded = env.Degraded
	return env.Snapshot, env.CachedAt, true
}

func (c *CacheService) saveShared(ctx context.Context, snap *model.DashboardSnapshot, at time.Time) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(sharedSnapshot{Snapshot: snap, Degraded: snap.Degraded, CachedAt: at})
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache: redis set failed")
	}
}
