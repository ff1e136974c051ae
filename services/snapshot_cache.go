package services

import (
	"sync"
	"time"

	"bingo-archive-system/models"
)

// SnapshotCache holds the last fetched match snapshot behind a TTL. It is
// injected into StatsService rather than living as package state, so the
// cache contract (TTL, Invalidate, last-write-wins refresh) is explicit.
//
// Refresh protocol: call Begin to claim a generation, fetch, then Complete
// with that generation. If a newer refresh began in between, Complete
// drops the stale result.
type SnapshotCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	matches    []models.Match
	fetchedAt  time.Time
	generation uint64
}

func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{ttl: ttl}
}

// Get returns the cached snapshot, or false when the cache is empty,
// invalidated, or past its TTL.
func (c *SnapshotCache) Get() ([]models.Match, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.matches == nil || time.Since(c.fetchedAt) > c.ttl {
		return nil, false
	}
	return c.matches, true
}

// Begin claims a new refresh generation.
func (c *SnapshotCache) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return c.generation
}

// Complete stores a fetched snapshot unless a newer refresh has begun
// since gen was claimed. Reports whether the snapshot was kept.
func (c *SnapshotCache) Complete(gen uint64, matches []models.Match) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	if matches == nil {
		matches = []models.Match{}
	}
	c.matches = matches
	c.fetchedAt = time.Now()
	return true
}

// Invalidate drops the snapshot. Called after any match or comment write.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.matches = nil
}

// SweepExpired drops the snapshot if it outlived its TTL. Reports whether
// anything was dropped. Used by the periodic sweeper — eviction only,
// recomputation stays on-demand.
func (c *SnapshotCache) SweepExpired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.matches == nil || time.Since(c.fetchedAt) <= c.ttl {
		return false
	}
	c.matches = nil
	return true
}
