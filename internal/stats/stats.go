// Package stats aggregates membership counts for the join page, with a
// short-lived Redis cache in front of the full collection scan.
package stats

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"clubsite/internal/records"
)

const cacheKey = "clubsite:membership-stats"

// Snapshot is the aggregate served to the join page.
type Snapshot struct {
	Total      int            `json:"total"`
	BySemester map[string]int `json:"bySemester"`
}

// Aggregate computes the snapshot from a membership list. Records without a
// semester count under "Unknown".
func Aggregate(list []records.Membership) Snapshot {
	snap := Snapshot{Total: len(list), BySemester: make(map[string]int)}
	for _, m := range list {
		sem := m.Semester
		if sem == "" {
			sem = "Unknown"
		}
		snap.BySemester[sem]++
	}
	return snap
}

// MembershipLister is the slice of the membership repo the service needs.
type MembershipLister interface {
	List(ctx context.Context) ([]records.Membership, error)
}

// Service serves cached snapshots.
type Service struct {
	memberships MembershipLister
	cache       *redis.Client
	ttl         time.Duration
}

// NewService creates a stats service. A nil cache client disables caching.
func NewService(memberships MembershipLister, cache *redis.Client, ttl time.Duration) *Service {
	return &Service{memberships: memberships, cache: cache, ttl: ttl}
}

// Snapshot returns the current aggregate, from cache when fresh. Cache
// failures fall through to the store.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var snap Snapshot
			if json.Unmarshal([]byte(raw), &snap) == nil {
				return snap, nil
			}
		}
	}

	list, err := s.memberships.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Aggregate(list)

	if s.cache != nil {
		if raw, err := json.Marshal(snap); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, s.ttl).Err(); err != nil {
				log.Printf("membership stats cache write failed: %v", err)
			}
		}
	}
	return snap, nil
}

// Invalidate drops the cached snapshot after a new application is accepted
// so the next aggregate fetch reflects it.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey).Err(); err != nil {
		log.Printf("membership stats cache invalidate failed: %v", err)
	}
}
