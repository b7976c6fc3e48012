package lifestylerepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/health-companion/internal/domain/lifestyle"
)

// MemoryRepository provides an in-memory lifestyle store for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	logs     map[int64][]lifestyle.LogEntry
	profiles map[int64]lifestyle.Profile
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		logs:     make(map[int64][]lifestyle.LogEntry),
		profiles: make(map[int64]lifestyle.Profile),
	}
}

// CreateLog stores the entry and assigns an ID.
func (r *MemoryRepository) CreateLog(_ context.Context, entry lifestyle.LogEntry) (lifestyle.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uuid.NewString()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.logs[entry.UserID] = append(r.logs[entry.UserID], entry)
	return entry, nil
}

// RecentLogs returns up to limit entries, most recent date first.
func (r *MemoryRepository) RecentLogs(_ context.Context, userID int64, limit int) ([]lifestyle.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := append([]lifestyle.LogEntry(nil), r.logs[userID]...)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// UpsertProfile replaces the profile for a user.
func (r *MemoryRepository) UpsertProfile(_ context.Context, profile lifestyle.Profile) (lifestyle.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now().UTC()
	}
	r.profiles[profile.UserID] = profile
	return profile, nil
}

// ProfileByUser returns the stored profile.
func (r *MemoryRepository) ProfileByUser(_ context.Context, userID int64) (lifestyle.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[userID]
	return profile, ok, nil
}

var _ lifestyle.Repository = (*MemoryRepository)(nil)
