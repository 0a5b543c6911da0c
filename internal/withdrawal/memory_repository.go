package withdrawal

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]Withdrawal
}

// NewMemoryRepository builds an in-memory withdrawal store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{nextID: 1, items: make(map[int64]Withdrawal)}
}

func (r *memoryRepository) Insert(_ context.Context, w Withdrawal) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.ID = r.nextID
	r.nextID++
	r.items[w.ID] = w
	return w.ID, nil
}

func (r *memoryRepository) Get(_ context.Context, id int64) (Withdrawal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.items[id]
	if !ok {
		return Withdrawal{}, ErrNotFound
	}
	return w, nil
}

func (r *memoryRepository) List(_ context.Context, f Filter) ([]Withdrawal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.matching(f.Status)
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if f.Offset >= len(matched) {
		return []Withdrawal{}, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (r *memoryRepository) Count(_ context.Context, status string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.matching(status))), nil
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id int64, u StatusUpdate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.items[id]
	if !ok {
		return 0, nil
	}
	w.Status = u.Status
	w.TransactionHash = u.TransactionHash
	w.Notes = u.Notes
	processedAt := u.ProcessedAt.UTC()
	w.ProcessedAt = &processedAt
	r.items[id] = w
	return 1, nil
}

func (r *memoryRepository) SumAmount(_ context.Context, status string) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum float64
	for _, w := range r.items {
		if w.Status == status {
			sum += w.Amount
		}
	}
	return sum, nil
}

func (r *memoryRepository) CountToday(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	today := time.Now().UTC().Truncate(24 * time.Hour)
	var count int64
	for _, w := range r.items {
		if w.CreatedAt.UTC().Truncate(24 * time.Hour).Equal(today) {
			count++
		}
	}
	return count, nil
}

// matching must be called with the lock held.
func (r *memoryRepository) matching(status string) []Withdrawal {
	matched := make([]Withdrawal, 0, len(r.items))
	for _, w := range r.items {
		if status == "" || w.Status == status {
			matched = append(matched, w)
		}
	}
	return matched
}
