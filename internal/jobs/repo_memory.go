package jobs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of JobsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Job // ownerId -> jobs
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Job)}
}

// Insert stores a saved job for a user.
func (r *MemoryRepo) Insert(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[job.OwnerID] = append(r.data[job.OwnerID], job)
	return nil
}

// ListByOwner returns the user's saved jobs, newest first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerId string) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	all := r.data[ownerId]
	r.mu.RUnlock()

	out := make([]Job, len(all))
	copy(out, all)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

// DeleteByOwner removes every saved job owned by a user and reports the count.
func (r *MemoryRepo) DeleteByOwner(ctx context.Context, ownerId string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	count := len(r.data[ownerId])
	delete(r.data, ownerId)
	return count, nil
}

var _ JobsRepo = (*MemoryRepo)(nil)
