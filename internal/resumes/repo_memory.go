package resumes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of ResumesRepo.
type MemoryRepo struct {
	mu    sync.RWMutex
	data  map[string][]Resume // ownerId -> resumes
	byKey map[string]string   // fileKey -> ownerId
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data:  make(map[string][]Resume),
		byKey: make(map[string]string),
	}
}

// Insert stores a resume record for a user.
func (r *MemoryRepo) Insert(ctx context.Context, res Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[res.OwnerID] = append(r.data[res.OwnerID], res)
	r.byKey[res.FileKey] = res.OwnerID
	return nil
}

// FindByKey returns the caller's resume record with the given file key.
func (r *MemoryRepo) FindByKey(ctx context.Context, ownerId, fileKey string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, res := range r.data[ownerId] {
		if res.FileKey == fileKey {
			return res, nil
		}
	}
	return Resume{}, ErrNotFound
}

// FindLatestByOwner returns the most recently submitted resume for a user.
func (r *MemoryRepo) FindLatestByOwner(ctx context.Context, ownerId string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.data[ownerId]
	if len(all) == 0 {
		return Resume{}, ErrNotFound
	}
	latest := all[0]
	for _, res := range all[1:] {
		if res.SubmittedAt.After(latest.SubmittedAt) {
			latest = res
		}
	}
	return latest, nil
}

// ListByOwner returns all resumes for a user, oldest first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerId string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	all := r.data[ownerId]
	r.mu.RUnlock()

	out := make([]Resume, len(all))
	copy(out, all)
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})
	return out, nil
}

// UpsertScore writes the score for the record with the given file key,
// creating it under the caller if no upload registered it first.
func (r *MemoryRepo) UpsertScore(ctx context.Context, ownerId, fileKey string, score int) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byKey[fileKey]; ok {
		all := r.data[owner]
		for i := range all {
			if all[i].FileKey == fileKey {
				all[i].ATSScore = score
				r.data[owner] = all
				return all[i], nil
			}
		}
	}

	res := Resume{
		ID:          uuid.NewString(),
		OwnerID:     ownerId,
		FileKey:     fileKey,
		ATSScore:    score,
		SubmittedAt: time.Now().UTC(),
	}
	r.data[ownerId] = append(r.data[ownerId], res)
	r.byKey[fileKey] = ownerId
	return res, nil
}

// UpdateDescription replaces the description on the caller's record.
func (r *MemoryRepo) UpdateDescription(ctx context.Context, ownerId, id, description string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.data[ownerId]
	for i := range all {
		if all[i].ID == id {
			all[i].Description = description
			r.data[ownerId] = all
			return all[i], nil
		}
	}
	return Resume{}, ErrNotFound
}

// DeleteByOwner removes every resume owned by a user and reports the count.
func (r *MemoryRepo) DeleteByOwner(ctx context.Context, ownerId string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.data[ownerId]
	for _, res := range all {
		delete(r.byKey, res.FileKey)
	}
	delete(r.data, ownerId)
	return len(all), nil
}

var _ ResumesRepo = (*MemoryRepo)(nil)
