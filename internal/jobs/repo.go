package jobs

import "context"

// JobsRepo defines persistence operations for saved jobs.
type JobsRepo interface {
	Insert(ctx context.Context, job Job) error
	ListByOwner(ctx context.Context, ownerId string) ([]Job, error)
	DeleteByOwner(ctx context.Context, ownerId string) (int, error)
}
