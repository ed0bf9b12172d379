package resumes

import "context"

// ResumesRepo defines persistence operations for resume records.
type ResumesRepo interface {
	Insert(ctx context.Context, r Resume) error
	FindByKey(ctx context.Context, ownerId, fileKey string) (Resume, error)
	FindLatestByOwner(ctx context.Context, ownerId string) (Resume, error)
	ListByOwner(ctx context.Context, ownerId string) ([]Resume, error)
	UpsertScore(ctx context.Context, ownerId, fileKey string, score int) (Resume, error)
	UpdateDescription(ctx context.Context, ownerId, id, description string) (Resume, error)
	DeleteByOwner(ctx context.Context, ownerId string) (int, error)
}
