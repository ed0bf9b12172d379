package resumes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for resume records.
type Service struct {
	Repo ResumesRepo
}

// Create records an uploaded resume by its storage file key. The object
// itself is not verified here; the upload ticket flow owns that handshake.
func (s *Service) Create(ctx context.Context, ownerId, fileKey, description string) (Resume, error) {
	fileKey = strings.TrimSpace(fileKey)
	if fileKey == "" {
		return Resume{}, fmt.Errorf("%w: fileKey is required", ErrInvalidInput)
	}

	res := Resume{
		ID:          uuid.NewString(),
		OwnerID:     ownerId,
		FileKey:     fileKey,
		Description: strings.TrimSpace(description),
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.Repo.Insert(ctx, res); err != nil {
		return Resume{}, err
	}
	return res, nil
}

// Latest returns the caller's most recent resume record.
func (s *Service) Latest(ctx context.Context, ownerId string) (Resume, error) {
	return s.Repo.FindLatestByOwner(ctx, ownerId)
}

// ByKey returns the caller's resume record with the given file key.
func (s *Service) ByKey(ctx context.Context, ownerId, fileKey string) (Resume, error) {
	fileKey = strings.TrimSpace(fileKey)
	if fileKey == "" {
		return Resume{}, fmt.Errorf("%w: fileKey is required", ErrInvalidInput)
	}
	return s.Repo.FindByKey(ctx, ownerId, fileKey)
}

// List returns all of the caller's resume records, oldest first.
func (s *Service) List(ctx context.Context, ownerId string) ([]Resume, error) {
	return s.Repo.ListByOwner(ctx, ownerId)
}

// UpdateDescription replaces the stored job description on a record.
func (s *Service) UpdateDescription(ctx context.Context, ownerId, id, description string) (Resume, error) {
	if strings.TrimSpace(id) == "" {
		return Resume{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return s.Repo.UpdateDescription(ctx, ownerId, id, description)
}
