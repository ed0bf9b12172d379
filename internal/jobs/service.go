package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Placeholder values for saves with missing fields; list views always have
// something to render.
const (
	PlaceholderCompany  = "Unknown Company"
	PlaceholderTitle    = "Unknown Title"
	PlaceholderLocation = "Unknown Location"
)

// SaveInput carries the fields of a listing the user wants to keep.
type SaveInput struct {
	Company     string
	Title       string
	Location    string
	Description string
	RedirectURL string
}

// Service contains business logic for job search and saved jobs.
type Service struct {
	Repo     JobsRepo
	Searcher Searcher
}

// Search finds listings for a title, or derives a query from grouped resume
// skills when no title is given.
func (s *Service) Search(ctx context.Context, title string, skills map[string][]string) ([]Listing, error) {
	query := strings.TrimSpace(title)
	if query == "" {
		query = strings.TrimSpace(DeriveQuery(skills))
	}
	if query == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return s.Searcher.Search(ctx, query)
}

// Save persists a listing for the user. Missing display fields fall back to
// placeholders rather than failing the save.
func (s *Service) Save(ctx context.Context, ownerId string, in SaveInput) (Job, error) {
	job := Job{
		ID:          uuid.NewString(),
		OwnerID:     ownerId,
		Company:     fallback(in.Company, PlaceholderCompany),
		Title:       fallback(in.Title, PlaceholderTitle),
		Location:    fallback(in.Location, PlaceholderLocation),
		Description: strings.TrimSpace(in.Description),
		RedirectURL: strings.TrimSpace(in.RedirectURL),
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.Repo.Insert(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// List returns the user's saved jobs, newest first.
func (s *Service) List(ctx context.Context, ownerId string) ([]Job, error) {
	return s.Repo.ListByOwner(ctx, ownerId)
}

func fallback(value, placeholder string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return placeholder
}
