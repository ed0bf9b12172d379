package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ats-backend/internal/jobs"
	"ats-backend/internal/resumes"
	"ats-backend/internal/shared/storage/object"
	"ats-backend/internal/shared/telemetry"
)

// Service implements account data reset, used by dev and test environments
// to wipe a caller's resumes and saved jobs.
type Service struct {
	ResumeRepo resumes.ResumesRepo
	JobRepo    jobs.JobsRepo
	Store      object.ObjectStore
}

// ResetResult reports what a reset removed.
type ResetResult struct {
	DeletedResumes int `json:"deletedResumes"`
	DeletedJobs    int `json:"deletedJobs"`
}

// NewService constructs a Service.
func NewService(resumeRepo resumes.ResumesRepo, jobRepo jobs.JobsRepo, store object.ObjectStore) *Service {
	return &Service{ResumeRepo: resumeRepo, JobRepo: jobRepo, Store: store}
}

// Reset deletes all of the caller's data. On Postgres both tables are cleared
// in one transaction; stored objects are removed best-effort afterwards.
func (s *Service) Reset(ctx context.Context, ownerId string) (ResetResult, error) {
	if strings.TrimSpace(ownerId) == "" {
		return ResetResult{}, errors.New("owner id is required")
	}

	keys := s.collectFileKeys(ctx, ownerId)

	result, err := s.deleteRows(ctx, ownerId)
	if err != nil {
		return ResetResult{}, err
	}

	s.deleteObjects(ctx, keys)
	return result, nil
}

func (s *Service) deleteRows(ctx context.Context, ownerId string) (ResetResult, error) {
	if resumePG, ok := s.ResumeRepo.(*resumes.PGRepo); ok && resumePG != nil && resumePG.DB != nil {
		if jobPG, ok := s.JobRepo.(*jobs.PGRepo); ok && jobPG != nil && jobPG.DB != nil {
			return resetWithTx(ctx, resumePG.DB, ownerId)
		}
	}

	deletedResumes, err := s.ResumeRepo.DeleteByOwner(ctx, ownerId)
	if err != nil {
		return ResetResult{}, err
	}
	deletedJobs, err := s.JobRepo.DeleteByOwner(ctx, ownerId)
	if err != nil {
		return ResetResult{}, err
	}
	return ResetResult{DeletedResumes: deletedResumes, DeletedJobs: deletedJobs}, nil
}

func resetWithTx(ctx context.Context, db *sql.DB, ownerId string) (ResetResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ResetResult{}, err
	}
	defer tx.Rollback()

	resumeRes, err := tx.ExecContext(ctx, `DELETE FROM resumes WHERE owner_id = $1`, ownerId)
	if err != nil {
		return ResetResult{}, err
	}
	resumeCount, _ := resumeRes.RowsAffected()

	jobRes, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE owner_id = $1`, ownerId)
	if err != nil {
		return ResetResult{}, err
	}
	jobCount, _ := jobRes.RowsAffected()

	if err := tx.Commit(); err != nil {
		return ResetResult{}, err
	}
	return ResetResult{DeletedResumes: int(resumeCount), DeletedJobs: int(jobCount)}, nil
}

func (s *Service) collectFileKeys(ctx context.Context, ownerId string) []string {
	list, err := s.ResumeRepo.ListByOwner(ctx, ownerId)
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(list))
	for _, r := range list {
		if r.FileKey != "" {
			keys = append(keys, r.FileKey)
		}
	}
	return keys
}

func (s *Service) deleteObjects(ctx context.Context, keys []string) {
	if s.Store == nil {
		return
	}
	for _, key := range keys {
		if err := s.Store.Delete(ctx, key); err != nil {
			telemetry.Warn("account.reset.object_delete_failed", map[string]any{
				"err":     err.Error(),
				"fileKey": key,
			})
		}
		// The derived text copy may or may not exist.
		_ = s.Store.Delete(ctx, key+".extracted.txt")
	}
}
