package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"ats-backend/internal/extract"
	"ats-backend/internal/resumes"
	"ats-backend/internal/shared/storage/object"
	"ats-backend/internal/shared/telemetry"
)

// Pipeline stages, reported through the OnStage hook as the request advances.
const (
	StageResolving  = "resolving"
	StageExtracting = "extracting"
	StageScoring    = "scoring"
	StagePersisting = "persisting"
	StageDone       = "done"
)

// ScoreInput is a scoring request. ResumeText wins over FileKey when both are
// present; FileKey alone triggers resolution and extraction.
type ScoreInput struct {
	FileKey        string
	ResumeText     string
	JobDescription string
}

// Service orchestrates one scoring request front to back. Each request is a
// straight line through the stages; a failure at any stage stops the run
// before anything is persisted.
type Service struct {
	Resumes resumes.ResumesRepo
	Store   object.ObjectStore
	Engine  Engine

	// OnStage, when set, observes stage transitions. Requests never block on it.
	OnStage func(stage string)
}

// Score validates, resolves, extracts, scores and persists.
func (s *Service) Score(ctx context.Context, ownerId string, in ScoreInput) (Breakdown, error) {
	in.FileKey = strings.TrimSpace(in.FileKey)
	in.ResumeText = strings.TrimSpace(in.ResumeText)
	in.JobDescription = strings.TrimSpace(in.JobDescription)

	if in.JobDescription == "" {
		return Breakdown{}, fmt.Errorf("%w: jobDescription is required", ErrInvalidInput)
	}
	if in.ResumeText == "" && in.FileKey == "" {
		return Breakdown{}, fmt.Errorf("%w: resumeText or fileKey is required", ErrInvalidInput)
	}

	text := in.ResumeText
	if text == "" {
		s.stage(StageResolving)
		if _, err := s.Resumes.FindByKey(ctx, ownerId, in.FileKey); err != nil {
			if errors.Is(err, resumes.ErrNotFound) {
				return Breakdown{}, fmt.Errorf("%w: fileKey %s", ErrNotFound, in.FileKey)
			}
			return Breakdown{}, fmt.Errorf("resolve resume: %w", err)
		}

		s.stage(StageExtracting)
		extracted, err := extract.ExtractText(ctx, s.Store, in.FileKey)
		if err != nil {
			return Breakdown{}, fmt.Errorf("extract resume text: %w", err)
		}
		text = extracted
	}

	s.stage(StageScoring)
	breakdown, err := s.Engine.Score(ctx, text, in.JobDescription)
	if err != nil {
		return Breakdown{}, err
	}

	if in.FileKey != "" {
		s.stage(StagePersisting)
		score := int(math.Ceil(breakdown.FinalScore))
		if _, err := s.Resumes.UpsertScore(ctx, ownerId, in.FileKey, score); err != nil {
			telemetry.Error("scoring.persist.failed", map[string]any{
				"err":     err.Error(),
				"fileKey": in.FileKey,
				"score":   score,
			})
			return Breakdown{}, fmt.Errorf("persist score: %w", err)
		}
	}

	s.stage(StageDone)
	return breakdown, nil
}

func (s *Service) stage(stage string) {
	if s.OnStage != nil {
		s.OnStage(stage)
	}
}
