package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/internal/resumes"
	"ats-backend/internal/shared/storage/object/local"
)

type stubEngine struct {
	breakdown Breakdown
	err       error
	calls     int
}

func (e *stubEngine) Score(ctx context.Context, resumeText, jobDescription string) (Breakdown, error) {
	e.calls++
	if e.err != nil {
		return Breakdown{}, e.err
	}
	return e.breakdown, nil
}

func newTestService(t *testing.T, engine Engine) (*Service, *resumes.MemoryRepo) {
	t.Helper()
	repo := resumes.NewMemoryRepo()
	return &Service{
		Resumes: repo,
		Store:   local.New(t.TempDir()),
		Engine:  engine,
	}, repo
}

func TestScoreValidationShortCircuits(t *testing.T) {
	engine := &stubEngine{}
	svc, repo := newTestService(t, engine)

	_, err := svc.Score(context.Background(), "guest:g-1", ScoreInput{
		ResumeText: "some text",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "jobDescription")

	_, err = svc.Score(context.Background(), "guest:g-1", ScoreInput{
		JobDescription: "Go developer",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "resumeText or fileKey")

	assert.Zero(t, engine.calls, "engine must not run on invalid input")
	all, err := repo.ListByOwner(context.Background(), "guest:g-1")
	require.NoError(t, err)
	assert.Empty(t, all, "nothing may be persisted on invalid input")
}

func TestScorePersistsCeilingByFileKey(t *testing.T) {
	engine := &stubEngine{breakdown: Breakdown{FinalScore: 72.3}}
	svc, repo := newTestService(t, engine)

	breakdown, err := svc.Score(context.Background(), "guest:g-1", ScoreInput{
		FileKey:        "ab12cd34ef56ab12-0001",
		ResumeText:     "Go developer resume",
		JobDescription: "Go developer",
	})
	require.NoError(t, err)
	assert.InDelta(t, 72.3, breakdown.FinalScore, 0.001)

	rec, err := repo.UpsertScore(context.Background(), "guest:g-1", "ab12cd34ef56ab12-0001", 73)
	require.NoError(t, err)
	assert.Equal(t, 73, rec.ATSScore, "persisted score is the ceiling of final_score")
}

func TestScoreUpsertCreatesMissingRecord(t *testing.T) {
	engine := &stubEngine{breakdown: Breakdown{FinalScore: 55}}
	svc, repo := newTestService(t, engine)

	_, err := svc.Score(context.Background(), "guest:g-1", ScoreInput{
		FileKey:        "deadbeefdeadbeef-0002",
		ResumeText:     "text",
		JobDescription: "desc",
	})
	require.NoError(t, err)

	rec, err := repo.FindByKey(context.Background(), "guest:g-1", "deadbeefdeadbeef-0002")
	require.NoError(t, err)
	assert.Equal(t, 55, rec.ATSScore)
	assert.Empty(t, rec.Description)
}

func TestScoreWithoutFileKeySkipsPersistence(t *testing.T) {
	engine := &stubEngine{breakdown: Breakdown{FinalScore: 90}}
	svc, repo := newTestService(t, engine)

	var stages []string
	svc.OnStage = func(stage string) { stages = append(stages, stage) }

	_, err := svc.Score(context.Background(), "guest:g-1", ScoreInput{
		ResumeText:     "text",
		JobDescription: "desc",
	})
	require.NoError(t, err)

	all, err := repo.ListByOwner(context.Background(), "guest:g-1")
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, []string{StageScoring, StageDone}, stages)
}

func TestScoreEngineFailureNothingPersisted(t *testing.T) {
	engine := &stubEngine{err: errors.New("connection refused")}
	engine.err = errors.Join(ErrUpstream, engine.err)
	svc, repo := newTestService(t, engine)

	_, err := svc.Score(context.Background(), "guest:g-1", ScoreInput{
		FileKey:        "ab12cd34ef56ab12-0003",
		ResumeText:     "text",
		JobDescription: "desc",
	})
	require.ErrorIs(t, err, ErrUpstream)

	all, err := repo.ListByOwner(context.Background(), "guest:g-1")
	require.NoError(t, err)
	assert.Empty(t, all, "engine failure must not persist a score")
}

func TestScoreUnknownFileKeyIsNotFound(t *testing.T) {
	engine := &stubEngine{}
	svc, _ := newTestService(t, engine)

	_, err := svc.Score(context.Background(), "guest:g-1", ScoreInput{
		FileKey:        "0000000000000000-none",
		JobDescription: "desc",
	})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, engine.calls)
}
