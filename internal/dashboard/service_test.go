package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/internal/jobs"
	"ats-backend/internal/resumes"
	"ats-backend/internal/users"
)

func newTestService() (*Service, *resumes.MemoryRepo, *jobs.MemoryRepo) {
	resumeRepo := resumes.NewMemoryRepo()
	jobRepo := jobs.NewMemoryRepo()
	return &Service{
		Resumes: &resumes.Service{Repo: resumeRepo},
		Jobs:    &jobs.Service{Repo: jobRepo},
		Users:   users.NewService(users.NewMemoryRepo()),
	}, resumeRepo, jobRepo
}

func seedResume(t *testing.T, repo *resumes.MemoryRepo, owner string, score int, at time.Time) {
	t.Helper()
	err := repo.Insert(context.Background(), resumes.Resume{
		ID:          fmt.Sprintf("resume-%d-%d", score, at.Unix()),
		OwnerID:     owner,
		FileKey:     fmt.Sprintf("key-%d-%d", score, at.UnixNano()),
		ATSScore:    score,
		SubmittedAt: at,
	})
	require.NoError(t, err)
}

func TestAverageScoreOneDecimal(t *testing.T) {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	list := []resumes.Resume{
		{ATSScore: 40, SubmittedAt: base},
		{ATSScore: 80, SubmittedAt: base.Add(time.Hour)},
		{ATSScore: 60, SubmittedAt: base.Add(2 * time.Hour)},
	}
	assert.Equal(t, 60.0, AverageScore(list))

	assert.Equal(t, 0.0, AverageScore(nil), "empty history reads as zero")
	assert.Equal(t, 33.3, AverageScore([]resumes.Resume{
		{ATSScore: 30}, {ATSScore: 30}, {ATSScore: 40},
	}))
}

func TestOverviewAggregates(t *testing.T) {
	svc, resumeRepo, jobRepo := newTestService()
	owner := "guest:g-1"
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	seedResume(t, resumeRepo, owner, 40, base)
	seedResume(t, resumeRepo, owner, 80, base.Add(time.Hour))
	seedResume(t, resumeRepo, owner, 60, base.Add(2*time.Hour))

	for i := 0; i < 7; i++ {
		require.NoError(t, jobRepo.Insert(context.Background(), jobs.Job{
			ID:          fmt.Sprintf("job-%d", i),
			OwnerID:     owner,
			Company:     fmt.Sprintf("Company %d", i),
			Title:       "Role",
			Location:    "Remote",
			SubmittedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	overview, err := svc.Overview(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, 3, overview.Stats.TotalResumes)
	assert.Equal(t, 7, overview.Stats.TotalJobs)
	assert.Equal(t, 60.0, overview.Stats.AverageScore)
	assert.Equal(t, "Guest", overview.UserName)

	require.Len(t, overview.Stats.ScoreSeries, 3)
	assert.Equal(t, 40, overview.Stats.ScoreSeries[0].ATSScore, "series is chronological")
	assert.Equal(t, 60, overview.Stats.ScoreSeries[2].ATSScore)

	require.Len(t, overview.LatestJobs, 5)
	assert.Equal(t, "Company 6", overview.LatestJobs[0].Company, "latest jobs are most-recent-first")
	assert.Equal(t, "Company 2", overview.LatestJobs[4].Company)
	assert.Len(t, overview.Jobs, 7, "full history is still returned")
}

func TestOverviewEmptyUser(t *testing.T) {
	svc, _, _ := newTestService()

	overview, err := svc.Overview(context.Background(), "guest:g-empty")
	require.NoError(t, err)

	assert.Zero(t, overview.Stats.TotalResumes)
	assert.Zero(t, overview.Stats.TotalJobs)
	assert.Equal(t, 0.0, overview.Stats.AverageScore)
	assert.NotNil(t, overview.Resumes)
	assert.NotNil(t, overview.Jobs)
	assert.Empty(t, overview.LatestJobs)
}

func TestOverviewUsesStoredUserName(t *testing.T) {
	svc, _, _ := newTestService()
	require.NoError(t, svc.Users.UpsertFromAuth(context.Background(), users.User{
		ID:       "google:123",
		Email:    "dev@example.com",
		FullName: "Dev Eloper",
	}))

	overview, err := svc.Overview(context.Background(), "google:123")
	require.NoError(t, err)
	assert.Equal(t, "Dev Eloper", overview.UserName)
}
