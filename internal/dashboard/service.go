package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"ats-backend/internal/jobs"
	"ats-backend/internal/resumes"
	"ats-backend/internal/users"
)

const latestJobsCount = 5

// Stats summarizes a user's scoring history.
type Stats struct {
	TotalResumes int          `json:"totalResumes"`
	TotalJobs    int          `json:"totalJobs"`
	AverageScore float64      `json:"averageScore"`
	ScoreSeries  []ScorePoint `json:"scoreSeries"`
}

// ScorePoint is one entry of the chronological score series.
type ScorePoint struct {
	SubmittedAt time.Time `json:"submittedAt"`
	ATSScore    int       `json:"atsScore"`
}

// Overview is the aggregated dashboard payload.
type Overview struct {
	Resumes    []resumes.ResumeResponse `json:"resumes"`
	Jobs       []jobs.JobResponse       `json:"jobs"`
	LatestJobs []jobs.JobResponse       `json:"latestJobs"`
	UserName   string                   `json:"userName"`
	Stats      Stats                    `json:"stats"`
}

// Service aggregates resumes, jobs and identity into one dashboard view.
type Service struct {
	Resumes *resumes.Service
	Jobs    *jobs.Service
	Users   *users.Service
}

// Overview builds the dashboard for a user.
func (s *Service) Overview(ctx context.Context, ownerId string) (Overview, error) {
	resumeList, err := s.Resumes.List(ctx, ownerId)
	if err != nil {
		return Overview{}, fmt.Errorf("list resumes: %w", err)
	}
	jobList, err := s.Jobs.List(ctx, ownerId)
	if err != nil {
		return Overview{}, fmt.Errorf("list jobs: %w", err)
	}

	out := Overview{
		Resumes:    make([]resumes.ResumeResponse, 0, len(resumeList)),
		Jobs:       make([]jobs.JobResponse, 0, len(jobList)),
		LatestJobs: make([]jobs.JobResponse, 0, latestJobsCount),
		UserName:   s.userName(ctx, ownerId),
		Stats: Stats{
			TotalResumes: len(resumeList),
			TotalJobs:    len(jobList),
			AverageScore: AverageScore(resumeList),
			ScoreSeries:  make([]ScorePoint, 0, len(resumeList)),
		},
	}

	for _, r := range resumeList {
		out.Resumes = append(out.Resumes, resumes.ToResponse(r))
		out.Stats.ScoreSeries = append(out.Stats.ScoreSeries, ScorePoint{
			SubmittedAt: r.SubmittedAt,
			ATSScore:    r.ATSScore,
		})
	}

	for i, j := range jobList {
		resp := jobs.ToResponse(j)
		out.Jobs = append(out.Jobs, resp)
		if i < latestJobsCount {
			out.LatestJobs = append(out.LatestJobs, resp)
		}
	}

	return out, nil
}

// AverageScore is the mean ATS score rounded to one decimal, 0 when empty.
func AverageScore(list []resumes.Resume) float64 {
	if len(list) == 0 {
		return 0
	}
	sum := 0
	for _, r := range list {
		sum += r.ATSScore
	}
	avg := float64(sum) / float64(len(list))
	return math.Round(avg*10) / 10
}

func (s *Service) userName(ctx context.Context, ownerId string) string {
	user, err := s.Users.GetByID(ctx, ownerId)
	if err != nil {
		return users.User{ID: ownerId}.DisplayName()
	}
	return user.DisplayName()
}
