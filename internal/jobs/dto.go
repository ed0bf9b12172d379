package jobs

import "time"

// JobResponse is the outward-facing representation of a saved job.
type JobResponse struct {
	ID          string    `json:"id"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	RedirectURL string    `json:"redirectUrl"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ToResponse converts a saved job to its API shape.
func ToResponse(job Job) JobResponse {
	return JobResponse{
		ID:          job.ID,
		Company:     job.Company,
		Title:       job.Title,
		Location:    job.Location,
		Description: job.Description,
		RedirectURL: job.RedirectURL,
		SubmittedAt: job.SubmittedAt,
	}
}
