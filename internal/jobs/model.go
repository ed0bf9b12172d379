package jobs

import "time"

// Job is a saved job listing owned by a user. Duplicates are permitted; a
// user may save the same listing twice.
type Job struct {
	ID          string
	OwnerID     string
	Company     string
	Title       string
	Location    string
	Description string
	RedirectURL string
	SubmittedAt time.Time
}
