package resumes

import "time"

// Resume represents an uploaded résumé record owned by a user.
type Resume struct {
	ID          string
	OwnerID     string
	FileKey     string
	Description string
	ATSScore    int
	SubmittedAt time.Time
}
