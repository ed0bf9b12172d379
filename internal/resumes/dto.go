package resumes

import "time"

// ResumeResponse is the outward-facing representation of a resume record.
type ResumeResponse struct {
	ID          string    `json:"id"`
	FileKey     string    `json:"fileKey"`
	Description string    `json:"description"`
	ATSScore    int       `json:"atsScore"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ToResponse converts a record to its API shape.
func ToResponse(r Resume) ResumeResponse {
	return ResumeResponse{
		ID:          r.ID,
		FileKey:     r.FileKey,
		Description: r.Description,
		ATSScore:    r.ATSScore,
		SubmittedAt: r.SubmittedAt,
	}
}
