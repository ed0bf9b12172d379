package scoring

import "context"

// Engine evaluates a resume against a job description.
type Engine interface {
	Score(ctx context.Context, resumeText, jobDescription string) (Breakdown, error)
}
