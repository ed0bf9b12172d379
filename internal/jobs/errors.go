package jobs

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUpstream      = errors.New("job search unavailable")
	ErrNotConfigured = errors.New("job search not configured")
)
