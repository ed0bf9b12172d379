package scoring

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resume not found")
	ErrUpstream     = errors.New("scoring engine unavailable")
)
