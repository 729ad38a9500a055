package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrRateLimited           = errors.New("rate limited")
	ErrQuotaExceeded         = errors.New("prediction quota exceeded")
	ErrInsufficientData      = errors.New("insufficient stats data")
	ErrUnresolvedTeam        = errors.New("unresolved team")
	ErrConfiguration         = errors.New("model configuration invalid")
	ErrUpstreamFetch         = errors.New("upstream fetch failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
