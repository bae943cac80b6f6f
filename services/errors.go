package services

import "errors"

// Error taxonomy shared by every service. "Absent" and "not owned by caller"
// both map to ErrNotFound so existence is never leaked to non-owners.
var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrLimitExceeded  = errors.New("limit exceeded")
	ErrAnalysisFailed = errors.New("analysis failed")
)
