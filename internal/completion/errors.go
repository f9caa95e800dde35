package completion

import "errors"

var (
	// ErrRateLimited marks a quota or rate-limit rejection from the upstream
	// API. Transient; the caller should back off.
	ErrRateLimited = errors.New("completion: rate limited")

	// ErrUnauthorized marks invalid or missing API credentials. A
	// configuration fault, not user-recoverable.
	ErrUnauthorized = errors.New("completion: unauthorized")
)
