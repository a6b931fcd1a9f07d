package auth

import "errors"

// Verification errors
var (
	// ErrInvalidToken is the terminal rejection after local verification
	// and the introspection fallback have both failed. Every distinct
	// failure reason (expired, wrong issuer, wrong audience, provider
	// unreachable) collapses into it before crossing the API boundary.
	ErrInvalidToken = errors.New("invalid or expired token")

	ErrMissingSubject = errors.New("token has no subject claim")
	ErrMissingKeyID   = errors.New("token header has no kid")
	ErrUnsupportedAlg = errors.New("unsupported signing algorithm")
	ErrKeyNotFound    = errors.New("no signing key matches token kid")
)
