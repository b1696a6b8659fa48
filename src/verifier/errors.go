package verifier

import "errors"

// Failure taxonomy for a verification round trip. Handlers pick the
// user-facing message off the category, never the wrapped detail.
var (
	// ErrValidation means the claim was empty after trimming.
	ErrValidation = errors.New("claim is empty")

	// ErrNetwork covers connection failures and timeouts against the
	// external search or inference endpoints.
	ErrNetwork = errors.New("verification service unreachable")

	// ErrSchema means an upstream response was missing required fields
	// or carried values outside the recognized sets.
	ErrSchema = errors.New("unexpected response from verification service")
)
