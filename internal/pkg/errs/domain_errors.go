package errs

import "errors"

// Error kinds shared by the booking engine. Domain sentinels are marked with one of
// these so transport layers can classify failures with errors.Is.
var (
	// Expected business outcomes
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrNoCapacity          = errors.New("no available slots")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidState        = errors.New("invalid state")
	ErrPolicyWindowExpired = errors.New("cancellation window expired")
	ErrUnverified          = errors.New("lot is not bookable")
	ErrTypeMismatch        = errors.New("vehicle type does not match spot type")

	// Retryable
	ErrRetryableTimeout = errors.New("operation timed out, retry later")

	// Correctness incident: an inventory invariant would be violated
	ErrConsistencyFault = errors.New("consistency fault")

	// Idempotency
	ErrIdempotencyInProgress = errors.New("idempotency in progress")
	ErrIdempotencyMismatch   = errors.New("idempotency key reused with a different request")
)
