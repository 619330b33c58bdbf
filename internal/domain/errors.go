package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Input validation
	ErrTypeRequired = errors.New("log type is required")
	ErrInvalidDate  = errors.New("date must be formatted yyyy-mm-dd")

	// Lookup failures
	ErrLogNotFound  = errors.New("sugar log not found")
	ErrUserNotFound = errors.New("user not found")

	// Optimistic concurrency: gamification state changed between read and write
	ErrStateConflict = errors.New("gamification state modified concurrently")
)
