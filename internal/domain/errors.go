package domain

import "fmt"

// NotFoundError reports a missing project, artifact, or insight.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// InsufficientCreditsError rejects paid work before any billable call is made.
// Required is the amount the caller must top up to.
type InsufficientCreditsError struct {
	AccountID int64
	Required  int64
	Balance   int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("account %d has %d credits, %d required", e.AccountID, e.Balance, e.Required)
}

// GenerationError means the language-model call failed or returned output
// that did not validate against the expected schema. The artifact that
// triggered it is marked failed; the cycle does not retry.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
