package domain

import "time"

// CycleStats holds the outcome of one operations cycle.
type CycleStats struct {
	ProjectID   int64
	Action      Action
	InsightID   *int64
	ArtifactID  *int64
	Generated   bool
	Published   bool
	CreditsUsed int64
	Duration    time.Duration
}
