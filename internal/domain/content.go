package domain

import (
	"encoding/json"
	"time"
)

// ArtifactStatus enumerates the forward-only lifecycle of a content artifact.
type ArtifactStatus string

const (
	ArtifactDraft      ArtifactStatus = "draft"
	ArtifactGenerating ArtifactStatus = "generating"
	ArtifactCompleted  ArtifactStatus = "completed"
	ArtifactFailed     ArtifactStatus = "failed"
	ArtifactPublished  ArtifactStatus = "published"
)

// CanTransition reports whether status may move to next. Statuses only move
// forward; failed and published are terminal.
func (s ArtifactStatus) CanTransition(next ArtifactStatus) bool {
	switch s {
	case ArtifactDraft:
		return next == ArtifactGenerating || next == ArtifactCompleted || next == ArtifactFailed
	case ArtifactGenerating:
		return next == ArtifactCompleted || next == ArtifactFailed
	case ArtifactCompleted:
		return next == ArtifactPublished
	default:
		return false
	}
}

// ContentArtifact is a piece of content under management.
type ContentArtifact struct {
	ID          int64          `db:"id" json:"id"`
	ProjectID   int64          `db:"project_id" json:"projectId"`
	Title       string         `db:"title" json:"title"`
	Body        string         `db:"body" json:"body"`
	Status      ArtifactStatus `db:"status" json:"status"`
	ExternalRef *string        `db:"external_ref" json:"externalRef,omitempty"`
	WordCount   int            `db:"word_count" json:"wordCount"`
	CharCount   int            `db:"char_count" json:"charCount"`
	ErrorNote   *string        `db:"error_note" json:"errorNote,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	CompletedAt *time.Time     `db:"completed_at" json:"completedAt,omitempty"`
}

// ActivityAction tags an activity log entry.
type ActivityAction string

const (
	ActivityScan     ActivityAction = "scan"
	ActivityPlan     ActivityAction = "plan"
	ActivityGenerate ActivityAction = "generate"
	ActivityUpdate   ActivityAction = "update"
	ActivityOptimize ActivityAction = "optimize"
	ActivityPublish  ActivityAction = "publish"
	ActivityError    ActivityAction = "error"
)

// ActivityLogEntry is an append-only audit record. Never mutated or deleted.
type ActivityLogEntry struct {
	ID        int64           `db:"id" json:"id"`
	ProjectID int64           `db:"project_id" json:"projectId"`
	Action    ActivityAction  `db:"action" json:"action"`
	Message   string          `db:"message" json:"message"`
	Details   json.RawMessage `db:"details" json:"details,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

// CreditTransaction is an append-only ledger row. Balance is the account
// balance after the transaction applied.
type CreditTransaction struct {
	ID        int64     `db:"id" json:"id"`
	AccountID int64     `db:"account_id" json:"accountId"`
	Amount    int64     `db:"amount" json:"amount"`
	Reason    string    `db:"reason" json:"reason"`
	Balance   int64     `db:"balance" json:"balance"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
