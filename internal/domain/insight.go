package domain

import "time"

// InsightKind classifies what a telemetry row revealed.
type InsightKind string

const (
	KindLinkMagnet       InsightKind = "link_magnet"
	KindLowCTR           InsightKind = "low_ctr"
	KindStrikingDistance InsightKind = "striking_distance"
	KindContentGap       InsightKind = "content_gap"
)

// Action is one operation from the engine's fixed action vocabulary.
type Action string

const (
	ActionInternalLinking  Action = "internal_linking"
	ActionMetaOptimization Action = "meta_optimization"
	ActionContentExpansion Action = "content_expansion"
	ActionCreateNew        Action = "create_new"
)

// ActionForKind maps every insight kind to its suggested action. The mapping
// is total: an unknown kind falls back to create_new.
func ActionForKind(kind InsightKind) Action {
	switch kind {
	case KindLinkMagnet:
		return ActionInternalLinking
	case KindLowCTR:
		return ActionMetaOptimization
	case KindStrikingDistance:
		return ActionContentExpansion
	default:
		return ActionCreateNew
	}
}

// InsightStatus tracks the pending -> applied transition. Monotonic, no
// reverse transition.
type InsightStatus string

const (
	InsightPending InsightStatus = "pending"
	InsightApplied InsightStatus = "applied"
)

// Insight is a scored improvement candidate derived from telemetry.
type Insight struct {
	ID              int64         `db:"id" json:"id"`
	ProjectID       int64         `db:"project_id" json:"projectId"`
	ArtifactID      *int64        `db:"artifact_id" json:"artifactId,omitempty"`
	Kind            InsightKind   `db:"kind" json:"kind"`
	Priority        float64       `db:"priority" json:"priority"`
	Query           string        `db:"query" json:"query"`
	SuggestedAction Action        `db:"suggested_action" json:"suggestedAction"`
	Status          InsightStatus `db:"status" json:"status"`
	CreatedAt       time.Time     `db:"created_at" json:"createdAt"`
}

// TelemetryRow is one search-performance record from the telemetry window.
type TelemetryRow struct {
	Query       string
	Impressions int
	Position    float64
	CTR         float64
}
