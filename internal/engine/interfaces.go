package engine

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"contentops/internal/domain"
	"contentops/internal/pipeline"
	"contentops/internal/stream"
)

// TelemetrySource fetches a project's trailing search-performance window.
type TelemetrySource interface {
	FetchWindow(ctx context.Context, projectID int64) ([]domain.TelemetryRow, error)
}

// ArtifactStore persists content artifacts.
type ArtifactStore interface {
	Create(ctx context.Context, artifact *domain.ContentArtifact) (int64, error)
	Get(ctx context.Context, id int64) (*domain.ContentArtifact, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.ContentArtifact, error)
	LatestCompleted(ctx context.Context, projectID int64) (*domain.ContentArtifact, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ArtifactStatus, errorNote *string) error
	UpdateContent(ctx context.Context, id int64, title, body string, wordCount, charCount int) error
	SetExternalRef(ctx context.Context, id int64, ref string) error
}

// InsightStore persists analysis output.
type InsightStore interface {
	CreateBatch(ctx context.Context, insights []domain.Insight) error
	MarkApplied(ctx context.Context, id int64) error
}

// ActivityLog appends audit entries.
type ActivityLog interface {
	Append(ctx context.Context, entry *domain.ActivityLogEntry) error
}

// CreditGate guards paid work against the account balance.
type CreditGate interface {
	Acquire(accountID int64) func()
	Check(ctx context.Context, accountID, cost int64) error
	Debit(ctx context.Context, accountID, cost int64, reason string) (*domain.CreditTransaction, error)
}

// ContentPipeline assembles one content artifact.
type ContentPipeline interface {
	Run(ctx context.Context, req pipeline.Request, emitter *stream.Emitter) (*pipeline.Result, error)
}

// TitleCompleter issues the narrow title-only completion.
type TitleCompleter interface {
	GenerateTitle(ctx context.Context, currentTitle, query string) (string, error)
}

// CMSPublisher pushes a completed artifact to the external CMS.
type CMSPublisher interface {
	Publish(ctx context.Context, artifact *domain.ContentArtifact) (string, error)
}

// EventPublisher broadcasts cycle outcomes. Optional; may be nil.
type EventPublisher interface {
	PublishCycle(ctx context.Context, stats *domain.CycleStats) error
}
