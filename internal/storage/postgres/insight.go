package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"contentops/internal/domain"
)

type InsightStore struct {
	db *sqlx.DB
}

func NewInsightStore(db *sqlx.DB) *InsightStore {
	return &InsightStore{db: db}
}

// CreateBatch inserts one analysis run's insights and fills in their ids.
func (s *InsightStore) CreateBatch(ctx context.Context, insights []domain.Insight) error {
	if len(insights) == 0 {
		return nil
	}

	query := `
		INSERT INTO insights (project_id, artifact_id, kind, priority, query, suggested_action, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	exec := GetExecutor(ctx, s.db)
	for i := range insights {
		err := exec.QueryRowxContext(ctx, query,
			insights[i].ProjectID,
			insights[i].ArtifactID,
			insights[i].Kind,
			insights[i].Priority,
			insights[i].Query,
			insights[i].SuggestedAction,
			insights[i].Status,
		).Scan(&insights[i].ID)
		if err != nil {
			return fmt.Errorf("insert insight %d: %w", i, err)
		}
	}

	return nil
}

// MarkApplied moves a pending insight to applied. The transition is
// monotonic: an already-applied insight is left untouched.
func (s *InsightStore) MarkApplied(ctx context.Context, id int64) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		UPDATE insights
		SET status = $2
		WHERE id = $1 AND status = $3`,
		id, domain.InsightApplied, domain.InsightPending)
	return err
}

// ListPending returns the project's pending insights in descending priority.
func (s *InsightStore) ListPending(ctx context.Context, projectID int64) ([]domain.Insight, error) {
	query := `
		SELECT id, project_id, artifact_id, kind, priority, query, suggested_action, status, created_at
		FROM insights
		WHERE project_id = $1 AND status = 'pending'
		ORDER BY priority DESC, created_at`

	var insights []domain.Insight
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &insights, query, projectID)
	return insights, err
}
