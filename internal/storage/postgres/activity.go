package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"contentops/internal/domain"
)

// ActivityStore appends audit entries. There is deliberately no update or
// delete path.
type ActivityStore struct {
	db *sqlx.DB
}

func NewActivityStore(db *sqlx.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

func (s *ActivityStore) Append(ctx context.Context, entry *domain.ActivityLogEntry) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO activity_log (project_id, action, message, details)
		VALUES ($1, $2, $3, $4)`,
		entry.ProjectID,
		entry.Action,
		entry.Message,
		entry.Details,
	)
	return err
}

// ListByProject returns the newest entries first, capped at limit.
func (s *ActivityStore) ListByProject(ctx context.Context, projectID int64, limit int) ([]domain.ActivityLogEntry, error) {
	query := `
		SELECT id, project_id, action, message, details, created_at
		FROM activity_log
		WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	var entries []domain.ActivityLogEntry
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &entries, query, projectID, limit)
	return entries, err
}
