package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"contentops/internal/domain"
)

type ArtifactStore struct {
	db *sqlx.DB
}

func NewArtifactStore(db *sqlx.DB) *ArtifactStore {
	return &ArtifactStore{db: db}
}

// Create inserts a new artifact row before generation starts, so a crash
// mid-generation still leaves an inspectable partial record.
func (s *ArtifactStore) Create(ctx context.Context, artifact *domain.ContentArtifact) (int64, error) {
	query := `
		INSERT INTO content_artifacts (project_id, title, body, status, word_count, char_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		artifact.ProjectID,
		artifact.Title,
		artifact.Body,
		artifact.Status,
		artifact.WordCount,
		artifact.CharCount,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert artifact: %w", err)
	}

	return id, nil
}

// Get fetches one artifact by id.
func (s *ArtifactStore) Get(ctx context.Context, id int64) (*domain.ContentArtifact, error) {
	var artifact domain.ContentArtifact
	query := `
		SELECT id, project_id, title, body, status, external_ref, word_count,
		       char_count, error_note, created_at, completed_at
		FROM content_artifacts
		WHERE id = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &artifact, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "artifact", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

// ListByProject returns the project's artifacts, newest first.
func (s *ArtifactStore) ListByProject(ctx context.Context, projectID int64) ([]domain.ContentArtifact, error) {
	query := `
		SELECT id, project_id, title, body, status, external_ref, word_count,
		       char_count, error_note, created_at, completed_at
		FROM content_artifacts
		WHERE project_id = $1
		ORDER BY created_at DESC`

	var artifacts []domain.ContentArtifact
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &artifacts, query, projectID)
	return artifacts, err
}

// CountByProject returns the number of artifacts the project owns.
func (s *ArtifactStore) CountByProject(ctx context.Context, projectID int64) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &count,
		"SELECT COUNT(*) FROM content_artifacts WHERE project_id = $1", projectID)
	return count, err
}

// LatestCompleted returns the project's most recently completed artifact, for
// fallback expansion and optimization runs that have no insight reference.
func (s *ArtifactStore) LatestCompleted(ctx context.Context, projectID int64) (*domain.ContentArtifact, error) {
	var artifact domain.ContentArtifact
	query := `
		SELECT id, project_id, title, body, status, external_ref, word_count,
		       char_count, error_note, created_at, completed_at
		FROM content_artifacts
		WHERE project_id = $1 AND status IN ('completed', 'published')
		ORDER BY created_at DESC
		LIMIT 1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &artifact, query, projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Entity: "artifact", ID: projectID}
	}
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}

// UpdateStatus moves the artifact to a new lifecycle status. Transitions are
// forward-only; an invalid transition is rejected here rather than persisted.
func (s *ArtifactStore) UpdateStatus(ctx context.Context, id int64, status domain.ArtifactStatus, errorNote *string) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !current.Status.CanTransition(status) {
		return fmt.Errorf("artifact %d: invalid transition %s -> %s", id, current.Status, status)
	}

	var completedAt *time.Time
	if status == domain.ArtifactCompleted {
		now := time.Now().UTC()
		completedAt = &now
	}

	_, err = GetExecutor(ctx, s.db).ExecContext(ctx, `
		UPDATE content_artifacts
		SET status = $2,
		    error_note = COALESCE($3, error_note),
		    completed_at = COALESCE($4, completed_at)
		WHERE id = $1`,
		id, status, errorNote, completedAt)
	return err
}

// UpdateContent replaces the artifact's generated content fields.
func (s *ArtifactStore) UpdateContent(ctx context.Context, id int64, title, body string, wordCount, charCount int) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		UPDATE content_artifacts
		SET title = $2, body = $3, word_count = $4, char_count = $5
		WHERE id = $1`,
		id, title, body, wordCount, charCount)
	return err
}

// SetExternalRef records the CMS post reference after a successful publish
// and moves the artifact to published.
func (s *ArtifactStore) SetExternalRef(ctx context.Context, id int64, ref string) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		UPDATE content_artifacts
		SET external_ref = $2, status = $3
		WHERE id = $1 AND status = $4`,
		id, ref, domain.ArtifactPublished, domain.ArtifactCompleted)
	return err
}
