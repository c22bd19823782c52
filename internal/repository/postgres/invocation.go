package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/agentx/slack-summarizer/internal/models"
	"github.com/agentx/slack-summarizer/internal/repository"
)

// InvocationRepository implements repository.InvocationRepository using PostgreSQL
type InvocationRepository struct {
	db *sqlx.DB
}

// NewInvocationRepository creates a new PostgreSQL invocation repository
func NewInvocationRepository(db *sqlx.DB) repository.InvocationRepository {
	return &InvocationRepository{db: db}
}

// Create inserts one invocation record
func (r *InvocationRepository) Create(ctx context.Context, record models.InvocationRecord) error {
	query := `
		INSERT INTO command_invocations (id, user_id, channel_id, outcome, message_count, error_message, duration_ms, created_at)
		VALUES (:id, :user_id, :channel_id, :outcome, :message_count, :error_message, :duration_ms, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, record)
	return err
}

// ListRecent returns the newest records first
func (r *InvocationRepository) ListRecent(ctx context.Context, limit int) ([]*models.InvocationRecord, error) {
	var records []*models.InvocationRecord
	query := `
		SELECT id, user_id, channel_id, outcome, message_count, error_message, duration_ms, created_at
		FROM command_invocations
		ORDER BY created_at DESC
		LIMIT $1
	`

	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, err
	}
	return records, nil
}
