package repository

import (
	"context"

	"github.com/agentx/slack-summarizer/internal/models"
)

// InvocationRepository defines audit storage for command invocations
type InvocationRepository interface {
	Create(ctx context.Context, record models.InvocationRecord) error
	ListRecent(ctx context.Context, limit int) ([]*models.InvocationRecord, error)
}
