package audit

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/agentx/slack-summarizer/internal/models"
	"github.com/agentx/slack-summarizer/internal/repository"
)

// ErrNotPersisted is returned by Recent when no database is configured.
var ErrNotPersisted = errors.New("audit records are not persisted")

// Service records the outcome of every /summarize invocation. Records go to
// the repository when one is configured and to the log otherwise.
type Service struct {
	repo   repository.InvocationRepository
	logger logrus.FieldLogger
}

// NewService creates a new audit service. repo may be nil.
func NewService(repo repository.InvocationRepository, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Record stores record. Failures are logged and otherwise ignored.
func (s *Service) Record(ctx context.Context, record models.InvocationRecord) {
	fields := logrus.Fields{
		"invocation_id": record.ID.String(),
		"user_id":       record.UserID,
		"channel_id":    record.ChannelID,
		"outcome":       record.Outcome,
		"message_count": record.MessageCount,
		"duration_ms":   record.DurationMs,
	}

	if s.repo == nil {
		s.logger.WithFields(fields).Info("Command invocation")
		return
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.WithFields(fields).WithError(err).Error("Failed to store audit record")
	}
}

// Recent returns the latest persisted records.
func (s *Service) Recent(ctx context.Context, limit int) ([]*models.InvocationRecord, error) {
	if s.repo == nil {
		return nil, ErrNotPersisted
	}
	return s.repo.ListRecent(ctx, limit)
}
