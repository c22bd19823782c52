package models

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is the terminal state of one /summarize invocation.
type Outcome string

const (
	OutcomeSummarized   Outcome = "summarized"
	OutcomeEmptyHistory Outcome = "empty_history"
	OutcomeFailed       Outcome = "failed"
)

// Invocation identifies a single slash command request.
type Invocation struct {
	ID          uuid.UUID
	UserID      string
	ChannelID   string
	ResponseURL string
}

// InvocationRecord is the audit row written once per invocation. It never
// carries message text or summaries.
type InvocationRecord struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	ChannelID    string    `json:"channel_id" db:"channel_id"`
	Outcome      Outcome   `json:"outcome" db:"outcome"`
	MessageCount int       `json:"message_count" db:"message_count"`
	ErrorMessage string    `json:"error_message,omitempty" db:"error_message"`
	DurationMs   int64     `json:"duration_ms" db:"duration_ms"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
