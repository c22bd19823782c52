package services

import (
	"context"

	"github.com/agentx/slack-summarizer/internal/models"
	"github.com/agentx/slack-summarizer/internal/providers"
)

// HistoryReader reads top-level channel messages not older than oldest.
type HistoryReader interface {
	History(ctx context.Context, channelID, oldest string, limit int) ([]models.RawMessage, error)
}

// ThreadReader reads a thread. The first returned message is the parent.
type ThreadReader interface {
	Replies(ctx context.Context, channelID, threadTS, oldest string, limit int) ([]models.RawMessage, error)
}

// UserResolver looks up a user's profile names.
type UserResolver interface {
	LookupUser(ctx context.Context, userID string) (models.UserProfile, error)
}

// MessageSender delivers a direct message to a user.
type MessageSender interface {
	SendDirectMessage(ctx context.Context, userID, text string) error
}

// Completer submits a chat completion request. providers.Provider satisfies it.
type Completer interface {
	Complete(ctx context.Context, req providers.CompletionRequest) (*providers.CompletionResponse, error)
}

// Responder answers the invoking user in the channel the command came from.
type Responder interface {
	Respond(ctx context.Context, text string) error
}

// AuditRecorder stores the outcome of an invocation.
type AuditRecorder interface {
	Record(ctx context.Context, record models.InvocationRecord)
}
