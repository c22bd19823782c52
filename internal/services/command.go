package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/agentx/slack-summarizer/internal/models"
)

// SummarizeCommandName is the slash command this bot answers.
const SummarizeCommandName = "/summarize"

const (
	msgNoMessages     = "No messages found in the past %s or an error occurred."
	msgSummaryFailed  = "An error occurred while generating the summary. Check your DM for details."
	msgSummaryErrorDM = "Sorry, I was unable to summarize the conversation. Error: %v"
	msgSummarySent    = "I've sent a summary of the last %s (including threaded replies) to <@%s> via DM."
)

// SummarizeCommand runs one /summarize invocation end to end: fetch, format,
// summarize, deliver by DM, respond in channel. Every path responds exactly
// once.
type SummarizeCommand struct {
	fetcher    *HistoryFetcher
	summarizer *SummaryService
	sender     MessageSender
	audit      AuditRecorder
	logger     logrus.FieldLogger
	now        func() time.Time
}

func NewSummarizeCommand(fetcher *HistoryFetcher, summarizer *SummaryService, sender MessageSender, audit AuditRecorder, logger logrus.FieldLogger) *SummarizeCommand {
	return &SummarizeCommand{
		fetcher:    fetcher,
		summarizer: summarizer,
		sender:     sender,
		audit:      audit,
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes the invocation. The caller must already have acknowledged the
// command to Slack.
func (c *SummarizeCommand) Run(ctx context.Context, inv models.Invocation, responder Responder) models.Outcome {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	started := c.now()
	logger := c.logger.WithFields(logrus.Fields{
		"invocation_id": inv.ID.String(),
		"user_id":       inv.UserID,
		"channel_id":    inv.ChannelID,
	})
	logger.Info("Received /summarize command")

	record := models.InvocationRecord{
		ID:        inv.ID,
		UserID:    inv.UserID,
		ChannelID: inv.ChannelID,
		CreatedAt: started,
	}
	finish := func(outcome models.Outcome, err error) models.Outcome {
		record.Outcome = outcome
		if err != nil {
			record.ErrorMessage = err.Error()
		}
		record.DurationMs = c.now().Sub(started).Milliseconds()
		if c.audit != nil {
			c.audit.Record(ctx, record)
		}
		return outcome
	}

	window := DescribeWindow(c.fetcher.Lookback())

	messages := c.fetcher.Fetch(ctx, inv.ChannelID, started)
	record.MessageCount = len(messages)
	if len(messages) == 0 {
		logger.Warn("No messages to summarize")
		c.respond(ctx, logger, responder, fmt.Sprintf(msgNoMessages, window))
		return finish(models.OutcomeEmptyHistory, nil)
	}

	// One line per message, so a non-empty history never yields an empty
	// transcript.
	transcript := FormatTranscript(messages)

	summary, err := c.summarizer.Summarize(ctx, transcript)
	if err != nil {
		logger.WithError(err).Error("Error during summary generation")
		c.deliver(ctx, logger, inv.UserID, fmt.Sprintf(msgSummaryErrorDM, err))
		c.respond(ctx, logger, responder, msgSummaryFailed)
		return finish(models.OutcomeFailed, err)
	}

	c.deliver(ctx, logger, inv.UserID, summary)
	c.respond(ctx, logger, responder, fmt.Sprintf(msgSummarySent, window, inv.UserID))
	logger.Info("Summary DM sent and command handling completed")
	return finish(models.OutcomeSummarized, nil)
}

// deliver sends a DM; failures are logged and not surfaced.
func (c *SummarizeCommand) deliver(ctx context.Context, logger logrus.FieldLogger, userID, text string) {
	if err := c.sender.SendDirectMessage(ctx, userID, text); err != nil {
		logger.WithError(err).Error("Error sending DM to user")
		return
	}
	logger.Info("Sent DM to user")
}

func (c *SummarizeCommand) respond(ctx context.Context, logger logrus.FieldLogger, responder Responder, text string) {
	if responder == nil {
		return
	}
	if err := responder.Respond(ctx, text); err != nil {
		logger.WithError(err).Error("Error responding to slash command")
	}
}
