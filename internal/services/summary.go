package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agentx/slack-summarizer/internal/providers"
)

// ErrNoChoices is returned when the completion endpoint answers without choices.
var ErrNoChoices = errors.New("completion returned no choices")

// SummaryOptions configures the summarization request.
type SummaryOptions struct {
	Model              string
	MaxTokens          int
	Temperature        float32
	CompanyName        string
	CompanyDescription string
	Window             time.Duration
	StripTags          bool
}

type SummaryService struct {
	completer Completer
	opts      SummaryOptions
	logger    logrus.FieldLogger
}

func NewSummaryService(completer Completer, opts SummaryOptions, logger logrus.FieldLogger) *SummaryService {
	return &SummaryService{
		completer: completer,
		opts:      opts,
		logger:    logger,
	}
}

// Summarize sends the transcript to the completion endpoint in one
// synchronous request and returns the first choice's text.
func (s *SummaryService) Summarize(ctx context.Context, transcript string) (string, error) {
	req := s.buildRequest(transcript)

	s.logger.WithFields(logrus.Fields{
		"model":         req.Model,
		"max_tokens":    s.opts.MaxTokens,
		"temperature":   s.opts.Temperature,
		"prompt_length": len(req.Messages[0].Content),
	}).Info("Sending conversation text for summarization")

	resp, err := s.completer.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	summary := resp.Choices[0].Message.Content
	if s.opts.StripTags {
		summary = ExtractSummary(summary)
	}

	s.logger.WithFields(logrus.Fields{
		"completion_tokens": resp.Usage.CompletionTokens,
		"total_tokens":      resp.Usage.TotalTokens,
	}).Info("Successfully generated summary")

	return summary, nil
}

func (s *SummaryService) buildRequest(transcript string) providers.CompletionRequest {
	prompt := BuildSummaryPrompt(s.opts.CompanyName, s.opts.CompanyDescription, s.opts.Window, transcript)
	return providers.CompletionRequest{
		Model: s.opts.Model,
		Messages: []providers.Message{
			{Role: providers.RoleSystem, Content: prompt},
		},
		Temperature: floatPtr(s.opts.Temperature),
		MaxTokens:   intPtr(s.opts.MaxTokens),
	}
}

func floatPtr(f float32) *float32 { return &f }
func intPtr(i int) *int           { return &i }
