package services

import (
	"github.com/sirupsen/logrus"

	"github.com/agentx/slack-summarizer/internal/config"
)

// Dependencies are the external collaborators the services are built on.
type Dependencies struct {
	History   HistoryReader
	Threads   ThreadReader
	Users     UserResolver
	Sender    MessageSender
	Completer Completer
	Audit     AuditRecorder
}

// Services holds all service instances
type Services struct {
	Fetcher   *HistoryFetcher
	Summary   *SummaryService
	Summarize *SummarizeCommand
}

// NewServices creates all service instances from the process configuration
func NewServices(cfg *config.Config, deps Dependencies, logger *logrus.Logger) (*Services, error) {
	loc, err := cfg.History.Location()
	if err != nil {
		return nil, err
	}

	fetcher := NewHistoryFetcher(deps.History, deps.Threads, deps.Users, HistoryOptions{
		Lookback:  cfg.History.Lookback,
		PageLimit: cfg.History.PageLimit,
		Location:  loc,
	}, logger)

	summary := NewSummaryService(deps.Completer, SummaryOptions{
		Model:              cfg.Completion.Model,
		MaxTokens:          cfg.Completion.MaxTokens,
		Temperature:        cfg.Completion.Temperature,
		CompanyName:        cfg.Summary.CompanyName,
		CompanyDescription: cfg.Summary.CompanyDescription,
		Window:             cfg.History.Lookback,
		StripTags:          cfg.Summary.StripTags,
	}, logger)

	return &Services{
		Fetcher:   fetcher,
		Summary:   summary,
		Summarize: NewSummarizeCommand(fetcher, summary, deps.Sender, deps.Audit, logger),
	}, nil
}
