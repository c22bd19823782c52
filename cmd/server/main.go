package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agentx/slack-summarizer/internal/api"
	"github.com/agentx/slack-summarizer/internal/api/handlers"
	"github.com/agentx/slack-summarizer/internal/audit"
	"github.com/agentx/slack-summarizer/internal/config"
	"github.com/agentx/slack-summarizer/internal/database"
	"github.com/agentx/slack-summarizer/internal/logging"
	"github.com/agentx/slack-summarizer/internal/providers/openai"
	"github.com/agentx/slack-summarizer/internal/repository/postgres"
	"github.com/agentx/slack-summarizer/internal/services"
	"github.com/agentx/slack-summarizer/internal/slackapi"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("Slack summarizer stopped")
	}
}

// run owns every resource it opens, so deferred cleanup happens before main
// exits on error.
func run(cfg *config.Config, logger *logrus.Logger) error {
	// Audit trail goes to Postgres when enabled, otherwise to the log
	auditService := audit.NewService(nil, logger)
	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := database.NewConnection(ctx, cfg.Database)
		cancel()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.RunMigrations(cfg.Database); err != nil {
			return err
		}
		auditService = audit.NewService(postgres.NewInvocationRepository(db.DB), logger)
	}

	slackClient, err := slackapi.NewClient(cfg.Slack.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create Slack client: %w", err)
	}

	provider, err := openai.NewProvider(cfg.Completion)
	if err != nil {
		return fmt.Errorf("failed to create completion provider: %w", err)
	}
	if err := provider.ValidateConfig(); err != nil {
		return fmt.Errorf("invalid %s provider configuration: %w", provider.Name(), err)
	}

	// Initialize services
	svc, err := services.NewServices(cfg, services.Dependencies{
		History:   slackClient,
		Threads:   slackClient,
		Users:     slackClient,
		Sender:    slackClient,
		Completer: provider,
		Audit:     auditService,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	responseClient := &http.Client{Timeout: 30 * time.Second}
	commands := handlers.NewSlashCommandHandler(svc.Summarize, func(responseURL string) services.Responder {
		return slackapi.NewResponseURLResponder(responseURL, cfg.Slack.ResponseType, responseClient)
	}, logger)

	app := api.NewApp(logger)
	api.SetupRoutes(app, commands, cfg, logger)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			logger.WithError(err).Warn("Server shutdown failed")
		}
	}()

	logger.WithFields(logrus.Fields{
		"addr":  cfg.Server.Addr(),
		"model": cfg.Completion.Model,
		"audit": cfg.Database.Enabled,
	}).Info("Slack summarizer starting")
	listenErr := app.Listen(cfg.Server.Addr())

	// Let in-flight summaries finish responding before the audit DB closes
	commands.Wait()

	if listenErr != nil {
		return fmt.Errorf("failed to start server: %w", listenErr)
	}
	return nil
}
