package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/agentx/slack-summarizer/internal/api/handlers"
	"github.com/agentx/slack-summarizer/internal/api/middleware"
	"github.com/agentx/slack-summarizer/internal/config"
)

// SetupRoutes configures all routes
func SetupRoutes(app *fiber.App, commands *handlers.SlashCommandHandler, cfg *config.Config, logger logrus.FieldLogger) {
	// Slack endpoints, all signed
	slackGroup := app.Group("/slack", middleware.SlackSignature(cfg.Slack.SigningSecret, logger))

	commandChain := []fiber.Handler{}
	if cfg.RateLimit.CommandsPerMinute > 0 {
		commandChain = append(commandChain, middleware.CommandRateLimit(cfg.RateLimit.CommandsPerMinute, time.Minute))
	}
	commandChain = append(commandChain, commands.HandleCommand)
	slackGroup.Post("/commands", commandChain...)

	events := handlers.NewEventsHandler(logger)
	slackGroup.Post("/events", events.HandleEvent)

	// Install landing pages
	app.Get("/install", handlers.Install)
	app.Get("/oauth_redirect", handlers.OAuthRedirect)

	// Health check
	api := app.Group("/api/v1")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "slack-summarizer",
		})
	})
}
