package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/agentx/slack-summarizer/internal/api/middleware"
)

// NewApp creates the fiber app with the shared middleware stack
func NewApp(logger logrus.FieldLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Slack Summarizer",
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(middleware.RequestLoggerConfig{
		Logger:    logger,
		SkipPaths: []string{"/api/v1/health"},
	}))

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
