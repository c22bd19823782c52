package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RequestLoggerConfig holds request logging configuration
type RequestLoggerConfig struct {
	Logger    logrus.FieldLogger
	SkipPaths []string // Paths to skip, e.g. health probes
}

// RequestLogger logs one line per request. Bodies are never logged.
func RequestLogger(config RequestLoggerConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, skipPath := range config.SkipPaths {
			if strings.HasPrefix(path, skipPath) {
				return c.Next()
			}
		}

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		entry := config.Logger.WithFields(logrus.Fields{
			"method":      c.Method(),
			"path":        path,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.IP(),
		})
		switch {
		case err != nil || status >= fiber.StatusInternalServerError:
			entry.WithError(err).Warn("Request failed")
		default:
			entry.Debug("Request handled")
		}

		return err
	}
}
