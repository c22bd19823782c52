package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// CommandRateLimit limits slash commands per Slack user. Slack displays the
// body of a 200 response to the invoking user, so the limit is reported that
// way instead of with a 429.
func CommandRateLimit(max int, expiration time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			if userID := c.FormValue("user_id"); userID != "" {
				return fmt.Sprintf("command:user:%s", userID)
			}
			return fmt.Sprintf("command:ip:%s", c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).SendString("You're summarizing too quickly. Please wait a minute and try again.")
		},
	})
}
