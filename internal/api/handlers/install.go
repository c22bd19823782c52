package handlers

import "github.com/gofiber/fiber/v2"

// Install handles GET /install
func Install(c *fiber.Ctx) error {
	return c.SendString("Add to Slack button here")
}

// OAuthRedirect handles GET /oauth_redirect. The app is installed with a
// fixed bot token, so there is no code exchange.
func OAuthRedirect(c *fiber.Ctx) error {
	return c.SendString("OAuth flow completed")
}
