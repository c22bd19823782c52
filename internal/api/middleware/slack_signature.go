package middleware

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

// ErrInvalidSignature is returned when a request does not carry a valid
// Slack signature.
var ErrInvalidSignature = errors.New("invalid slack signature")

// SlackSignature rejects requests that were not signed with the app's signing
// secret. Handlers behind it may trust the body.
func SlackSignature(signingSecret string, logger logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := http.Header{}
		for key, values := range c.GetReqHeaders() {
			for _, v := range values {
				header.Add(key, v)
			}
		}

		verifier, err := slack.NewSecretsVerifier(header, signingSecret)
		if err != nil {
			logger.WithError(err).WithField("path", c.Path()).Warn("Rejected unsigned Slack request")
			return fiber.NewError(fiber.StatusUnauthorized, ErrInvalidSignature.Error())
		}
		if _, err := verifier.Write(c.Body()); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, ErrInvalidSignature.Error())
		}
		if err := verifier.Ensure(); err != nil {
			logger.WithError(err).WithField("path", c.Path()).Warn("Rejected Slack request with bad signature")
			return fiber.NewError(fiber.StatusUnauthorized, ErrInvalidSignature.Error())
		}

		return c.Next()
	}
}
