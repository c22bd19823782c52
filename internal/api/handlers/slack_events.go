package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack/slackevents"
)

// EventsHandler serves the Events API endpoint. The bot subscribes to no
// events, so only the URL verification handshake needs an answer.
type EventsHandler struct {
	logger logrus.FieldLogger
}

func NewEventsHandler(logger logrus.FieldLogger) *EventsHandler {
	return &EventsHandler{logger: logger}
}

// HandleEvent handles POST /slack/events
func (h *EventsHandler) HandleEvent(c *fiber.Ctx) error {
	body := c.Body()
	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid event payload")
	}

	switch event.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid url_verification payload")
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(challenge.Challenge)
	default:
		h.logger.WithFields(logrus.Fields{
			"type":       event.Type,
			"inner_type": event.InnerEvent.Type,
		}).Debug("Ignoring Slack event")
		return c.SendStatus(fiber.StatusOK)
	}
}
