package handlers

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/agentx/slack-summarizer/internal/models"
	"github.com/agentx/slack-summarizer/internal/services"
)

const (
	msgUnknownCommand = "Unknown command"
	msgMissingPayload = "This command is missing required fields."
)

// CommandRunner executes an acknowledged slash command.
type CommandRunner interface {
	Run(ctx context.Context, inv models.Invocation, responder services.Responder) models.Outcome
}

// ResponderFactory builds the responder for one command's response_url.
type ResponderFactory func(responseURL string) services.Responder

// SlashCommandHandler acknowledges slash commands and runs them in the
// background. Slack times out acknowledgements after three seconds, which a
// summary never fits in.
type SlashCommandHandler struct {
	runner       CommandRunner
	newResponder ResponderFactory
	logger       logrus.FieldLogger
	inflight     sync.WaitGroup
}

func NewSlashCommandHandler(runner CommandRunner, newResponder ResponderFactory, logger logrus.FieldLogger) *SlashCommandHandler {
	return &SlashCommandHandler{
		runner:       runner,
		newResponder: newResponder,
		logger:       logger,
	}
}

// HandleCommand handles POST /slack/commands
func (h *SlashCommandHandler) HandleCommand(c *fiber.Ctx) error {
	command := c.FormValue("command")
	if command != services.SummarizeCommandName {
		h.logger.WithField("command", command).Warn("Unknown slash command")
		return c.SendString(msgUnknownCommand)
	}

	// Form values alias the request buffer, which fiber reuses once the
	// handler returns. The invocation outlives it.
	inv := models.Invocation{
		ID:          uuid.New(),
		UserID:      utils.CopyString(c.FormValue("user_id")),
		ChannelID:   utils.CopyString(c.FormValue("channel_id")),
		ResponseURL: utils.CopyString(c.FormValue("response_url")),
	}
	if inv.UserID == "" || inv.ChannelID == "" || inv.ResponseURL == "" {
		return c.SendString(msgMissingPayload)
	}

	responder := h.newResponder(inv.ResponseURL)

	// The request context ends with the acknowledgement.
	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		h.runner.Run(context.Background(), inv, responder)
	}()

	return c.SendStatus(fiber.StatusOK)
}

// Wait blocks until every background command has finished.
func (h *SlashCommandHandler) Wait() {
	h.inflight.Wait()
}
