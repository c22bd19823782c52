package slackapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/agentx/slack-summarizer/internal/models"
)

// Client adapts the Slack Web API to the reader, resolver and sender
// capabilities the summarizer needs.
type Client struct {
	api *slack.Client
}

// NewClient creates a client authenticated with a bot token. Options are
// passed through to slack.New (e.g. slack.OptionAPIURL in tests).
func NewClient(botToken string, opts ...slack.Option) (*Client, error) {
	if botToken == "" {
		return nil, errors.New("slack bot token is required")
	}
	return &Client{api: slack.New(botToken, opts...)}, nil
}

// History returns one page of top-level messages no older than oldest.
func (c *Client) History(ctx context.Context, channelID, oldest string, limit int) ([]models.RawMessage, error) {
	resp, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Oldest:    oldest,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("conversations.history %s: %w", channelID, err)
	}
	return toRawMessages(resp.Messages), nil
}

// Replies returns one page of a thread, parent first.
func (c *Client) Replies(ctx context.Context, channelID, threadTS, oldest string, limit int) ([]models.RawMessage, error) {
	msgs, _, _, err := c.api.GetConversationRepliesContext(ctx, &slack.GetConversationRepliesParameters{
		ChannelID: channelID,
		Timestamp: threadTS,
		Oldest:    oldest,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("conversations.replies %s/%s: %w", channelID, threadTS, err)
	}
	return toRawMessages(msgs), nil
}

// LookupUser fetches the profile name fields for userID.
func (c *Client) LookupUser(ctx context.Context, userID string) (models.UserProfile, error) {
	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("users.info %s: %w", userID, err)
	}
	return models.UserProfile{
		DisplayName: user.Profile.DisplayName,
		RealName:    user.Profile.RealName,
	}, nil
}

// SendDirectMessage opens (or reuses) the IM with userID and posts text.
func (c *Client) SendDirectMessage(ctx context.Context, userID, text string) error {
	channel, _, _, err := c.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{userID},
	})
	if err != nil {
		return fmt.Errorf("conversations.open %s: %w", userID, err)
	}

	if _, _, err := c.api.PostMessageContext(ctx, channel.ID, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("chat.postMessage %s: %w", channel.ID, err)
	}
	return nil
}

func toRawMessages(msgs []slack.Message) []models.RawMessage {
	out := make([]models.RawMessage, len(msgs))
	for i, msg := range msgs {
		out[i] = models.RawMessage{
			User:       msg.User,
			Username:   msg.Username,
			Text:       msg.Text,
			Timestamp:  msg.Timestamp,
			ReplyCount: msg.ReplyCount,
		}
	}
	return out
}
