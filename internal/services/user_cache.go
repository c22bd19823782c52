package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/agentx/slack-summarizer/internal/models"
)

// UserCache memoizes display names for the duration of one fetch. It is not
// safe for concurrent use and must not outlive the invocation.
type UserCache struct {
	resolver UserResolver
	logger   logrus.FieldLogger
	names    map[string]string
}

// NewUserCache creates an empty cache backed by resolver
func NewUserCache(resolver UserResolver, logger logrus.FieldLogger) *UserCache {
	return &UserCache{
		resolver: resolver,
		logger:   logger,
		names:    make(map[string]string),
	}
}

// Prime resolves every distinct author of msgs, in first-seen order.
func (c *UserCache) Prime(ctx context.Context, msgs []models.RawMessage) {
	for _, msg := range msgs {
		if msg.User != "" {
			c.Resolve(ctx, msg.User)
		}
	}
}

// Resolve returns the display name for userID, looking it up at most once.
// Preference is display name, then real name, then the id itself.
func (c *UserCache) Resolve(ctx context.Context, userID string) string {
	if name, ok := c.names[userID]; ok {
		return name
	}

	name := userID
	profile, err := c.resolver.LookupUser(ctx, userID)
	if err != nil {
		c.logger.WithError(err).WithField("user_id", userID).Error("Unable to fetch display name")
	} else if profile.DisplayName != "" {
		name = profile.DisplayName
	} else if profile.RealName != "" {
		name = profile.RealName
	}

	c.names[userID] = name
	return name
}

// NameFor returns the name to attribute msg to. Messages without an author id
// never trigger a lookup.
func (c *UserCache) NameFor(ctx context.Context, msg models.RawMessage) string {
	if msg.User != "" {
		return c.Resolve(ctx, msg.User)
	}
	if msg.Username != "" {
		return msg.Username
	}
	return unknownUser
}

// Len reports how many distinct ids have been resolved.
func (c *UserCache) Len() int {
	return len(c.names)
}
