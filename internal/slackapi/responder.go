package slackapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/slack-go/slack"
)

// ResponseURLResponder answers a slash command through its response_url.
type ResponseURLResponder struct {
	url          string
	responseType string
	httpClient   *http.Client
}

// NewResponseURLResponder creates a responder for one command invocation.
// responseType is slack.ResponseTypeEphemeral or slack.ResponseTypeInChannel.
func NewResponseURLResponder(responseURL, responseType string, httpClient *http.Client) *ResponseURLResponder {
	if responseType == "" {
		responseType = slack.ResponseTypeEphemeral
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ResponseURLResponder{
		url:          responseURL,
		responseType: responseType,
		httpClient:   httpClient,
	}
}

// Respond posts text to the response_url.
func (r *ResponseURLResponder) Respond(ctx context.Context, text string) error {
	if r.url == "" {
		return errors.New("command has no response_url")
	}
	err := slack.PostWebhookCustomHTTPContext(ctx, r.url, r.httpClient, &slack.WebhookMessage{
		Text:         text,
		ResponseType: r.responseType,
	})
	if err != nil {
		return fmt.Errorf("response_url post failed: %w", err)
	}
	return nil
}
