package services

import (
	"fmt"
	"strings"

	"github.com/agentx/slack-summarizer/internal/models"
)

// FormatTranscript renders msgs one per line as "(timestamp) name: text", in
// the order given. Empty bodies are kept.
func FormatTranscript(msgs []models.NormalizedMessage) string {
	lines := make([]string, len(msgs))
	for i, msg := range msgs {
		lines[i] = fmt.Sprintf("(%s) %s: %s", msg.FormattedTime, msg.DisplayName, msg.Text)
	}
	return strings.Join(lines, "\n")
}
