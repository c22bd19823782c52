package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentx/slack-summarizer/internal/models"
)

type commandFixture struct {
	slack     *fakeSlack
	completer *fakeCompleter
	responder *fakeResponder
	audit     *recordingAudit
	command   *SummarizeCommand
}

func newCommandFixture(slack *fakeSlack, completer *fakeCompleter) *commandFixture {
	audit := &recordingAudit{}
	fetcher := newTestFetcher(slack, namesResolver{})
	summary := NewSummaryService(completer, testSummaryOptions(), testLogger())
	cmd := NewSummarizeCommand(fetcher, summary, slack, audit, testLogger())
	cmd.now = func() time.Time { return fetchNow }

	return &commandFixture{
		slack:     slack,
		completer: completer,
		responder: &fakeResponder{},
		audit:     audit,
		command:   cmd,
	}
}

func (f *commandFixture) run() models.Outcome {
	return f.command.Run(context.Background(), models.Invocation{UserID: "U123", ChannelID: "C1"}, f.responder)
}

func twoMessageChannel() *fakeSlack {
	return &fakeSlack{
		history: []models.RawMessage{
			{User: "U1", Text: "deploy at 5?", Timestamp: "1700000000.000000", ReplyCount: 1},
			{User: "U2", Text: "p99 down to 40ms", Timestamp: "1700000100.000000"},
		},
		threads: map[string][]models.RawMessage{
			"1700000000.000000": {
				{User: "U1", Text: "deploy at 5?", Timestamp: "1700000000.000000"},
				{User: "U2", Text: "yes", Timestamp: "1700000030.000000"},
			},
		},
	}
}

func TestSummarizeCommand_Success(t *testing.T) {
	f := newCommandFixture(twoMessageChannel(), &fakeCompleter{resp: completionWith("<summary>*Deploys*\n- 5pm</summary>")})

	outcome := f.run()

	assert.Equal(t, models.OutcomeSummarized, outcome)
	require.Len(t, f.slack.dms, 1)
	assert.Equal(t, sentDM{userID: "U123", text: "*Deploys*\n- 5pm"}, f.slack.dms[0])
	require.Len(t, f.responder.texts, 1)
	assert.Equal(t, "I've sent a summary of the last 7 days (including threaded replies) to <@U123> via DM.", f.responder.texts[0])

	require.Len(t, f.completer.requests, 1)
	prompt := f.completer.requests[0].Messages[0].Content
	assert.Contains(t, prompt, "(2023-11-14 22:13:20) name-U1: deploy at 5?\n(2023-11-14 22:13:50) name-U2: yes\n(2023-11-14 22:15:00) name-U2: p99 down to 40ms")

	require.Len(t, f.audit.records, 1)
	record := f.audit.records[0]
	assert.Equal(t, models.OutcomeSummarized, record.Outcome)
	assert.Equal(t, 3, record.MessageCount)
	assert.Equal(t, "U123", record.UserID)
	assert.Equal(t, "C1", record.ChannelID)
	assert.NotEqual(t, uuid.Nil, record.ID)
}

func TestSummarizeCommand_EmptyHistory(t *testing.T) {
	completer := &fakeCompleter{}
	f := newCommandFixture(&fakeSlack{}, completer)

	outcome := f.run()

	assert.Equal(t, models.OutcomeEmptyHistory, outcome)
	assert.Empty(t, f.slack.dms)
	assert.Empty(t, completer.requests)
	assert.Equal(t, []string{"No messages found in the past 7 days or an error occurred."}, f.responder.texts)
	require.Len(t, f.audit.records, 1)
	assert.Equal(t, models.OutcomeEmptyHistory, f.audit.records[0].Outcome)
}

func TestSummarizeCommand_EmptyBodiesAreStillSummarized(t *testing.T) {
	slack := &fakeSlack{
		history: []models.RawMessage{
			{User: "U1", Text: "", Timestamp: "1700000000.000000"},
		},
	}
	f := newCommandFixture(slack, &fakeCompleter{resp: completionWith("<summary>a file was shared</summary>")})

	outcome := f.run()

	assert.Equal(t, models.OutcomeSummarized, outcome)
	require.Len(t, f.completer.requests, 1)
	assert.Contains(t, f.completer.requests[0].Messages[0].Content, "(2023-11-14 22:13:20) name-U1: ")
	assert.Equal(t, []sentDM{{userID: "U123", text: "a file was shared"}}, f.slack.dms)
}

func TestSummarizeCommand_HistoryFailureLooksEmpty(t *testing.T) {
	f := newCommandFixture(&fakeSlack{historyErr: errors.New("not_in_channel")}, &fakeCompleter{})

	outcome := f.run()

	assert.Equal(t, models.OutcomeEmptyHistory, outcome)
	assert.Empty(t, f.slack.dms)
	require.Len(t, f.responder.texts, 1)
	assert.Contains(t, f.responder.texts[0], "No messages found")
}

func TestSummarizeCommand_SummarizationFailure(t *testing.T) {
	f := newCommandFixture(twoMessageChannel(), &fakeCompleter{err: errors.New("connection refused")})

	outcome := f.run()

	assert.Equal(t, models.OutcomeFailed, outcome)
	require.Len(t, f.slack.dms, 1)
	assert.Equal(t, "U123", f.slack.dms[0].userID)
	assert.Contains(t, f.slack.dms[0].text, "Error")
	assert.Contains(t, f.slack.dms[0].text, "connection refused")
	require.Len(t, f.responder.texts, 1)
	assert.Contains(t, f.responder.texts[0], "Check your DM.")

	require.Len(t, f.audit.records, 1)
	assert.Equal(t, models.OutcomeFailed, f.audit.records[0].Outcome)
	assert.Contains(t, f.audit.records[0].ErrorMessage, "connection refused")
}

func TestSummarizeCommand_DMFailureStillResponds(t *testing.T) {
	slack := twoMessageChannel()
	slack.dmErr = errors.New("cannot_dm_bot")
	f := newCommandFixture(slack, &fakeCompleter{resp: completionWith("summary")})

	outcome := f.run()

	assert.Equal(t, models.OutcomeSummarized, outcome)
	assert.Len(t, f.slack.dms, 1)
	assert.Len(t, f.responder.texts, 1)
}

func TestSummarizeCommand_KeepsInvocationID(t *testing.T) {
	f := newCommandFixture(&fakeSlack{}, &fakeCompleter{})
	id := uuid.New()

	f.command.Run(context.Background(), models.Invocation{ID: id, UserID: "U1", ChannelID: "C1"}, f.responder)

	require.Len(t, f.audit.records, 1)
	assert.Equal(t, id, f.audit.records[0].ID)
}
