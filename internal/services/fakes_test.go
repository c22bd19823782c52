package services

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/agentx/slack-summarizer/internal/models"
	"github.com/agentx/slack-summarizer/internal/providers"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type historyCall struct {
	channelID string
	oldest    string
	limit     int
}

type replyCall struct {
	channelID string
	threadTS  string
	oldest    string
	limit     int
}

type sentDM struct {
	userID string
	text   string
}

// fakeSlack stands in for the history, replies and DM APIs.
type fakeSlack struct {
	mu sync.Mutex

	history    []models.RawMessage
	historyErr error
	threads    map[string][]models.RawMessage
	threadErrs map[string]error
	dmErr      error

	historyCalls []historyCall
	replyCalls   []replyCall
	dms          []sentDM
}

func (f *fakeSlack) History(_ context.Context, channelID, oldest string, limit int) ([]models.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyCalls = append(f.historyCalls, historyCall{channelID, oldest, limit})
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeSlack) Replies(_ context.Context, channelID, threadTS, oldest string, limit int) ([]models.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replyCalls = append(f.replyCalls, replyCall{channelID, threadTS, oldest, limit})
	if err := f.threadErrs[threadTS]; err != nil {
		return nil, err
	}
	return f.threads[threadTS], nil
}

func (f *fakeSlack) SendDirectMessage(_ context.Context, userID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dms = append(f.dms, sentDM{userID, text})
	return f.dmErr
}

type mockUserResolver struct {
	mock.Mock
}

func (m *mockUserResolver) LookupUser(ctx context.Context, userID string) (models.UserProfile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.UserProfile), args.Error(1)
}

// namesResolver resolves every id to "name-<id>".
type namesResolver struct{}

func (namesResolver) LookupUser(_ context.Context, userID string) (models.UserProfile, error) {
	return models.UserProfile{DisplayName: "name-" + userID}, nil
}

type fakeCompleter struct {
	resp     *providers.CompletionResponse
	err      error
	requests []providers.CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req providers.CompletionRequest) (*providers.CompletionResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func completionWith(content string) *providers.CompletionResponse {
	return &providers.CompletionResponse{
		Choices: []providers.Choice{{Message: providers.Message{Role: providers.RoleAssistant, Content: content}}},
	}
}

type fakeResponder struct {
	texts []string
	err   error
}

func (f *fakeResponder) Respond(_ context.Context, text string) error {
	f.texts = append(f.texts, text)
	return f.err
}

type recordingAudit struct {
	records []models.InvocationRecord
}

func (r *recordingAudit) Record(_ context.Context, record models.InvocationRecord) {
	r.records = append(r.records, record)
}
