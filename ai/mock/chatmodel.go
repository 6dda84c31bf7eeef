package mock

import (
	"context"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// MockChatModel is a test double for llms.Model.
// Responses are returned in order; once exhausted, the last one repeats.
type MockChatModel struct {
	// GenerateContentFunc is called by GenerateContent if set.
	GenerateContentFunc func(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)

	mu        sync.Mutex
	responses []*llms.ContentResponse
	calls     [][]llms.MessageContent
}

var _ llms.Model = (*MockChatModel)(nil)

// NewMockChatModel creates a mock chat model that replies with the given
// texts, one per call.
func NewMockChatModel(replies ...string) *MockChatModel {
	model := &MockChatModel{}
	for _, reply := range replies {
		model.responses = append(model.responses, textResponse(reply))
	}
	return model
}

// QueueResponse appends a full content response, for tests exercising tool
// calls rather than plain text replies.
func (m *MockChatModel) QueueResponse(response *llms.ContentResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, response)
}

// GenerateContent returns the next queued response.
func (m *MockChatModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, messages, options...)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, messages)

	if len(m.responses) == 0 {
		return textResponse(""), nil
	}
	response := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return response, nil
}

// Call implements the legacy llms.Model single-prompt entry point.
func (m *MockChatModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	response, err := m.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}, options...)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", nil
	}
	return response.Choices[0].Content, nil
}

// CallCount returns the number of GenerateContent calls seen.
func (m *MockChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns the message history of every call, in order.
func (m *MockChatModel) Calls() [][]llms.MessageContent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]llms.MessageContent, len(m.calls))
	copy(out, m.calls)
	return out
}

func textResponse(text string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}
}
