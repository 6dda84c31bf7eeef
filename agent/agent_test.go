package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/lifepilot/ai/mock"
	"github.com/poiesic/lifepilot/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func newTestAgent(t *testing.T, model llms.Model, repo *fakeRepo) *Agent {
	t.Helper()
	a, err := New(model, NewToolset("alice", repo, nil),
		WithClock(func() time.Time { return time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC) }))
	require.NoError(t, err)
	return a
}

func toolCallResponse(id, name, arguments string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			ToolCalls: []llms.ToolCall{{
				ID:   id,
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      name,
					Arguments: arguments,
				},
			}},
		}},
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, NewToolset("alice", &fakeRepo{}, nil))
	assert.ErrorIs(t, err, ErrModelRequired)

	_, err = New(mock.NewMockChatModel(), nil)
	assert.ErrorIs(t, err, ErrToolsetRequired)
}

func TestChatPlainReply(t *testing.T) {
	model := mock.NewMockChatModel("Got it. Heading out at ten.")
	a := newTestAgent(t, model, &fakeRepo{})

	reply, err := a.Chat(context.Background(), "leave at ten", "user_message")
	require.NoError(t, err)
	assert.Equal(t, "Got it. Heading out at ten.", reply)
	assert.Equal(t, 1, model.CallCount())

	// First call carries the system prompt, context line, and trigger-tagged
	// user message.
	messages := model.Calls()[0]
	require.GreaterOrEqual(t, len(messages), 3)
	assert.Equal(t, llms.ChatMessageTypeSystem, messages[0].Role)

	userText := messages[len(messages)-1].Parts[0].(llms.TextContent).Text
	assert.Equal(t, "(Trigger: user_message) leave at ten", userText)
}

func TestChatIncludesTimeContext(t *testing.T) {
	model := mock.NewMockChatModel("Morning.")
	a := newTestAgent(t, model, &fakeRepo{})

	_, err := a.Chat(context.Background(), "hi", "")
	require.NoError(t, err)

	messages := model.Calls()[0]
	contextText := messages[len(messages)-2].Parts[0].(llms.TextContent).Text
	assert.Contains(t, contextText, "[Context] Today is Friday morning (09:30)")
}

func TestChatExecutesToolCalls(t *testing.T) {
	repo := &fakeRepo{memories: []*core.StoredMemory{
		{Text: "Alice orders an oat milk latte every morning"},
	}}

	model := mock.NewMockChatModel()
	model.QueueResponse(toolCallResponse("call-1", "search_memories", `{"query": "oat milk latte"}`))
	model.QueueResponse(&llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "Your usual oat milk latte, then."}},
	})

	a := newTestAgent(t, model, repo)

	reply, err := a.Chat(context.Background(), "order my usual", "user_message")
	require.NoError(t, err)
	assert.Equal(t, "Your usual oat milk latte, then.", reply)
	assert.Equal(t, 2, model.CallCount())

	// Second round sees the tool result.
	second := model.Calls()[1]
	last := second[len(second)-1]
	assert.Equal(t, llms.ChatMessageTypeTool, last.Role)
	toolResult := last.Parts[0].(llms.ToolCallResponse)
	assert.Equal(t, "call-1", toolResult.ToolCallID)
	assert.Contains(t, toolResult.Content, "oat milk latte")
}

func TestChatToolFailureFedBackToModel(t *testing.T) {
	model := mock.NewMockChatModel()
	model.QueueResponse(toolCallResponse("call-1", "launch_rocket", `{}`))
	model.QueueResponse(&llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "Can't do that one."}},
	})

	a := newTestAgent(t, model, &fakeRepo{})

	reply, err := a.Chat(context.Background(), "do the thing", "")
	require.NoError(t, err)
	assert.Equal(t, "Can't do that one.", reply)

	second := model.Calls()[1]
	toolResult := second[len(second)-1].Parts[0].(llms.ToolCallResponse)
	assert.True(t, strings.HasPrefix(toolResult.Content, "error:"))
}

func TestChatFallbackWhenModelSilent(t *testing.T) {
	model := mock.NewMockChatModel("")
	a := newTestAgent(t, model, &fakeRepo{})
	a.pick = func(n int) int { return 0 }

	reply, err := a.Chat(context.Background(), "hello?", "")
	require.NoError(t, err)
	assert.Equal(t, fallbackMessages[0], reply)
}

func TestChatTrimsLongReplies(t *testing.T) {
	long := strings.Repeat("word ", 60) + "end"
	model := mock.NewMockChatModel(long)
	a := newTestAgent(t, model, &fakeRepo{})

	reply, err := a.Chat(context.Background(), "tell me everything", "")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(strings.Fields(reply)), maxReplyWords)
}

func TestReset(t *testing.T) {
	model := mock.NewMockChatModel("Hi.", "Hi again.")
	a := newTestAgent(t, model, &fakeRepo{})

	_, err := a.Chat(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Greater(t, len(a.History()), 1)

	a.Reset()
	history := a.History()
	require.Len(t, history, 1)
	assert.Equal(t, llms.ChatMessageTypeSystem, history[0].Role)
}

func TestEnforceBrevity(t *testing.T) {
	t.Run("short reply untouched", func(t *testing.T) {
		assert.Equal(t, "On it.", enforceBrevity("On it.", 35))
	})

	t.Run("keeps first sentence when it fits", func(t *testing.T) {
		reply := "Done. " + strings.Repeat("detail ", 50)
		assert.Equal(t, "Done.", enforceBrevity(reply, 35))
	})

	t.Run("hard cut ends with a period", func(t *testing.T) {
		reply := strings.Repeat("word ", 60)
		trimmed := enforceBrevity(reply, 10)
		assert.Len(t, strings.Fields(trimmed), 10)
		assert.True(t, strings.HasSuffix(trimmed, "."))
	})
}
