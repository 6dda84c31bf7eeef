// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package agent

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
)

const (
	// maxToolRounds bounds how deep a single user turn may chain tool calls.
	maxToolRounds = 4

	// maxReplyWords is the voice-delivery budget enforced on replies.
	maxReplyWords = 35
)

var (
	ErrModelRequired   = errors.New("agent: chat model is required")
	ErrToolsetRequired = errors.New("agent: toolset is required")
)

// fallbackMessages are used when the model produces no text at all.
var fallbackMessages = []string{
	"Connection's spotty. What were you saying?",
	"Didn't catch that. Try again?",
	"Still here, network hiccup. Go ahead.",
}

// Agent is the conversational assistant: one model, one toolset, one
// running message history. Not safe for concurrent use.
type Agent struct {
	model   llms.Model
	tools   *Toolset
	history []llms.MessageContent
	logger  *slog.Logger
	clock   func() time.Time
	pick    func(n int) int
}

// Option configures an Agent.
type Option func(*Agent)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(a *Agent) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// New creates an agent with the default system prompt.
func New(model llms.Model, tools *Toolset, opts ...Option) (*Agent, error) {
	if model == nil {
		return nil, ErrModelRequired
	}
	if tools == nil {
		return nil, ErrToolsetRequired
	}

	a := &Agent{
		model:  model,
		tools:  tools,
		logger: slog.Default(),
		clock:  time.Now,
		pick:   rand.IntN,
		history: []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Chat sends one user message and returns the assistant's reply. The trigger
// is a hint about what prompted the turn (e.g. "user_message",
// "conversation_gap") and steers proactive behavior.
//
// Tool calls requested by the model are executed client-side and fed back,
// up to maxToolRounds rounds. Replies are trimmed to the voice word budget;
// a turn that yields no text returns a varied fallback line.
func (a *Agent) Chat(ctx context.Context, message, trigger string) (string, error) {
	if trigger != "" {
		message = "(Trigger: " + trigger + ") " + message
	}

	now := a.clock()
	memories, err := a.tools.repository.GetMemories(ctx, a.tools.userID)
	if err != nil {
		// Context is best-effort; the turn proceeds without it.
		a.logger.Warn("memory fetch for context failed", "err", err)
		memories = nil
	}
	if situational := timeContext(now, memories); situational != "" {
		a.history = append(a.history, llms.TextParts(llms.ChatMessageTypeSystem, "[Context] "+situational))
	}

	a.history = append(a.history, llms.TextParts(llms.ChatMessageTypeHuman, message))

	var reply string
	for round := 0; round < maxToolRounds; round++ {
		response, err := a.model.GenerateContent(ctx, a.history, llms.WithTools(a.tools.Definitions()))
		if err != nil {
			return "", err
		}
		if len(response.Choices) == 0 {
			break
		}
		choice := response.Choices[0]
		reply = strings.TrimSpace(choice.Content)

		a.history = append(a.history, assistantMessage(choice))

		if len(choice.ToolCalls) == 0 {
			break
		}

		for _, call := range choice.ToolCalls {
			if call.FunctionCall == nil {
				continue
			}
			a.logger.Debug("executing tool", "tool", call.FunctionCall.Name)

			result, err := a.tools.Dispatch(ctx, call.FunctionCall.Name, call.FunctionCall.Arguments)
			if err != nil {
				// The model gets the failure as a tool result and can
				// rephrase or recover; the turn itself continues.
				a.logger.Warn("tool failed", "tool", call.FunctionCall.Name, "err", err)
				result = "error: " + err.Error()
			}

			a.history = append(a.history, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: call.ID,
						Name:       call.FunctionCall.Name,
						Content:    result,
					},
				},
			})
		}
	}

	if reply == "" {
		return fallbackMessages[a.pick(len(fallbackMessages))], nil
	}
	return enforceBrevity(reply, maxReplyWords), nil
}

// Reset clears the conversation, keeping only the system prompt.
func (a *Agent) Reset() {
	a.history = a.history[:1]
}

// History returns a copy of the conversation so far.
func (a *Agent) History() []llms.MessageContent {
	out := make([]llms.MessageContent, len(a.history))
	copy(out, a.history)
	return out
}

// assistantMessage converts a model choice back into a history entry,
// preserving its tool calls so follow-up tool results stay linked.
func assistantMessage(choice *llms.ContentChoice) llms.MessageContent {
	message := llms.MessageContent{Role: llms.ChatMessageTypeAI}
	if choice.Content != "" {
		message.Parts = append(message.Parts, llms.TextContent{Text: choice.Content})
	}
	for _, call := range choice.ToolCalls {
		message.Parts = append(message.Parts, call)
	}
	return message
}

// enforceBrevity trims overly long replies for voice delivery: the first
// sentence when it fits, otherwise a hard word cut.
func enforceBrevity(reply string, maxWords int) string {
	words := strings.Fields(reply)
	if len(words) <= maxWords {
		return reply
	}

	if idx := strings.Index(reply, ". "); idx > 0 && idx < len(reply)*7/10 {
		first := reply[:idx+1]
		if len(strings.Fields(first)) <= maxWords {
			return first
		}
	}

	return strings.TrimRight(strings.Join(words[:maxWords], " "), ",.;:") + "."
}
