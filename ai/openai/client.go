package openai

import (
	"net/http"

	"github.com/poiesic/lifepilot/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// newClient builds a langchaingo OpenAI client for the given model.
// The config must already be validated.
func newClient(config *ai.Config, model string) (llms.Model, error) {
	return openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithModel(model),
		openai.WithHTTPClient(&http.Client{Timeout: config.Timeout}),
	)
}

// NewChatModel creates the conversational model client used by the agent.
func NewChatModel(config *ai.Config) (llms.Model, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return newClient(config, config.ChatModel)
}
