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


package openai

import (
	"log/slog"

	"github.com/poiesic/lifepilot/ai"
	"github.com/tmc/langchaingo/llms"
)

// Provider implements ai.AIProvider using OpenAI-compatible services.
// It manages the fact extractor and chat model instances.
type Provider struct {
	config    *ai.Config
	extractor *FactExtractor
	chat      llms.Model
	logger    *slog.Logger
}

// NewProvider creates an AI provider backed by OpenAI-compatible services.
// The config is validated and normalized before use; bad configuration fails
// here rather than on the first call.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	extractor, err := newFactExtractor(config)
	if err != nil {
		return nil, err
	}

	chat, err := newClient(config, config.ChatModel)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		extractor: extractor,
		chat:      chat,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// FactExtractor returns the fact extraction service.
func (p *Provider) FactExtractor() ai.FactExtractor {
	return p.extractor
}

// ChatModel returns the conversational model client.
func (p *Provider) ChatModel() llms.Model {
	return p.chat
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
