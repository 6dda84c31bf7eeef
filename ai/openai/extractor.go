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
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/lifepilot/ai"
	"github.com/poiesic/lifepilot/core"
	"github.com/tmc/langchaingo/llms"
)

// FactExtractor implements ai.FactExtractor using OpenAI-compatible chat APIs.
type FactExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// extractionPayload is the JSON document sent as the user message.
type extractionPayload struct {
	Note              string      `json:"note"`
	Record            core.Record `json:"record"`
	ReferenceMemories []string    `json:"reference_memories"`
}

// newFactExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newFactExtractor(config *ai.Config) (*FactExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := newClient(config, config.ExtractorModel)
	if err != nil {
		return nil, err
	}

	return &FactExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewFactExtractor creates a fact extractor using the provided configuration.
//
// Returns ai.FactExtractor interface to enforce abstraction.
func NewFactExtractor(config *ai.Config) (ai.FactExtractor, error) {
	return newFactExtractor(config)
}

// ExtractFact condenses one record into a single factual sentence.
// An empty result means the model judged the record not worth remembering;
// callers treat that as a skip, not a failure.
func (e *FactExtractor) ExtractFact(ctx context.Context, req ai.FactRequest) (string, error) {
	payload, err := json.Marshal(extractionPayload{
		Note:              req.Note,
		Record:            req.Record,
		ReferenceMemories: req.References,
	})
	if err != nil {
		return "", err
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(extractionSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(string(payload)),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		e.logger.Error("failed to generate content", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		e.logger.Debug("no choices returned from model")
		return "", nil
	}

	fact := cleanFact(response.Choices[0].Content)
	e.logger.Debug("extracted fact", "empty", fact == "")
	return fact, nil
}

// cleanFact strips the decoration chat models tend to add around a bare
// sentence: code fences, surrounding quotes, stray whitespace.
func cleanFact(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return strings.TrimSpace(text)
}
