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


// Package lifepilot wires the personal assistant together: a memory
// repository (local BadgerDB or the hosted memory service), the AI provider,
// the ingestion pipeline, and the conversational agent.
package lifepilot

import (
	"log/slog"

	"github.com/poiesic/lifepilot/agent"
	"github.com/poiesic/lifepilot/ai"
	"github.com/poiesic/lifepilot/ai/openai"
	"github.com/poiesic/lifepilot/ingest"
	"github.com/poiesic/lifepilot/storage"
	"github.com/poiesic/lifepilot/storage/badger"
	"github.com/poiesic/lifepilot/storage/hosted"
)

// Assistant owns the shared services and builds pipelines and agents on top
// of them.
type Assistant struct {
	repository storage.MemoryRepository
	provider   ai.AIProvider
	logger     *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig *ai.Config
	hosted   *hosted.Config
}

// WithAIConfig overrides the default AI configuration.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithHostedMemory stores memories in the hosted memory service instead of
// a local BadgerDB store.
func WithHostedMemory(config *hosted.Config) AssistantOption {
	return func(o *assistantOptions) {
		o.hosted = config
	}
}

// NewAssistant opens the memory store at filePath (ignored when hosted
// memory is configured) and connects the AI provider.
func NewAssistant(filePath string, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	var repository storage.MemoryRepository
	var err error
	if options.hosted != nil {
		repository, err = hosted.NewClient(options.hosted)
	} else {
		repository, err = badger.NewRepository(filePath)
	}
	if err != nil {
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		repository.Close()
		return nil, err
	}

	return &Assistant{
		repository: repository,
		provider:   provider,
		logger:     slog.Default(),
	}, nil
}

// Close releases the AI provider and the memory repository.
func (a *Assistant) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}
	if err := a.repository.Close(); err != nil {
		a.logger.Error("error closing memory repository", "err", err)
		return err
	}
	return nil
}

// MemoryRepository exposes the memory store.
func (a *Assistant) MemoryRepository() storage.MemoryRepository {
	return a.repository
}

// NewIngestPipeline builds an ingestion pipeline over the assistant's
// repository and fact extractor.
func (a *Assistant) NewIngestPipeline(cfg ingest.Config, opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(a.repository, a.provider.FactExtractor(), cfg, opts...)
}

// NewAgent builds a conversational agent for one user. The calendar may be
// nil when event creation isn't configured.
func (a *Assistant) NewAgent(userID string, calendar agent.EventCreator, opts ...agent.Option) (*agent.Agent, error) {
	return agent.New(a.provider.ChatModel(), agent.NewToolset(userID, a.repository, calendar), opts...)
}
