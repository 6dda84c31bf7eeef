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


// Package ai provides abstractions for the AI services used in Lifepilot.
//
// This package defines interfaces for fact extraction (condensing raw
// connector records into single remembered facts) and conversational chat.
// It follows the dependency inversion principle, allowing the ingestion
// pipeline and the assistant agent to depend on abstractions rather than
// concrete implementations.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible chat APIs
//     (Grok, OpenAI, or any local server speaking the same protocol)
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors in ai/openai return INTERFACE types to enforce
// abstraction. Mock constructors return CONCRETE types so tests can inject
// behavior and make call-count assertions.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithAPIKey(os.Getenv("XAI_API_KEY")))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	fact, err := provider.FactExtractor().ExtractFact(ctx, ai.FactRequest{
//	    Note:   "Dentist appointment Monday 10am",
//	    Record: record,
//	})
package ai
