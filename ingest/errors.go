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


package ingest

import "errors"

var (
	// ErrRepositoryRequired is returned when a pipeline is created without a memory repository.
	ErrRepositoryRequired = errors.New("ingest: memory repository is required")

	// ErrExtractorRequired is returned when a pipeline with enrichment enabled is created without a fact extractor.
	ErrExtractorRequired = errors.New("ingest: fact extractor is required when enrichment is enabled")

	// ErrUnknownConnector is returned when no loader exists for the requested connector.
	ErrUnknownConnector = errors.New("ingest: unknown connector")
)
