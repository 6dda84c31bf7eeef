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


// Package storage provides the storage abstraction layer for lifepilot.
//
// This package defines the MemoryRepository interface that decouples the
// ingestion pipeline and the agent from the backend holding the memories.
// Two backends implement it:
//
//   - storage/badger: a local BadgerDB store with mus-go serialized records
//   - storage/hosted: a client for the hosted memory service's REST API
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.MemoryRepository interface rather
// than concrete types:
//
//	repo, err := badger.NewRepository(path)  // returns storage.MemoryRepository
//
// This keeps consumers swappable between the local store and the hosted
// service, and lets tests substitute either with the in-memory variant.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. The ingestion pipeline itself is
// sequential, but the export tooling fans out over users concurrently.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support.
package storage
