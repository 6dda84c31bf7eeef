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


// Package ingest turns structured personal data exports into stored memories.
//
// Three connectors (calendar, vision, audio) parse their JSON export formats
// into uniform (record, metadata) pairs. The pipeline drives each record
// through context selection, optional AI enrichment, and storage:
//
//	load -> select context -> enrich or raw text -> skip | dry-run | store
//
// Processing is strictly sequential: one file at a time, one record at a
// time. Each record is attempt-once; enrichment and store failures abort the
// file's remaining records, while a memory-fetch failure only degrades
// context selection to an empty reference list.
package ingest
