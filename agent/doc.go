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


// Package agent implements the conversational assistant: a chat loop over an
// LLM with client-side tools for memory recall, memory storage, and calendar
// event creation.
//
// Replies are voice-first: short, action-leading, and trimmed to a word
// budget before delivery. The model is steered with a time-of-day context
// line and, when a stored memory falls within the next hour, a one-line
// upcoming reminder.
package agent
