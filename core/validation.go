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


package core

import (
	"fmt"
	"time"
)

// ValidateStoredMemory validates a StoredMemory according to domain rules.
//
// Validation rules:
//   - UserID must not be empty
//   - Text must not be empty
//   - InsertedAt must not be in the future
//
// NOT validated (populated by the repository):
//   - ID (0 is valid until the repository assigns a content hash)
//   - Timestamp (the record's own time may legitimately be in the future,
//     e.g. an upcoming calendar event)
func ValidateStoredMemory(memory *StoredMemory) error {
	if memory == nil {
		return fmt.Errorf("%w: memory is nil", ErrInvalidMemory)
	}

	if memory.UserID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMemory, ErrEmptyUserID)
	}

	if memory.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMemory, ErrEmptyText)
	}

	if !IsValidTimestamp(memory.InsertedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidMemory, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
// The zero time is valid; repositories fill it on insert.
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
