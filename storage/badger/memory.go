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


package badger

import (
	"context"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/lifepilot/core"
	"github.com/poiesic/lifepilot/storage"
)

// MemoryRepository implements storage.MemoryRepository for BadgerDB.
//
// Memory IDs are content hashes of (user, text), so storing the same text
// twice for the same user rewrites one record instead of duplicating it.
type MemoryRepository struct {
	backend *Backend
}

var _ storage.MemoryRepository = (*MemoryRepository)(nil)

// NewRepository opens a BadgerDB-backed memory repository at the given path.
func NewRepository(filePath string) (storage.MemoryRepository, error) {
	backend, err := OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}
	return &MemoryRepository{backend: backend}, nil
}

// NewRepositoryWithBackend wraps an existing backend. The caller keeps
// ownership of the backend's lifecycle only if it is shared; Close closes it.
func NewRepositoryWithBackend(backend *Backend) storage.MemoryRepository {
	return &MemoryRepository{backend: backend}
}

// Close closes the underlying backend.
func (r *MemoryRepository) Close() error {
	return r.backend.Close()
}

// AddMemory persists one memory verbatim. The infer flag is ignored: the
// local store has no AI extraction of its own, which matches how the pipeline
// calls it (text is already condensed before it gets here).
func (r *MemoryRepository) AddMemory(ctx context.Context, memory *core.StoredMemory, infer bool) (*core.StoredMemory, error) {
	if err := core.ValidateStoredMemory(memory); err != nil {
		return nil, err
	}

	stored := *memory
	stored.Id = core.MemoryID(stored.UserID, stored.Text)

	now := time.Now().UTC()
	stored.UpdatedAt = now
	if stored.Timestamp.IsZero() {
		stored.Timestamp = now
	}

	key := makeMemoryKey(stored.UserID, stored.Id)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Keep the original InsertedAt when rewriting the same content.
		existing, err := readMemory(tx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			stored.InsertedAt = existing.InsertedAt
		} else {
			stored.InsertedAt = now
		}

		if err := tx.Set(key, storage.MarshalStoredMemory(&stored)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// GetMemories retrieves all memories for the given user, oldest first.
func (r *MemoryRepository) GetMemories(ctx context.Context, userID string) ([]*core.StoredMemory, error) {
	if userID == "" {
		return nil, storage.ErrEmptyUserID
	}

	memories := []*core.StoredMemory{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeUserPrefix(userID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var memory *core.StoredMemory
			err := iter.Item().Value(func(val []byte) error {
				var err error
				memory, err = storage.UnmarshalStoredMemory(val)
				return err
			})
			if err != nil {
				return err
			}
			if memory != nil {
				memories = append(memories, memory)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(memories, func(i, j int) bool {
		return memories[i].InsertedAt.Before(memories[j].InsertedAt)
	})
	return memories, nil
}

// readMemory reads one memory by key, returning nil when absent.
func readMemory(tx *badger.Txn, key []byte) (*core.StoredMemory, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var memory *core.StoredMemory
	err = item.Value(func(val []byte) error {
		var err error
		memory, err = storage.UnmarshalStoredMemory(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return memory, nil
}
