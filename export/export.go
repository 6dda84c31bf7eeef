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


package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/lifepilot/core"
	"github.com/poiesic/lifepilot/storage"
	"github.com/samber/lo"
)

// exportedMemory is the JSON shape of one memory in an export file.
type exportedMemory struct {
	Text       string            `json:"text"`
	Timestamp  string            `json:"timestamp,omitempty"`
	InsertedAt string            `json:"inserted_at,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// userExport is the JSON document written per user.
type userExport struct {
	UserID     string           `json:"user_id"`
	ExportedAt string           `json:"exported_at"`
	Count      int              `json:"count"`
	Memories   []exportedMemory `json:"memories"`
}

// ExportUsers writes one JSON file per user into outDir, fetching and
// serializing users concurrently on a bounded worker pool. It returns the
// paths of the files written; per-user failures are joined into one error
// while the remaining users still export.
func ExportUsers(ctx context.Context, repository storage.MemoryRepository, userIDs []string, outDir string, poolSize int) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	if poolSize < 1 {
		poolSize = max(runtime.NumCPU()/2, 1)
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		paths []string
		errs  []error
	)

	for _, userID := range userIDs {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			path, err := exportUser(ctx, repository, userID, outDir)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("exporting %s: %w", userID, err))
				return
			}
			paths = append(paths, path)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}
	wg.Wait()

	slog.Default().Info("export finished", "users", len(userIDs), "written", len(paths), "failed", len(errs))
	return paths, errors.Join(errs...)
}

func exportUser(ctx context.Context, repository storage.MemoryRepository, userID, outDir string) (string, error) {
	memories, err := repository.GetMemories(ctx, userID)
	if err != nil {
		return "", err
	}

	doc := userExport{
		UserID:     userID,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(memories),
		Memories: lo.Map(memories, func(memory *core.StoredMemory, _ int) exportedMemory {
			out := exportedMemory{
				Text:     memory.Text,
				Metadata: memory.Metadata,
			}
			if !memory.Timestamp.IsZero() {
				out.Timestamp = memory.Timestamp.UTC().Format(time.RFC3339)
			}
			if !memory.InsertedAt.IsZero() {
				out.InsertedAt = memory.InsertedAt.UTC().Format(time.RFC3339)
			}
			return out
		}),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(outDir, userID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
