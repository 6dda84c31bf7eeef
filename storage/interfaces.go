package storage

import (
	"context"

	"github.com/poiesic/lifepilot/core"
)

// MemoryRepository provides operations for persisting and listing stored
// memories per user. Implementations must be thread-safe.
type MemoryRepository interface {
	// AddMemory persists one memory for memory.UserID.
	//
	// When infer is true the backend may run its own AI fact extraction over
	// the text before storing; when false the text is stored verbatim. The
	// local store always stores verbatim and ignores the flag.
	//
	// Returns the memory as persisted (ID and timestamps populated).
	AddMemory(ctx context.Context, memory *core.StoredMemory, infer bool) (*core.StoredMemory, error)

	// GetMemories retrieves all memories for the given user.
	// A user with no memories yields an empty slice, not an error.
	GetMemories(ctx context.Context, userID string) ([]*core.StoredMemory, error)

	// Close closes the backend and releases resources.
	Close() error
}
