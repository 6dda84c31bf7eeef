package badger

import (
	"encoding/binary"

	"github.com/poiesic/lifepilot/core"
)

// Key prefix for stored memories. Keys are user-scoped so that listing a
// user's memories is a single prefix scan:
//
//	usrmem:{userID}:{id}
const memoryPrefix = "usrmem"

// makeMemoryKey generates the key for one stored memory.
func makeMemoryKey(userID string, id core.ID) []byte {
	prefix := makeUserPrefix(userID)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// BigEndian keeps iteration order stable across scans.
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeUserPrefix generates the scan prefix covering all of one user's memories.
func makeUserPrefix(userID string) []byte {
	return []byte(memoryPrefix + ":" + userID + ":")
}
