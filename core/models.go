package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored memories.
// It is generated by content-based hashing so that identical text for the
// same user maps to the same memory.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// MemoryID derives the storage ID for a memory from its owner and text.
func MemoryID(userID, text string) ID {
	return IDFromContent(userID + "\x00" + text)
}

// Record is one source item produced by a connector. Field names vary by
// connector (a calendar event carries summary/start_utc, an audio extraction
// carries transcription), so the record stays schemaless and consumers probe
// the recognized fields explicitly.
type Record map[string]any

// TextFieldPriority is the fixed probe order for text-bearing record fields.
// Both context selection and the raw-text fallback follow this order.
var TextFieldPriority = []string{"transcription", "description", "text", "summary"}

// PlainText picks a reasonable raw text from the record without enrichment.
//
// Probe order:
//  1. the recognized text fields, in TextFieldPriority order
//  2. the first non-empty string value in sorted key order
//  3. the whole record serialized to JSON
//
// Returns "" only when the record holds no extractable text at all.
func (r Record) PlainText() string {
	for _, key := range TextFieldPriority {
		if s, ok := r[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}

	// Sorted keys keep the fallback deterministic.
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if s, ok := r[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}

	data, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return string(data)
}

// Metadata describes the provenance of a record within its source file.
// The loader fills it; the ingestion pipeline consumes it when assembling
// the persisted memory metadata.
type Metadata struct {
	UserID    string
	Source    string // origin file name
	RecordID  string // connector-assigned or synthesized "{connector}-{index}"
	Timestamp string // ISO-8601, may be empty
	StartUTC  string // calendar only
	EndUTC    string // calendar only
}

// Persisted metadata keys.
const (
	MetaConnector = "connector"
	MetaSource    = "source"
	MetaRecordID  = "record_id"
	MetaTimestamp = "timestamp"
)

// StoredMemory is the text-plus-metadata unit persisted per user.
// Text is a single condensed factual sentence (when enrichment ran) or a
// best-effort plain-text extraction.
type StoredMemory struct {
	Id         ID
	UserID     string
	Text       string
	Timestamp  time.Time // When the underlying record happened
	InsertedAt time.Time // When the memory was persisted
	UpdatedAt  time.Time // When the memory was last rewritten
	Metadata   map[string]string
}
