package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("hello world")
		id2 := IDFromContent("hello world")
		assert.Equal(t, id1, id2)
	})

	t.Run("different content different id", func(t *testing.T) {
		id1 := IDFromContent("hello world")
		id2 := IDFromContent("hello worlds")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content", func(t *testing.T) {
		id := IDFromContent("")
		assert.NotZero(t, id)
	})
}

func TestMemoryID(t *testing.T) {
	// Same text under different users must not collide.
	id1 := MemoryID("alice", "likes pizza")
	id2 := MemoryID("bob", "likes pizza")
	assert.NotEqual(t, id1, id2)

	// The separator prevents boundary ambiguity between user and text.
	id3 := MemoryID("alicelikes", " pizza")
	assert.NotEqual(t, id1, id3)
}

func TestRecordPlainText(t *testing.T) {
	t.Run("priority order", func(t *testing.T) {
		record := Record{
			"summary":       "summary text",
			"description":   "description text",
			"transcription": "transcription text",
		}
		assert.Equal(t, "transcription text", record.PlainText())
	})

	t.Run("skips empty priority fields", func(t *testing.T) {
		record := Record{
			"summary": "",
			"text":    "buy milk",
		}
		assert.Equal(t, "buy milk", record.PlainText())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		record := Record{"description": "  padded  "}
		assert.Equal(t, "padded", record.PlainText())
	})

	t.Run("falls back to first string field in sorted key order", func(t *testing.T) {
		record := Record{
			"zebra":    "last",
			"filename": "notes.wav",
			"date":     "2025-01-01",
		}
		assert.Equal(t, "2025-01-01", record.PlainText())
	})

	t.Run("serializes record when no string field present", func(t *testing.T) {
		record := Record{"count": float64(3)}
		assert.JSONEq(t, `{"count": 3}`, record.PlainText())
	})

	t.Run("empty record serializes to empty object", func(t *testing.T) {
		record := Record{}
		assert.Equal(t, "{}", record.PlainText())
	})

	t.Run("ignores non-string priority values", func(t *testing.T) {
		record := Record{
			"description": 42,
			"summary":     "Dentist",
		}
		assert.Equal(t, "Dentist", record.PlainText())
	})
}
