package ai

import (
	"context"

	"github.com/poiesic/lifepilot/core"
	"github.com/tmc/langchaingo/llms"
)

// FactRequest carries everything the extractor needs to condense one
// connector record into a remembered fact.
type FactRequest struct {
	// Note is a short connector-specific instruction giving the model source
	// context, e.g. "Connector: calendar. Keep it factual and concise."
	Note string

	// Record is the full raw record, giving the model structured fields the
	// note alone may not carry (times, locations, attendees).
	Record core.Record

	// References are texts of previously stored memories that lexically
	// overlap the record. They give the model continuity context and are
	// never modified.
	References []string
}

// FactExtractor condenses raw records into single factual sentences.
// Implementations must be thread-safe for concurrent use.
type FactExtractor interface {
	// ExtractFact returns one factual sentence worth remembering about the
	// record, or the empty string when the record contains nothing worth
	// keeping. An empty result is a valid outcome, not an error.
	ExtractFact(ctx context.Context, req FactRequest) (string, error)
}

// AIProvider aggregates the AI services and manages their lifecycle.
type AIProvider interface {
	// FactExtractor returns the fact extraction service.
	FactExtractor() FactExtractor

	// ChatModel returns the conversational model used by the assistant agent.
	ChatModel() llms.Model

	// Close releases any resources held by the provider.
	Close() error
}
