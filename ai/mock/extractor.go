package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/lifepilot/ai"
)

// MockFactExtractor is a test double for ai.FactExtractor.
// It allows custom behavior injection via function fields.
type MockFactExtractor struct {
	// ExtractFactFunc is called by ExtractFact if set.
	// If nil, uses a deterministic default derived from the note.
	ExtractFactFunc func(ctx context.Context, req ai.FactRequest) (string, error)

	mu        sync.Mutex
	callCount int
	requests  []ai.FactRequest
}

// NewMockFactExtractor creates a mock fact extractor with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockFactExtractor() *MockFactExtractor {
	return &MockFactExtractor{}
}

// ExtractFact returns a deterministic fact derived from the request's note.
// Default behavior: "remembered: <note>" for non-empty notes, empty string
// otherwise (mirroring the production skip semantics).
func (m *MockFactExtractor) ExtractFact(ctx context.Context, req ai.FactRequest) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.ExtractFactFunc != nil {
		return m.ExtractFactFunc(ctx, req)
	}

	note := strings.TrimSpace(req.Note)
	if note == "" {
		return "", nil
	}
	return "remembered: " + note, nil
}

// CallCount returns the number of times ExtractFact was called.
func (m *MockFactExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Requests returns a copy of every request seen so far, in order.
func (m *MockFactExtractor) Requests() []ai.FactRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ai.FactRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Reset clears the call count, recorded requests, and custom functions.
func (m *MockFactExtractor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.requests = nil
	m.ExtractFactFunc = nil
}
