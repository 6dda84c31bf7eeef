package ingest

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/lifepilot/ai"
	"github.com/poiesic/lifepilot/ai/mock"
	"github.com/poiesic/lifepilot/core"
	"github.com/poiesic/lifepilot/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory storage.MemoryRepository with injectable failures.
type fakeRepo struct {
	memories map[string][]*core.StoredMemory
	added    []*core.StoredMemory
	getErr   error
	addErr   error
	getCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{memories: map[string][]*core.StoredMemory{}}
}

func (r *fakeRepo) AddMemory(ctx context.Context, memory *core.StoredMemory, infer bool) (*core.StoredMemory, error) {
	if r.addErr != nil {
		return nil, r.addErr
	}
	if infer {
		return nil, errors.New("pipeline must store verbatim")
	}
	r.added = append(r.added, memory)
	return memory, nil
}

func (r *fakeRepo) GetMemories(ctx context.Context, userID string) ([]*core.StoredMemory, error) {
	r.getCalls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.memories[userID], nil
}

func (r *fakeRepo) Close() error { return nil }

func rawConfig() Config {
	cfg := DefaultConfig()
	cfg.UserID = ""
	cfg.Enrich = false
	return cfg
}

func TestNewPipelineValidation(t *testing.T) {
	t.Run("repository required", func(t *testing.T) {
		_, err := NewPipeline(nil, mock.NewMockFactExtractor(), DefaultConfig())
		assert.ErrorIs(t, err, ErrRepositoryRequired)
	})

	t.Run("extractor required when enriching", func(t *testing.T) {
		_, err := NewPipeline(newFakeRepo(), nil, DefaultConfig())
		assert.ErrorIs(t, err, ErrExtractorRequired)
	})

	t.Run("extractor optional without enrichment", func(t *testing.T) {
		_, err := NewPipeline(newFakeRepo(), nil, rawConfig())
		assert.NoError(t, err)
	})
}

func TestIngestFileCalendarRawText(t *testing.T) {
	path := writeFile(t, "alice.json", `{
		"events": [{
			"summary": "Dentist",
			"start": {"dateTime": "2025-03-01T09:00:00Z"},
			"end": {"dateTime": "2025-03-01T10:00:00Z"}
		}]
	}`)

	repo := newFakeRepo()
	pipeline, err := NewPipeline(repo, nil, rawConfig())
	require.NoError(t, err)

	processed, stored, err := pipeline.IngestFile(context.Background(), ConnectorCalendar, path)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 1, stored)

	require.Len(t, repo.added, 1)
	memory := repo.added[0]
	assert.Equal(t, "alice", memory.UserID)
	assert.Equal(t, "Dentist", memory.Text)
	assert.Equal(t, map[string]string{
		core.MetaConnector: "calendar",
		core.MetaSource:    "alice.json",
		core.MetaRecordID:  "event-0",
		core.MetaTimestamp: "2025-03-01T09:00:00+00:00",
	}, memory.Metadata)
	assert.Equal(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), memory.Timestamp)
}

func TestIngestFileDryRun(t *testing.T) {
	path := writeFile(t, "alice.json", `{
		"events": [{"summary": "One"}, {"summary": "Two"}, {"summary": "Three"}]
	}`)

	repo := newFakeRepo()
	cfg := rawConfig()
	cfg.DryRun = true

	var out bytes.Buffer
	pipeline, err := NewPipeline(repo, nil, cfg, WithDryRunOutput(&out))
	require.NoError(t, err)

	processed, stored, err := pipeline.IngestFile(context.Background(), ConnectorCalendar, path)
	require.NoError(t, err)
	assert.Equal(t, 3, processed)
	assert.Equal(t, 0, stored)
	assert.Empty(t, repo.added, "dry run issues no store calls")
	assert.Contains(t, out.String(), "[dry-run] calendar -> alice.json | One")
}

func TestIngestFileLimit(t *testing.T) {
	path := writeFile(t, "alice.json", `{
		"events": [{"summary": "A"}, {"summary": "B"}, {"summary": "C"}, {"summary": "D"}, {"summary": "E"}]
	}`)

	repo := newFakeRepo()
	cfg := rawConfig()
	cfg.Limit = 2

	pipeline, err := NewPipeline(repo, nil, cfg)
	require.NoError(t, err)

	processed, stored, err := pipeline.IngestFile(context.Background(), ConnectorCalendar, path)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.Equal(t, 2, stored)
}

func TestIngestFileSkipsEmptyEnrichment(t *testing.T) {
	path := writeFile(t, "carol.json", `{
		"extractions": [
			{"content": {"transcription": "keep this"}},
			{"content": {"transcription": "drop this"}}
		]
	}`)

	extractor := mock.NewMockFactExtractor()
	extractor.ExtractFactFunc = func(ctx context.Context, req ai.FactRequest) (string, error) {
		if req.Record["transcription"] == "drop this" {
			return "", nil
		}
		return "Carol said: keep this", nil
	}

	repo := newFakeRepo()
	cfg := DefaultConfig()
	cfg.UserID = ""

	pipeline, err := NewPipeline(repo, extractor, cfg)
	require.NoError(t, err)

	processed, stored, err := pipeline.IngestFile(context.Background(), ConnectorAudio, path)
	require.NoError(t, err)
	assert.Equal(t, 2, processed, "skipped records still count as processed")
	assert.Equal(t, 1, stored)
	require.Len(t, repo.added, 1)
	assert.Equal(t, "Carol said: keep this", repo.added[0].Text)
}

func TestIngestFilePassesContextMemories(t *testing.T) {
	path := writeFile(t, "alice.json", `{
		"events": [{"summary": "dentist checkup visit"}, {"summary": "quarterly planning"}]
	}`)

	repo := newFakeRepo()
	repo.memories["alice"] = []*core.StoredMemory{
		{UserID: "alice", Text: "Alice visits the dentist downtown"},
		{UserID: "alice", Text: "Alice plays tennis on Sundays"},
	}

	extractor := mock.NewMockFactExtractor()
	cfg := DefaultConfig()
	cfg.UserID = ""

	pipeline, err := NewPipeline(repo, extractor, cfg)
	require.NoError(t, err)

	_, _, err = pipeline.IngestFile(context.Background(), ConnectorCalendar, path)
	require.NoError(t, err)

	requests := extractor.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, []string{"Alice visits the dentist downtown"}, requests[0].References)
	assert.Empty(t, requests[1].References, "unrelated record gets no references")

	assert.Equal(t, 1, repo.getCalls, "memory list is fetched once per file")
}

func TestIngestFileMemoryFetchFailureContinues(t *testing.T) {
	path := writeFile(t, "alice.json", `{"events": [{"summary": "Dentist"}]}`)

	repo := newFakeRepo()
	repo.getErr = errors.New("service down")

	extractor := mock.NewMockFactExtractor()
	cfg := DefaultConfig()

	pipeline, err := NewPipeline(repo, extractor, cfg)
	require.NoError(t, err)

	processed, stored, err := pipeline.IngestFile(context.Background(), ConnectorCalendar, path)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 1, stored)

	requests := extractor.Requests()
	require.Len(t, requests, 1)
	assert.Empty(t, requests[0].References, "fetch failure degrades to empty context")
}

func TestIngestFileStoreFailureAborts(t *testing.T) {
	path := writeFile(t, "alice.json", `{"events": [{"summary": "A"}, {"summary": "B"}]}`)

	repo := newFakeRepo()
	repo.addErr = errors.New("store down")

	pipeline, err := NewPipeline(repo, nil, rawConfig())
	require.NoError(t, err)

	processed, stored, err := pipeline.IngestFile(context.Background(), ConnectorCalendar, path)
	assert.Error(t, err)
	assert.Equal(t, 1, processed, "failure aborts the file's remaining records")
	assert.Equal(t, 0, stored)
}

func TestIngestFileUserIDPrecedence(t *testing.T) {
	path := writeFile(t, "alice.json", `{"events": [{"summary": "Dentist"}]}`)

	t.Run("config override wins", func(t *testing.T) {
		repo := newFakeRepo()
		cfg := rawConfig()
		cfg.UserID = "override"

		pipeline, err := NewPipeline(repo, nil, cfg)
		require.NoError(t, err)

		_, _, err = pipeline.IngestFile(context.Background(), ConnectorCalendar, path)
		require.NoError(t, err)
		require.Len(t, repo.added, 1)
		assert.Equal(t, "override", repo.added[0].UserID)
	})

	t.Run("falls back to file metadata", func(t *testing.T) {
		repo := newFakeRepo()

		pipeline, err := NewPipeline(repo, nil, rawConfig())
		require.NoError(t, err)

		_, _, err = pipeline.IngestFile(context.Background(), ConnectorCalendar, path)
		require.NoError(t, err)
		require.Len(t, repo.added, 1)
		assert.Equal(t, "alice", repo.added[0].UserID)
	})
}

func TestIngestFileUnknownConnector(t *testing.T) {
	pipeline, err := NewPipeline(newFakeRepo(), nil, rawConfig())
	require.NoError(t, err)

	_, _, err = pipeline.IngestFile(context.Background(), Connector("email"), "whatever.json")
	assert.ErrorIs(t, err, ErrUnknownConnector)
}

func TestIngestFileEndToEndWithLocalStore(t *testing.T) {
	path := writeFile(t, "alice.json", `{
		"events": [{
			"summary": "Dentist",
			"start": {"dateTime": "2025-03-01T09:00:00Z"},
			"end": {"dateTime": "2025-03-01T10:00:00Z"}
		}]
	}`)

	repo, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	pipeline, err := NewPipeline(repo, nil, rawConfig())
	require.NoError(t, err)

	processed, stored, err := pipeline.IngestFile(context.Background(), ConnectorCalendar, path)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 1, stored)

	memories, err := repo.GetMemories(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, memories, 1)
	assert.Equal(t, "Dentist", memories[0].Text)
	assert.Equal(t, map[string]string{
		core.MetaConnector: "calendar",
		core.MetaSource:    "alice.json",
		core.MetaRecordID:  "event-0",
		core.MetaTimestamp: "2025-03-01T09:00:00+00:00",
	}, memories[0].Metadata)
}

func TestIngestPaths(t *testing.T) {
	first := writeFile(t, "a.json", `{"events": [{"summary": "A"}, {"summary": "B"}]}`)
	second := writeFile(t, "b.json", `{"events": [{"summary": "C"}]}`)

	repo := newFakeRepo()
	pipeline, err := NewPipeline(repo, nil, rawConfig())
	require.NoError(t, err)

	processed, stored, err := pipeline.IngestPaths(context.Background(), ConnectorCalendar, []string{first, second})
	require.NoError(t, err)
	assert.Equal(t, 3, processed)
	assert.Equal(t, 3, stored)
}
