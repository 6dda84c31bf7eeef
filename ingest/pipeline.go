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


package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/poiesic/lifepilot/ai"
	"github.com/poiesic/lifepilot/core"
	"github.com/poiesic/lifepilot/search"
	"github.com/poiesic/lifepilot/storage"
)

// fallbackUserID is used when neither the configuration nor the record's
// metadata names a user.
const fallbackUserID = "demo_user"

// Config holds the settings for one ingestion invocation.
// It is read-only for the run's duration.
type Config struct {
	// Model is the fact extraction model identifier, passed through to the
	// AI configuration by the caller.
	Model string

	// Timeout bounds each AI call, passed through like Model.
	Timeout time.Duration

	// DryRun reports the would-be memory text instead of storing it.
	DryRun bool

	// Limit truncates the number of records processed per file. 0 = unbounded.
	Limit int

	// UserID overrides the per-record user id when non-empty.
	UserID string

	// Verbose enables per-record progress logging.
	Verbose bool

	// Enrich toggles AI enrichment. When off, the record's plain text is
	// stored instead.
	Enrich bool
}

// DefaultConfig returns the standard ingestion settings: enrichment on,
// no limit, no dry run.
func DefaultConfig() Config {
	return Config{
		Model:   "grok-4-1-fast-reasoning",
		Timeout: 60 * time.Second,
		UserID:  fallbackUserID,
		Enrich:  true,
	}
}

// Pipeline drives records from connector files into the memory repository.
type Pipeline struct {
	repository storage.MemoryRepository
	extractor  ai.FactExtractor
	cfg        Config
	logger     *slog.Logger
	dryRunOut  io.Writer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithDryRunOutput redirects dry-run reporting. Default is os.Stdout.
func WithDryRunOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		if w != nil {
			p.dryRunOut = w
		}
	}
}

// NewPipeline creates an ingestion pipeline. The extractor may be nil only
// when cfg.Enrich is false.
func NewPipeline(repository storage.MemoryRepository, extractor ai.FactExtractor, cfg Config, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if cfg.Enrich && extractor == nil {
		return nil, ErrExtractorRequired
	}

	p := &Pipeline{
		repository: repository,
		extractor:  extractor,
		cfg:        cfg,
		logger:     slog.Default(),
		dryRunOut:  os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// IngestFile ingests a single export file for the given connector.
// Returns how many records were processed and how many were stored.
//
// Records are attempt-once, in order. An extraction or store failure aborts
// the file's remaining records; earlier stores are not rolled back.
func (p *Pipeline) IngestFile(ctx context.Context, connector Connector, path string) (processed, stored int, err error) {
	loader, err := LoaderFor(connector)
	if err != nil {
		return 0, 0, err
	}

	records, err := loader(path)
	if err != nil {
		return 0, 0, err
	}

	if p.cfg.Verbose {
		p.logger.Info("starting file", "connector", connector, "path", path)
	}

	// The memory list is fetched once per file, on the first record, and
	// never refreshed: later records deliberately don't see this run's own
	// output as context.
	var memories []*core.StoredMemory
	memoriesFetched := false

	occurrences := map[string]int{}

	for record, metadata := range records {
		if p.cfg.Limit > 0 && processed >= p.cfg.Limit {
			break
		}
		processed++

		userID := p.cfg.UserID
		if userID == "" {
			userID = metadata.UserID
		}
		if userID == "" {
			userID = fallbackUserID
		}

		if !memoriesFetched {
			memories = p.fetchMemories(ctx, userID)
			memoriesFetched = true
		}

		references := search.SelectContext(record, memories, search.DefaultContextItems)

		text, err := p.deriveText(ctx, connector, record, references)
		if err != nil {
			return processed, stored, err
		}
		if text == "" {
			if p.cfg.Verbose {
				p.logger.Info("skipped record, nothing to remember",
					"connector", connector, "source", metadata.Source, "record", processed)
			}
			continue
		}

		// Repeated text within one file run boosts confidence; the count is
		// an in-run signal only and is not persisted (stored metadata stays
		// at its four documented keys).
		occurrences[text]++

		if p.cfg.DryRun {
			fmt.Fprintf(p.dryRunOut, "[dry-run] %s -> %s | %s\n", connector, metadata.Source, text)
			continue
		}

		memory := &core.StoredMemory{
			UserID: userID,
			Text:   text,
			Metadata: map[string]string{
				core.MetaConnector: string(connector),
				core.MetaSource:    metadata.Source,
				core.MetaRecordID:  metadata.RecordID,
				core.MetaTimestamp: metadata.Timestamp,
			},
		}
		if ts, parseErr := time.Parse(time.RFC3339, metadata.Timestamp); parseErr == nil {
			memory.Timestamp = ts.UTC()
		}

		// infer=false: the text is already condensed here, the service must
		// store it verbatim.
		if _, err := p.repository.AddMemory(ctx, memory, false); err != nil {
			return processed, stored, err
		}
		stored++

		if p.cfg.Verbose {
			p.logger.Info("stored memory",
				"connector", connector, "source", metadata.Source,
				"record", processed, "occurrence", occurrences[text])
		}
	}

	return processed, stored, nil
}

// IngestPaths ingests each path in order, summing the per-file counts.
// No state crosses file boundaries except the totals.
func (p *Pipeline) IngestPaths(ctx context.Context, connector Connector, paths []string) (processed, stored int, err error) {
	for _, path := range paths {
		fileProcessed, fileStored, err := p.IngestFile(ctx, connector, path)
		processed += fileProcessed
		stored += fileStored
		if err != nil {
			return processed, stored, err
		}
		if p.cfg.Verbose {
			p.logger.Info("file done", "path", path, "processed", fileProcessed, "stored", fileStored)
		}
	}
	return processed, stored, nil
}

// fetchMemories loads the user's memory list, degrading to an empty list on
// failure so one unavailable service call never aborts a whole file.
func (p *Pipeline) fetchMemories(ctx context.Context, userID string) []*core.StoredMemory {
	memories, err := p.repository.GetMemories(ctx, userID)
	if err != nil {
		p.logger.Warn("memory fetch failed, continuing without context", "user", userID, "err", err)
		return nil
	}
	return memories
}

// deriveText produces the memory text for one record: AI enrichment when
// enabled, plain-text extraction otherwise. An empty result means "skip".
func (p *Pipeline) deriveText(ctx context.Context, connector Connector, record core.Record, references []string) (string, error) {
	if !p.cfg.Enrich {
		return record.PlainText(), nil
	}

	note := fmt.Sprintf("Connector: %s. Keep it factual and concise.", connector)
	if connector == ConnectorCalendar {
		note = "Connector: calendar. Include start_utc and end_utc if present, keep it to one short factual sentence."
	}

	return p.extractor.ExtractFact(ctx, ai.FactRequest{
		Note:       note,
		Record:     record,
		References: references,
	})
}
