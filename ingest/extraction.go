package ingest

import (
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/poiesic/lifepilot/core"
)

// extractionExport is the shared shape of vision and audio export files:
// a list of extractions, each with a content payload, source filename, and
// capture date.
type extractionExport struct {
	Extractions []extraction `json:"extractions"`
}

type extraction struct {
	Content  extractionContent `json:"content"`
	Filename string            `json:"filename"`
	Date     string            `json:"date"`
}

type extractionContent struct {
	Description   string `json:"description"`
	Text          string `json:"text"`
	Transcription string `json:"transcription"`
}

// LoadVisionFile parses a vision export into (record, metadata) pairs.
// Records carry the image description and any recognized text.
func LoadVisionFile(path string) (iter.Seq2[core.Record, core.Metadata], error) {
	return loadExtractionFile(path, ConnectorVision, func(content extractionContent, record core.Record) {
		putString(record, "description", content.Description)
		putString(record, "text", content.Text)
	})
}

// LoadAudioFile parses an audio export into (record, metadata) pairs.
// Records carry the transcription text.
func LoadAudioFile(path string) (iter.Seq2[core.Record, core.Metadata], error) {
	return loadExtractionFile(path, ConnectorAudio, func(content extractionContent, record core.Record) {
		putString(record, "transcription", content.Transcription)
	})
}

func loadExtractionFile(path string, connector Connector, fill func(extractionContent, core.Record)) (iter.Seq2[core.Record, core.Metadata], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var export extractionExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parsing %s file %s: %w", connector, path, err)
	}

	userID := fileStem(path)
	source := filepath.Base(path)

	return func(yield func(core.Record, core.Metadata) bool) {
		for idx, item := range export.Extractions {
			record := core.Record{}
			fill(item.Content, record)
			putString(record, "filename", item.Filename)
			putString(record, "date", item.Date)

			recordID := item.Filename
			if recordID == "" {
				recordID = fmt.Sprintf("%s-%d", connector, idx)
			}

			metadata := core.Metadata{
				UserID:    userID,
				Source:    source,
				RecordID:  recordID,
				Timestamp: item.Date,
			}

			if !yield(record, metadata) {
				return
			}
		}
	}, nil
}
