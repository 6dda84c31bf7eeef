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
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/lifepilot/core"
)

// utcLayout renders UTC instants with an explicit "+00:00" offset rather
// than "Z", matching the timestamps the export files carry.
const utcLayout = "2006-01-02T15:04:05-07:00"

// NormalizeUTC converts an ISO-8601 timestamp with a timezone offset to its
// UTC equivalent. The second return reports whether normalization happened:
// unparsable values (including date-only and zone-less strings) pass through
// unchanged with false, never an error.
func NormalizeUTC(value string) (string, bool) {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value, false
	}
	return ts.UTC().Format(utcLayout), true
}

type calendarExport struct {
	Events []calendarEvent `json:"events"`
}

type calendarEvent struct {
	Summary      string       `json:"summary"`
	Description  string       `json:"description"`
	Location     string       `json:"location"`
	Start        calendarTime `json:"start"`
	End          calendarTime `json:"end"`
	Attendees    any          `json:"attendees"`
	Organizer    any          `json:"organizer"`
	CalendarName string       `json:"calendar_name"`
	EventID      string       `json:"event_id"`
}

type calendarTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
}

// value returns the event time as a string, preferring the timed form over
// the all-day form.
func (t calendarTime) value() string {
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}

// LoadCalendarFile parses a calendar export into (record, metadata) pairs.
// Start and end times are normalized to UTC; events without an event_id get
// a synthesized "event-{index}" record id. A file without an "events" array
// yields an empty sequence.
func LoadCalendarFile(path string) (iter.Seq2[core.Record, core.Metadata], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var export calendarExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parsing calendar file %s: %w", path, err)
	}

	userID := fileStem(path)
	source := filepath.Base(path)

	return func(yield func(core.Record, core.Metadata) bool) {
		for idx, event := range export.Events {
			var startUTC, endUTC string
			if raw := event.Start.value(); raw != "" {
				startUTC, _ = NormalizeUTC(raw)
			}
			if raw := event.End.value(); raw != "" {
				endUTC, _ = NormalizeUTC(raw)
			}

			record := core.Record{}
			putString(record, "summary", event.Summary)
			putString(record, "description", event.Description)
			putString(record, "location", event.Location)
			putString(record, "start_utc", startUTC)
			putString(record, "end_utc", endUTC)
			putString(record, "calendar_name", event.CalendarName)
			if event.Attendees != nil {
				record["attendees"] = event.Attendees
			}
			if event.Organizer != nil {
				record["organizer"] = event.Organizer
			}

			recordID := event.EventID
			if recordID == "" {
				recordID = fmt.Sprintf("event-%d", idx)
			}

			timestamp := startUTC
			if timestamp == "" {
				timestamp = endUTC
			}

			metadata := core.Metadata{
				UserID:    userID,
				Source:    source,
				RecordID:  recordID,
				Timestamp: timestamp,
				StartUTC:  startUTC,
				EndUTC:    endUTC,
			}

			if !yield(record, metadata) {
				return
			}
		}
	}, nil
}

// fileStem returns the file name without its extension, which doubles as the
// default user id for a file's records.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// putString adds a key only when the value is non-empty, keeping records
// free of placeholder fields.
func putString(record core.Record, key, value string) {
	if value != "" {
		record[key] = value
	}
}
