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


// Seeder generates sample connector export files for trying out the
// ingestion pipeline without real data: one calendar, one vision, and one
// audio export per user, laid out as <out>/<connector>/<user>.json so the
// file stem carries the user id.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"
)

var eventSummaries = []string{
	"Dentist appointment",
	"Team standup",
	"Lunch with Sam",
	"Quarterly planning",
	"Gym session",
	"Parent-teacher meeting",
	"Flight to Berlin",
	"Project review",
}

var eventLocations = []string{
	"Main St 12", "Office 4B", "Cafe Verde", "", "Gate A7",
}

var visionDescriptions = []string{
	"A whiteboard covered in sprint notes",
	"A receipt from a hardware store",
	"A parking spot sign reading level 3, row F",
	"A handwritten grocery list on the fridge",
}

var audioTranscriptions = []string{
	"Remind me to call the plumber tomorrow morning",
	"I prefer the window seat on long flights",
	"Book the usual court for Sunday tennis",
	"Note to self: Anna's birthday is on the twelfth",
}

func main() {
	out := flag.String("out", "sample_data", "output directory")
	user := flag.String("user", "demo_user", "user id (becomes the file stem)")
	events := flag.Int("events", 5, "number of calendar events")
	images := flag.Int("images", 3, "number of vision extractions")
	memos := flag.Int("memos", 3, "number of audio memos")
	flag.Parse()

	if err := run(*out, *user, *events, *images, *memos); err != nil {
		slog.Error("seeding failed", "err", err)
		os.Exit(1)
	}
}

func run(out, user string, events, images, memos int) error {
	base := time.Now().UTC().Truncate(time.Hour)

	files := map[string]any{
		filepath.Join(out, "calendar", user+".json"): calendarExport(base, events),
		filepath.Join(out, "vision", user+".json"):   extractionExport(base, images, "IMG_%04d.jpg", visionContent),
		filepath.Join(out, "audio", user+".json"):    extractionExport(base, memos, "memo-%02d.m4a", audioContent),
	}

	for path, doc := range files {
		if err := writeJSON(path, doc); err != nil {
			return err
		}
		fmt.Println(path)
	}
	return nil
}

func calendarExport(base time.Time, count int) any {
	events := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		start := base.Add(time.Duration(i*24+9) * time.Hour)
		end := start.Add(time.Hour)

		event := map[string]any{
			"summary":       pick(eventSummaries),
			"start":         map[string]string{"dateTime": start.Format(time.RFC3339)},
			"end":           map[string]string{"dateTime": end.Format(time.RFC3339)},
			"calendar_name": "personal",
		}
		if location := pick(eventLocations); location != "" {
			event["location"] = location
		}
		events = append(events, event)
	}
	return map[string]any{"events": events}
}

func visionContent() map[string]string {
	return map[string]string{"description": pick(visionDescriptions)}
}

func audioContent() map[string]string {
	return map[string]string{"transcription": pick(audioTranscriptions)}
}

func extractionExport(base time.Time, count int, namePattern string, content func() map[string]string) any {
	extractions := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		extractions = append(extractions, map[string]any{
			"content":  content(),
			"filename": fmt.Sprintf(namePattern, i+1),
			"date":     base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
		})
	}
	return map[string]any{"extractions": extractions}
}

func writeJSON(path string, doc any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func pick(options []string) string {
	return options[rand.IntN(len(options))]
}
