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


package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poiesic/lifepilot/calendar"
	"github.com/poiesic/lifepilot/core"
	"github.com/poiesic/lifepilot/search"
	"github.com/poiesic/lifepilot/storage"
	"github.com/tmc/langchaingo/llms"
)

const (
	maxSearchResults    = 5
	minSearchScore      = 0.2
	maxMemoriesPerGroup = 3
	memoryPreviewLength = 50
)

// EventCreator creates calendar events; satisfied by *calendar.Client.
type EventCreator interface {
	CreateEvent(ctx context.Context, req calendar.EventRequest) (string, error)
}

// Toolset executes the agent's client-side tools against the memory
// repository and the calendar service. Tool results are plain strings fed
// back to the model.
type Toolset struct {
	userID     string
	repository storage.MemoryRepository
	calendar   EventCreator
}

// NewToolset creates the toolset for one user. The calendar may be nil, in
// which case event creation reports itself unavailable.
func NewToolset(userID string, repository storage.MemoryRepository, calendar EventCreator) *Toolset {
	return &Toolset{
		userID:     userID,
		repository: repository,
		calendar:   calendar,
	}
}

// Definitions returns the tool schemas advertised to the model.
func (t *Toolset) Definitions() []llms.Tool {
	return []llms.Tool{
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name: "add_memory",
				Description: "Silently store new information about the user (preferences, habits, facts, routines). " +
					"Do NOT tell the user you are storing it. " +
					"Use when learning anything that should be remembered for future interactions.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"memory_text": map[string]any{
							"type":        "string",
							"description": "The information to remember",
						},
						"metadata": map[string]any{
							"type":        "object",
							"description": "Optional categorization",
							"properties": map[string]any{
								"category": map[string]any{
									"type": "string",
									"enum": []string{"preference", "habit", "fact", "schedule", "location"},
								},
								"confidence": map[string]any{
									"type": "string",
									"enum": []string{"high", "medium", "low"},
								},
							},
						},
					},
					"required": []string{"memory_text"},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name: "search_memories",
				Description: "ALWAYS call this first to personalize before responding. " +
					"Search stored memories for user preferences, routines, relationships, or past facts.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"query": map[string]any{
							"type":        "string",
							"description": "What to search for",
						},
					},
					"required": []string{"query"},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        "get_all_memories",
				Description: "Get complete memory context. Use for briefings or when full user context is needed.",
				Parameters: map[string]any{
					"type":       "object",
					"properties": map[string]any{},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        "create_calendar_event",
				Description: "Create a calendar event on the user's primary calendar.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"summary":   map[string]any{"type": "string", "description": "Event summary/title"},
						"start_iso": map[string]any{"type": "string", "description": "Start datetime in ISO (e.g., 2025-12-10T10:00:00)"},
						"end_iso":   map[string]any{"type": "string", "description": "End datetime in ISO (e.g., 2025-12-10T11:00:00)"},
						"timezone":  map[string]any{"type": "string", "description": "Timezone ID, default UTC"},
						"attendees": map[string]any{
							"type":        "object",
							"description": `Optional attendees as { "emails": ["a@b.com"] }`,
							"properties": map[string]any{
								"emails": map[string]any{
									"type":  "array",
									"items": map[string]any{"type": "string"},
								},
							},
						},
					},
					"required": []string{"summary", "start_iso", "end_iso"},
				},
			},
		},
	}
}

type addMemoryArgs struct {
	MemoryText string            `json:"memory_text"`
	Metadata   map[string]string `json:"metadata"`
}

type searchMemoriesArgs struct {
	Query string `json:"query"`
}

type createEventArgs struct {
	Summary   string `json:"summary"`
	StartISO  string `json:"start_iso"`
	EndISO    string `json:"end_iso"`
	Timezone  string `json:"timezone"`
	Attendees struct {
		Emails []string `json:"emails"`
	} `json:"attendees"`
}

// Dispatch executes one tool call by name with JSON-encoded arguments.
func (t *Toolset) Dispatch(ctx context.Context, name, arguments string) (string, error) {
	switch name {
	case "add_memory":
		var args addMemoryArgs
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("add_memory: %w", err)
		}
		return t.addMemory(ctx, args.MemoryText, args.Metadata)

	case "search_memories":
		var args searchMemoriesArgs
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("search_memories: %w", err)
		}
		return t.searchMemories(ctx, args.Query)

	case "get_all_memories":
		return t.getAllMemories(ctx)

	case "create_calendar_event":
		var args createEventArgs
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", fmt.Errorf("create_calendar_event: %w", err)
		}
		return t.createCalendarEvent(ctx, args)

	default:
		return "", fmt.Errorf("unknown tool %q", name)
	}
}

func (t *Toolset) addMemory(ctx context.Context, text string, metadata map[string]string) (string, error) {
	if metadata == nil {
		metadata = map[string]string{}
	}
	metadata[core.MetaSource] = "agent"

	_, err := t.repository.AddMemory(ctx, &core.StoredMemory{
		UserID:   t.userID,
		Text:     text,
		Metadata: metadata,
	}, false)
	if err != nil {
		return "", err
	}
	return "Stored memory: " + preview(text), nil
}

func (t *Toolset) searchMemories(ctx context.Context, query string) (string, error) {
	memories, err := t.repository.GetMemories(ctx, t.userID)
	if err != nil {
		return "", err
	}
	if len(memories) == 0 {
		return "No memories found.", nil
	}

	ranked := search.RankMemories(query, memories)
	var lines []string
	for _, scored := range ranked {
		if len(lines) >= maxSearchResults || scored.Score <= minSearchScore {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s", len(lines)+1, scored.Memory.Text))
	}

	if len(lines) == 0 {
		return fmt.Sprintf("No memories matching %q", query), nil
	}
	return strings.Join(lines, "\n"), nil
}

func (t *Toolset) getAllMemories(ctx context.Context) (string, error) {
	memories, err := t.repository.GetMemories(ctx, t.userID)
	if err != nil {
		return "", err
	}
	if len(memories) == 0 {
		return "No memories stored yet.", nil
	}

	grouped := map[string][]string{}
	var order []string
	for _, memory := range memories {
		category := memory.Metadata["category"]
		if category == "" {
			category = "general"
		}
		if _, seen := grouped[category]; !seen {
			order = append(order, category)
		}
		grouped[category] = append(grouped[category], memory.Text)
	}

	lines := []string{fmt.Sprintf("Total: %d memories\n", len(memories))}
	for _, category := range order {
		lines = append(lines, strings.ToUpper(category)+":")
		for i, text := range grouped[category] {
			if i >= maxMemoriesPerGroup {
				break
			}
			lines = append(lines, "  - "+text)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (t *Toolset) createCalendarEvent(ctx context.Context, args createEventArgs) (string, error) {
	if t.calendar == nil {
		return "", fmt.Errorf("calendar is not configured")
	}
	return t.calendar.CreateEvent(ctx, calendar.EventRequest{
		Summary:   args.Summary,
		StartISO:  args.StartISO,
		EndISO:    args.EndISO,
		Timezone:  args.Timezone,
		Attendees: args.Attendees.Emails,
	})
}

// preview shortens memory text for confirmation messages.
func preview(text string) string {
	if len(text) <= memoryPreviewLength {
		return text
	}
	return text[:memoryPreviewLength] + "..."
}
