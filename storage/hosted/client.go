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


// Package hosted implements storage.MemoryRepository against the hosted
// memory service's REST API. The service owns persistence and optional
// AI-based fact extraction; this client only speaks its request/response
// contract:
//
//	POST {base}/v1/memories          add one memory (infer toggles extraction)
//	GET  {base}/v1/memories?user_id= list all memories for a user
//
// Responses are normalized: the service may answer with a bare list or with
// a {"results": [...]} wrapper, and each item exposes its text under either
// "memory" or "text".
package hosted

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poiesic/lifepilot/core"
	"github.com/poiesic/lifepilot/storage"
)

const defaultTimeout = 30 * time.Second

// Config holds connection settings for the hosted memory service.
type Config struct {
	// BaseURL is the service root, e.g. "https://api.memoryservice.example".
	BaseURL string

	// APIKey authenticates requests. Required.
	APIKey string

	// Timeout bounds each HTTP call. Default 30s.
	Timeout time.Duration
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("hosted config: BaseURL is required")
	}
	if c.APIKey == "" {
		return errors.New("hosted config: APIKey is required")
	}
	return nil
}

// Client is a hosted memory service client.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ storage.MemoryRepository = (*Client)(nil)

// NewClient creates a hosted memory service client.
// Fails fast when the configuration is incomplete; transport problems only
// surface on the first call.
func NewClient(config *Config) (storage.MemoryRepository, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// addRequest is the wire shape of a memory add.
type addRequest struct {
	UserID   string            `json:"user_id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Infer    bool              `json:"infer"`
}

// memoryItem is the wire shape of one memory in a service response.
type memoryItem struct {
	ID        string         `json:"id"`
	Memory    string         `json:"memory"`
	Text      string         `json:"text"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt string         `json:"created_at"`
}

// listResponse covers both the wrapped and the bare-list response shapes.
type listResponse struct {
	Results []memoryItem
}

func (lr *listResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &lr.Results)
	}
	var wrapped struct {
		Results []memoryItem `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	lr.Results = wrapped.Results
	return nil
}

// AddMemory persists one memory for memory.UserID via the service.
func (c *Client) AddMemory(ctx context.Context, memory *core.StoredMemory, infer bool) (*core.StoredMemory, error) {
	if err := core.ValidateStoredMemory(memory); err != nil {
		return nil, err
	}

	body, err := json.Marshal(addRequest{
		UserID:   memory.UserID,
		Text:     memory.Text,
		Metadata: memory.Metadata,
		Infer:    infer,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/memories", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: add returned status %d", storage.ErrServiceUnavailable, resp.StatusCode)
	}

	// The service may echo the created memory back; the caller only needs
	// the input confirmed, so response parsing failures are not fatal here.
	stored := *memory
	if data, err := io.ReadAll(resp.Body); err == nil && len(data) > 0 {
		var lr listResponse
		if json.Unmarshal(data, &lr) == nil && len(lr.Results) == 1 {
			if coerced := coerceItem(memory.UserID, lr.Results[0]); coerced != nil {
				stored = *coerced
			}
		}
	}
	return &stored, nil
}

// GetMemories retrieves all memories for the given user.
func (c *Client) GetMemories(ctx context.Context, userID string) ([]*core.StoredMemory, error) {
	if userID == "" {
		return nil, storage.ErrEmptyUserID
	}

	endpoint := c.baseURL + "/v1/memories?user_id=" + url.QueryEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: list returned status %d", storage.ErrServiceUnavailable, resp.StatusCode)
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}

	memories := make([]*core.StoredMemory, 0, len(lr.Results))
	for _, item := range lr.Results {
		if memory := coerceItem(userID, item); memory != nil {
			memories = append(memories, memory)
		}
	}
	return memories, nil
}

// Close is a no-op; the HTTP client holds no resources needing release.
func (c *Client) Close() error {
	return nil
}

// coerceItem converts a wire item into a StoredMemory. Items without any
// text are dropped (nil).
func coerceItem(userID string, item memoryItem) *core.StoredMemory {
	text := item.Memory
	if text == "" {
		text = item.Text
	}
	if text == "" {
		return nil
	}

	metadata := make(map[string]string, len(item.Metadata))
	for key, val := range item.Metadata {
		if s, ok := val.(string); ok {
			metadata[key] = s
		}
	}
	if len(metadata) == 0 {
		metadata = nil
	}

	memory := &core.StoredMemory{
		Id:       core.MemoryID(userID, text),
		UserID:   userID,
		Text:     text,
		Metadata: metadata,
	}
	if ts, err := time.Parse(time.RFC3339, item.CreatedAt); err == nil {
		memory.InsertedAt = ts.UTC()
	}
	if ts, err := time.Parse(time.RFC3339, metadata[core.MetaTimestamp]); err == nil {
		memory.Timestamp = ts.UTC()
	}
	return memory
}
