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


// Package calendar creates events through the Google Calendar REST API.
//
// Credentials come from a secrets directory holding a token.json written by
// a prior OAuth flow (the flow itself is outside this package). An expired
// token surfaces as an authorization error telling the user to re-run it.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultBaseURL    = "https://www.googleapis.com/calendar/v3"
	defaultSecretsDir = "secrets/google"
	defaultTimeout    = 30 * time.Second
)

// ErrUnauthorized is returned when the stored token is rejected; the OAuth
// flow needs to be re-run to refresh it.
var ErrUnauthorized = errors.New("calendar: token rejected, re-run the authorization flow")

// Config holds connection settings for the calendar service.
type Config struct {
	// SecretsDir holds token.json. Default "secrets/google".
	SecretsDir string

	// BaseURL overrides the API root, for tests.
	BaseURL string

	// Timeout bounds each HTTP call. Default 30s.
	Timeout time.Duration
}

// Client creates events on the user's primary calendar.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// token.json as written by the OAuth flow.
type storedToken struct {
	AccessToken string `json:"token"`
	// Some flows write the field as access_token instead.
	AccessTokenAlt string `json:"access_token"`
}

func (t storedToken) value() string {
	if t.AccessToken != "" {
		return t.AccessToken
	}
	return t.AccessTokenAlt
}

// NewClient loads the stored token and returns a calendar client.
// A missing or unreadable token fails here, before any event creation.
func NewClient(config *Config) (*Client, error) {
	secretsDir := config.SecretsDir
	if secretsDir == "" {
		secretsDir = defaultSecretsDir
	}

	tokenPath := filepath.Join(secretsDir, "token.json")
	data, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("calendar: reading token at %s: %w", tokenPath, err)
	}

	var token storedToken
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("calendar: parsing token at %s: %w", tokenPath, err)
	}
	if token.value() == "" {
		return nil, fmt.Errorf("calendar: token at %s has no access token", tokenPath)
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		token:   token.value(),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// EventRequest describes one event to create.
type EventRequest struct {
	// Summary is the event title. Required.
	Summary string

	// StartISO and EndISO are ISO-8601 datetimes, e.g. "2025-12-10T10:00:00".
	StartISO string
	EndISO   string

	// Timezone is an IANA timezone ID. Default "UTC".
	Timezone string

	// Attendees are invited by email; invitations are sent on creation.
	Attendees []string
}

// Validate checks the required fields.
func (r *EventRequest) Validate() error {
	if r.Summary == "" {
		return errors.New("calendar: event summary is required")
	}
	if r.StartISO == "" || r.EndISO == "" {
		return errors.New("calendar: event start and end times are required")
	}
	return nil
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type eventAttendee struct {
	Email string `json:"email"`
}

type eventBody struct {
	Summary   string          `json:"summary"`
	Start     eventTime       `json:"start"`
	End       eventTime       `json:"end"`
	Attendees []eventAttendee `json:"attendees,omitempty"`
}

type eventResponse struct {
	HTMLLink string `json:"htmlLink"`
}

// CreateEvent inserts one event into the primary calendar and returns a
// short human-readable confirmation, suitable as a tool result.
func (c *Client) CreateEvent(ctx context.Context, req EventRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	body := eventBody{
		Summary: req.Summary,
		Start:   eventTime{DateTime: req.StartISO, TimeZone: timezone},
		End:     eventTime{DateTime: req.EndISO, TimeZone: timezone},
	}
	for _, email := range req.Attendees {
		body.Attendees = append(body.Attendees, eventAttendee{Email: email})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/calendars/primary/events?sendUpdates=all"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("calendar: event creation returned status %d", resp.StatusCode)
	}

	var created eventResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err == nil && created.HTMLLink != "" {
		return "Event created: " + created.HTMLLink, nil
	}
	return "Event created.", nil
}
