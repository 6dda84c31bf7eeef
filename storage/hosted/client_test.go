package hosted

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/lifepilot/core"
	"github.com/poiesic/lifepilot/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) storage.MemoryRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&Config{BaseURL: server.URL, APIKey: "test-key"})
	require.NoError(t, err)
	return client
}

func TestNewClientValidatesConfig(t *testing.T) {
	_, err := NewClient(&Config{APIKey: "key"})
	assert.Error(t, err)

	_, err = NewClient(&Config{BaseURL: "http://localhost:9999"})
	assert.Error(t, err)
}

func TestAddMemorySendsRequest(t *testing.T) {
	var got addRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/memories", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	stored, err := client.AddMemory(context.Background(), &core.StoredMemory{
		UserID: "alice",
		Text:   "Alice has a dentist appointment on Monday",
		Metadata: map[string]string{
			core.MetaConnector: "calendar",
			core.MetaRecordID:  "event-0",
		},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, "alice", got.UserID)
	assert.Equal(t, "Alice has a dentist appointment on Monday", got.Text)
	assert.Equal(t, "calendar", got.Metadata[core.MetaConnector])
	assert.False(t, got.Infer)
	assert.Equal(t, "alice", stored.UserID)
}

func TestAddMemoryRejectsInvalid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for invalid memory")
	})

	_, err := client.AddMemory(context.Background(), &core.StoredMemory{UserID: "alice"}, false)
	assert.ErrorIs(t, err, core.ErrInvalidMemory)
}

func TestAddMemoryServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.AddMemory(context.Background(), &core.StoredMemory{UserID: "alice", Text: "fact"}, false)
	assert.ErrorIs(t, err, storage.ErrServiceUnavailable)
}

func TestGetMemoriesWrappedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "alice", r.URL.Query().Get("user_id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [
			{"id": "m1", "memory": "Alice likes espresso", "metadata": {"connector": "audio"}},
			{"id": "m2", "text": "Alice runs on Tuesdays"}
		]}`))
	})

	memories, err := client.GetMemories(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, memories, 2)
	assert.Equal(t, "Alice likes espresso", memories[0].Text)
	assert.Equal(t, "audio", memories[0].Metadata[core.MetaConnector])
	assert.Equal(t, "Alice runs on Tuesdays", memories[1].Text)
}

func TestGetMemoriesBareListResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"memory": "bare list works"}]`))
	})

	memories, err := client.GetMemories(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, memories, 1)
	assert.Equal(t, "bare list works", memories[0].Text)
}

func TestGetMemoriesDropsTextlessItems(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"id": "m1"}, {"memory": "kept"}]}`))
	})

	memories, err := client.GetMemories(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, memories, 1)
	assert.Equal(t, "kept", memories[0].Text)
}

func TestGetMemoriesEmptyUserID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.GetMemories(context.Background(), "")
	assert.ErrorIs(t, err, storage.ErrEmptyUserID)
}

func TestGetMemoriesServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetMemories(context.Background(), "alice")
	assert.ErrorIs(t, err, storage.ErrServiceUnavailable)
}
