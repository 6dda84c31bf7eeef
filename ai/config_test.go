package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "https://api.x.ai/v1", cfg.Host)
	assert.Equal(t, "grok-4-1-fast", cfg.ChatModel)
	assert.Equal(t, "grok-4-1-fast-reasoning", cfg.ExtractorModel)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.APIKey)
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://localhost:11434"),
		WithAPIKey("secret"),
		WithChatModel("llama3"),
		WithExtractorModel("llama3"),
		WithTimeout(5*time.Second),
	)

	assert.Equal(t, "http://localhost:11434", cfg.Host)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "llama3", cfg.ChatModel)
	assert.Equal(t, "llama3", cfg.ExtractorModel)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestNormalizeAddsV1Suffix(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"bare host", "http://localhost:11434", "http://localhost:11434/v1"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"already normalized", "https://api.x.ai/v1", "https://api.x.ai/v1"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Host: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.Host)
		})
	}
}

func TestNormalizeDefaultsTimeout(t *testing.T) {
	cfg := &Config{}
	cfg.Normalize()
	assert.Equal(t, 60*time.Second, cfg.Timeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := NewConfig(WithAPIKey("secret"))
		return cfg
	}

	t.Run("complete config passes", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := valid()
		cfg.APIKey = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := valid()
		cfg.Host = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing chat model", func(t *testing.T) {
		cfg := valid()
		cfg.ChatModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing extractor model", func(t *testing.T) {
		cfg := valid()
		cfg.ExtractorModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("validate normalizes host", func(t *testing.T) {
		cfg := valid()
		cfg.Host = "http://localhost:9100"
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:9100/v1", cfg.Host)
	})
}
