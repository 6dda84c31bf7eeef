package agent

import (
	"testing"
	"time"

	"github.com/poiesic/lifepilot/core"
	"github.com/stretchr/testify/assert"
)

func TestDayPeriod(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{6, "morning"},
		{11, "morning"},
		{12, "afternoon"},
		{16, "afternoon"},
		{17, "evening"},
		{20, "evening"},
		{21, "night"},
		{3, "night"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dayPeriod(tt.hour), "hour %d", tt.hour)
	}
}

func TestTimeContextWithoutMemories(t *testing.T) {
	now := time.Date(2026, 8, 24, 14, 5, 0, 0, time.UTC) // a Monday
	assert.Equal(t, "Today is Monday afternoon (14:05)", timeContext(now, nil))
}

func TestTimeContextWithUpcomingMemory(t *testing.T) {
	now := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	memories := []*core.StoredMemory{
		{Text: "Dentist appointment", Timestamp: now.Add(30 * time.Minute)},
	}

	got := timeContext(now, memories)
	assert.Contains(t, got, "Today is Monday morning (09:00)")
	assert.Contains(t, got, "Upcoming within 60m: 09:30 UTC | Dentist appointment")
}

func TestUpcomingContextWindow(t *testing.T) {
	now := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	t.Run("past memory ignored", func(t *testing.T) {
		memories := []*core.StoredMemory{{Text: "Old", Timestamp: now.Add(-time.Minute)}}
		assert.Empty(t, upcomingContext(now, memories))
	})

	t.Run("beyond window ignored", func(t *testing.T) {
		memories := []*core.StoredMemory{{Text: "Later", Timestamp: now.Add(2 * time.Hour)}}
		assert.Empty(t, upcomingContext(now, memories))
	})

	t.Run("first upcoming wins", func(t *testing.T) {
		memories := []*core.StoredMemory{
			{Text: "First", Timestamp: now.Add(45 * time.Minute)},
			{Text: "Second", Timestamp: now.Add(10 * time.Minute)},
		}
		assert.Contains(t, upcomingContext(now, memories), "First")
	})

	t.Run("metadata timestamp fallback", func(t *testing.T) {
		memories := []*core.StoredMemory{{
			Text:     "Standup",
			Metadata: map[string]string{core.MetaTimestamp: "2026-08-24T09:15:00+00:00"},
		}}
		assert.Contains(t, upcomingContext(now, memories), "09:15 UTC | Standup")
	})

	t.Run("zone-less metadata treated as utc", func(t *testing.T) {
		memories := []*core.StoredMemory{{
			Text:     "Review",
			Metadata: map[string]string{"start_utc": "2026-08-24T09:45:00"},
		}}
		assert.Contains(t, upcomingContext(now, memories), "09:45 UTC | Review")
	})

	t.Run("unparsable metadata ignored", func(t *testing.T) {
		memories := []*core.StoredMemory{{
			Text:     "Mystery",
			Metadata: map[string]string{core.MetaTimestamp: "soon"},
		}}
		assert.Empty(t, upcomingContext(now, memories))
	})
}
