package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/lifepilot/core"
)

// upcomingWindow is how far ahead a stored memory's timestamp may lie to be
// surfaced as an imminent reminder.
const upcomingWindow = 60 * time.Minute

// timeContext builds a one-line situational context for the model: day and
// time of day, plus the first memory falling inside the upcoming window.
// Returns "" when there is nothing to say.
func timeContext(now time.Time, memories []*core.StoredMemory) string {
	parts := []string{
		fmt.Sprintf("Today is %s %s (%s)", now.Weekday(), dayPeriod(now.Hour()), now.Format("15:04")),
	}
	if upcoming := upcomingContext(now, memories); upcoming != "" {
		parts = append(parts, upcoming)
	}
	return strings.Join(parts, " | ")
}

func dayPeriod(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}

// upcomingContext returns a short label for the first memory whose timestamp
// falls within the upcoming window, or "".
func upcomingContext(now time.Time, memories []*core.StoredMemory) string {
	deadline := now.Add(upcomingWindow)

	for _, memory := range memories {
		ts, ok := memoryTime(memory)
		if !ok {
			continue
		}
		if ts.Before(now) || ts.After(deadline) {
			continue
		}

		label := memory.Text
		if len(label) > 80 {
			label = label[:80]
		}
		when := ts.UTC().Format("15:04") + " UTC"
		if label == "" {
			return fmt.Sprintf("Upcoming within 60m: %s", when)
		}
		return fmt.Sprintf("Upcoming within 60m: %s | %s", when, label)
	}
	return ""
}

// memoryTime resolves when a memory's subject happens: the typed timestamp
// when set, otherwise the metadata timestamp or start_utc strings.
func memoryTime(memory *core.StoredMemory) (time.Time, bool) {
	if !memory.Timestamp.IsZero() {
		return memory.Timestamp, true
	}

	for _, key := range []string{core.MetaTimestamp, "start_utc"} {
		raw := memory.Metadata[key]
		if raw == "" {
			continue
		}
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			return ts.UTC(), true
		}
		// Zone-less timestamps are treated as UTC.
		if ts, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}
