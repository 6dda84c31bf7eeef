package search

import (
	"sort"
	"strings"

	"github.com/poiesic/lifepilot/core"
	"github.com/xrash/smetrics"
)

// Jaro-Winkler parameters; standard values.
const (
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// substringBoost rewards memories that literally contain the query.
const substringBoost = 0.15

// ScoredMemory pairs a memory with its relevance score for a query.
type ScoredMemory struct {
	Score  float64
	Memory *core.StoredMemory
}

// RankMemories scores memories against a free-text query using Jaro-Winkler
// similarity with a light boost for literal substring matches, and returns
// them ordered best first. The sort is stable on ties.
func RankMemories(query string, memories []*core.StoredMemory) []ScoredMemory {
	queryLower := strings.ToLower(query)

	ranked := make([]ScoredMemory, 0, len(memories))
	for _, memory := range memories {
		if memory == nil {
			continue
		}
		textLower := strings.ToLower(memory.Text)
		score := smetrics.JaroWinkler(queryLower, textLower, jwBoostThreshold, jwPrefixSize)
		if queryLower != "" && strings.Contains(textLower, queryLower) {
			score += substringBoost
		}
		ranked = append(ranked, ScoredMemory{Score: score, Memory: memory})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
