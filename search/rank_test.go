package search

import (
	"testing"

	"github.com/poiesic/lifepilot/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankMemories(t *testing.T) {
	t.Run("substring match ranks first", func(t *testing.T) {
		memories := mems(
			"bob plays chess on sundays",
			"alice drinks oat milk lattes",
		)

		ranked := RankMemories("oat milk", memories)
		require.Len(t, ranked, 2)
		assert.Equal(t, "alice drinks oat milk lattes", ranked[0].Memory.Text)
		assert.Greater(t, ranked[0].Score, ranked[1].Score)
	})

	t.Run("empty query yields no boost", func(t *testing.T) {
		ranked := RankMemories("", mems("something"))
		require.Len(t, ranked, 1)
		assert.LessOrEqual(t, ranked[0].Score, 1.0)
	})

	t.Run("nil memories skipped", func(t *testing.T) {
		memories := []*core.StoredMemory{nil, {UserID: "a", Text: "kept"}}
		ranked := RankMemories("kept", memories)
		require.Len(t, ranked, 1)
		assert.Equal(t, "kept", ranked[0].Memory.Text)
	})

	t.Run("deterministic order", func(t *testing.T) {
		memories := mems("alpha beta", "gamma delta", "epsilon zeta")
		first := RankMemories("beta", memories)
		second := RankMemories("beta", memories)
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].Memory.Text, second[i].Memory.Text)
		}
	})
}
