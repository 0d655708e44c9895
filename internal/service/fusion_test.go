package service

import (
	"testing"

	"career-qa/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indices(entries []models.ScoredEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Index
	}
	return out
}

func TestFuseWeightsAndOrder(t *testing.T) {
	kb := testKnowledgeBase()
	lexical := map[int]int{0: 20, 1: 10}
	semantic := map[int]float64{0: 0.2, 1: 0.9, 2: 0}

	got := Fuse(kb, lexical, semantic, DefaultFusionOptions())

	require.Equal(t, []int{1, 0}, indices(got), "zero scores are dropped")
	assert.InDelta(t, 0.35*0.5+0.65*0.9, got[0].Score, 1e-9)
	assert.InDelta(t, 0.35*1+0.65*0.2, got[1].Score, 1e-9)
	assert.Equal(t, 10, got[0].Lexical)
	assert.InDelta(t, 0.9, got[0].Semantic, 1e-9)
}

func TestFuseTiesBreakByIndex(t *testing.T) {
	kb := testKnowledgeBase()
	lexical := map[int]int{3: 10, 0: 10, 2: 10}

	first := Fuse(kb, lexical, nil, DefaultFusionOptions())
	assert.Equal(t, []int{0, 2, 3}, indices(first))

	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Fuse(kb, lexical, nil, DefaultFusionOptions()))
	}
}

func TestFuseLimit(t *testing.T) {
	kb := testKnowledgeBase()
	opts := DefaultFusionOptions()
	opts.Limit = 1

	got := Fuse(kb, map[int]int{0: 5, 1: 10}, nil, opts)

	assert.Equal(t, []int{1}, indices(got))
}

func TestFuseDropsNonPositive(t *testing.T) {
	kb := testKnowledgeBase()

	got := Fuse(kb, nil, map[int]float64{0: -0.5, 1: 0}, DefaultFusionOptions())

	assert.Empty(t, got)
}

func TestFuseIgnoresUnknownIndices(t *testing.T) {
	kb := testKnowledgeBase()

	got := Fuse(kb, map[int]int{42: 10, 1: 5}, nil, DefaultFusionOptions())

	assert.Equal(t, []int{1}, indices(got))
}

func TestFusePreferCategory(t *testing.T) {
	kb := testKnowledgeBase()
	opts := DefaultFusionOptions()
	opts.PreferCategory = "Behavioral"
	opts.CategoryBonus = 0.05

	got := Fuse(kb, map[int]int{1: 10, 2: 10}, nil, opts)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Index)
	assert.InDelta(t, 0.40, got[0].Score, 1e-9)

	capped := Fuse(kb, map[int]int{2: 10}, map[int]float64{2: 1}, opts)
	require.Len(t, capped, 1)
	assert.Equal(t, 1.0, capped[0].Score)
}

func TestThresholdsTier(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name    string
		results []models.ScoredEntry
		want    Tier
	}{
		{"no results", nil, TierNone},
		{"high fused score", []models.ScoredEntry{{Score: 0.95}}, TierStrong},
		{"medium fused score", []models.ScoredEntry{{Score: 0.5}}, TierWeak},
		{"weak boundary is exclusive", []models.ScoredEntry{{Score: 0.3}}, TierNone},
		{"strong lexical", []models.ScoredEntry{{Score: 0.1, Lexical: 13}}, TierStrong},
		{"moderate lexical", []models.ScoredEntry{{Score: 0.1, Lexical: 5}}, TierWeak},
		{"faint lexical", []models.ScoredEntry{{Score: 0.1, Lexical: 3}}, TierNone},
		{"only the top result counts", []models.ScoredEntry{{Score: 0.2}, {Score: 0.99}}, TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, th.Tier(tt.results))
		})
	}
}

func TestConfidenceCapsLexical(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, 1.0, th.Confidence(models.ScoredEntry{Lexical: 40}))
	assert.InDelta(t, 0.6, th.Confidence(models.ScoredEntry{Score: 0.6, Lexical: 1}), 1e-9)
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "strong", TierStrong.String())
	assert.Equal(t, "weak", TierWeak.String())
	assert.Equal(t, "none", TierNone.String())
}
