package service

import (
	"context"
	"testing"
	"time"

	"career-qa/internal/models"
	"career-qa/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSearchExactMatchIsStrong(t *testing.T) {
	r := newTestRetrieval(nil)

	res := r.Search(context.Background(), "what is jordan's current role", SearchOptions{})

	require.NotEmpty(t, res.Entries)
	assert.True(t, res.ExactMatch)
	assert.Equal(t, 0, res.Entries[0].Index)
	assert.Equal(t, TierStrong, res.Tier)
	assert.Equal(t, 1.0, res.Confidence)
}

func TestSearchLexicalTiers(t *testing.T) {
	r := newTestRetrieval(nil)
	ctx := context.Background()

	strong := r.Search(ctx, "python languages", SearchOptions{})
	require.NotEmpty(t, strong.Entries)
	assert.Equal(t, 1, strong.Entries[0].Index)
	assert.Equal(t, TierStrong, strong.Tier)
	assert.False(t, strong.ExactMatch)

	weak := r.Search(ctx, "northwind", SearchOptions{})
	require.Len(t, weak.Entries, 2)
	assert.Equal(t, []int{0, 3}, indices(weak.Entries))
	assert.Equal(t, TierWeak, weak.Tier)

	none := r.Search(ctx, "quantum chromodynamics", SearchOptions{})
	assert.Empty(t, none.Entries)
	assert.Equal(t, TierNone, none.Tier)
	assert.False(t, none.SemanticFailed, "no index means no semantic failure")
}

func TestSearchSemantic(t *testing.T) {
	ctx := context.Background()
	embedder := &vocabEmbedder{vocab: []string{"go", "incident"}}
	index, err := BuildEmbeddingIndex(ctx, embedder, testKnowledgeBase(), 8, time.Second, zap.NewNop())
	require.NoError(t, err)
	r := newTestRetrieval(index)

	res := r.Search(ctx, "go", SearchOptions{})
	require.Len(t, res.Entries, 1)
	assert.Equal(t, 1, res.Entries[0].Index)
	assert.Zero(t, res.Entries[0].Lexical)
	assert.InDelta(t, 0.65, res.Entries[0].Score, 1e-9)
	assert.Equal(t, TierWeak, res.Tier)

	embedder.queryErr = errUnavailable
	degraded := r.Search(ctx, "go", SearchOptions{})
	assert.True(t, degraded.SemanticFailed)
	assert.Empty(t, degraded.Entries)
	assert.True(t, r.Stats().SemanticEnabled)
}

func TestSearchKeywordHitNeedsSemanticAgreement(t *testing.T) {
	ctx := context.Background()
	embedder := &vocabEmbedder{vocab: []string{"python", "dispatch"}}
	index, err := BuildEmbeddingIndex(ctx, embedder, testKnowledgeBase(), 8, time.Second, zap.NewNop())
	require.NoError(t, err)

	withEmbeddings := newTestRetrieval(index).Search(ctx, "python dispatch", SearchOptions{})
	require.NotEmpty(t, withEmbeddings.Entries)
	assert.Equal(t, 1, withEmbeddings.Entries[0].Index)
	assert.Equal(t, 28, withEmbeddings.Entries[0].Lexical)
	assert.Equal(t, TierWeak, withEmbeddings.Tier)
	assert.Less(t, withEmbeddings.Confidence, 0.9)

	lexicalOnly := newTestRetrieval(nil).Search(ctx, "python dispatch", SearchOptions{})
	require.NotEmpty(t, lexicalOnly.Entries)
	assert.Equal(t, 1, lexicalOnly.Entries[0].Index)
	assert.Equal(t, TierStrong, lexicalOnly.Tier)

	embedder.queryErr = errUnavailable
	degraded := newTestRetrieval(index).Search(ctx, "python dispatch", SearchOptions{})
	assert.True(t, degraded.SemanticFailed)
	assert.Equal(t, TierStrong, degraded.Tier)
}

func TestKnowsTerm(t *testing.T) {
	r := newTestRetrieval(nil)

	tests := []struct {
		term string
		want bool
	}{
		{"python", true},
		{"Python?", true},
		{"jobs", true},
		{"current job", true},
		{"go", false},
		{"py", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, r.KnowsTerm(tt.term))
		})
	}
}

func TestSearchPrefersCategory(t *testing.T) {
	r := newTestRetrieval(nil)

	// "jordan" appears in every entry, so only the bonus separates them.
	res := r.Search(context.Background(), "jordan", SearchOptions{PreferCategory: behavioralCategory})

	require.NotEmpty(t, res.Entries)
	assert.Equal(t, 2, res.Entries[0].Index)
}

func TestContextUsesSampleForTierNone(t *testing.T) {
	r := newTestRetrieval(nil)

	text := r.Context(SearchResult{Tier: TierNone})

	assert.Contains(t, text, "1. Q: What is Jordan's current role?")
}

func TestSuggestRotatesRecentQuestions(t *testing.T) {
	r := newTestRetrieval(nil)
	ctx := context.Background()

	first := r.Suggest(ctx, "", 3)
	assert.Equal(t, []string{
		"What is Jordan's current role?",
		"Which programming languages does Jordan use?",
		"Tell me about a time Jordan handled a production incident.",
	}, first)

	second := r.Suggest(ctx, "", 3)
	assert.Equal(t, []string{
		"Where did Jordan work before Northwind?",
		"What is Jordan's educational background?",
		"What is Jordan's current role?",
	}, second)
}

func TestSuggestExcludesQuery(t *testing.T) {
	r := newTestRetrieval(nil)
	asked := "Which programming languages does Jordan use?"

	got := r.Suggest(context.Background(), asked, 5)

	assert.Len(t, got, 4)
	assert.NotContains(t, got, asked)
}

func TestSuggestLimit(t *testing.T) {
	r := NewRetrievalService(testKnowledgeBase(), nil, testRetrievalConfig(), &config.SuggestConfig{Limit: 2}, zap.NewNop())

	assert.Len(t, r.Suggest(context.Background(), "", 0), 2)
	assert.Len(t, r.Suggest(context.Background(), "", 10), 2)
}

func TestSuggestEmptyKnowledgeBase(t *testing.T) {
	r := NewRetrievalService(models.NewKnowledgeBase(nil), nil, testRetrievalConfig(), &config.SuggestConfig{}, zap.NewNop())

	assert.Empty(t, r.Suggest(context.Background(), "anything", 5))
	assert.Equal(t, Stats{}, r.Stats())
}

func TestQuestionKey(t *testing.T) {
	assert.Equal(t, "what is his experience", questionKey("  What is his  EXPERIANCE?? "))
	assert.Equal(t, "", questionKey("?"))
}
