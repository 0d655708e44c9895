package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"career-qa/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredAt(kb *models.KnowledgeBase, idx ...int) []models.ScoredEntry {
	out := make([]models.ScoredEntry, 0, len(idx))
	for _, i := range idx {
		e, _ := kb.Entry(i)
		out = append(out, models.ScoredEntry{KnowledgeEntry: e, Index: i, Score: 0.5})
	}
	return out
}

func TestBuildContext(t *testing.T) {
	kb := testKnowledgeBase()

	got := BuildContext(kb, scoredAt(kb, 1, 4), TierWeak, DefaultContextOptions())

	want := "1. Q: Which programming languages does Jordan use?\n" +
		"   A: Jordan works mostly in Go and Python.\n\n" +
		"2. Q: What is Jordan's educational background?\n" +
		"   A: Jordan holds a BSc in Computer Science."
	assert.Equal(t, want, got)
}

func TestBuildContextLimit(t *testing.T) {
	kb := testKnowledgeBase()
	opts := DefaultContextOptions()
	opts.Limit = 1

	got := BuildContext(kb, scoredAt(kb, 2, 0, 3), TierWeak, opts)

	assert.True(t, strings.HasPrefix(got, "1. Q: Tell me about a time"))
	assert.NotContains(t, got, "2. Q:")
}

func TestBuildContextSamplesWhenTierNone(t *testing.T) {
	kb := testKnowledgeBase()
	opts := DefaultContextOptions()
	opts.SampleSize = 2

	got := BuildContext(kb, scoredAt(kb, 1), TierNone, opts)

	assert.Contains(t, got, "What is Jordan's current role?")
	assert.Contains(t, got, "Tell me about a time Jordan handled a production incident.")
	assert.NotContains(t, got, "Which programming languages")
}

func TestBuildContextTruncates(t *testing.T) {
	kb := testKnowledgeBase()
	opts := DefaultContextOptions()
	opts.MaxChars = 20

	got := BuildContext(kb, scoredAt(kb, 0, 1, 2), TierWeak, opts)

	assert.True(t, strings.HasSuffix(got, contextTruncatedMarker))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 20+utf8.RuneCountInString(contextTruncatedMarker))
}

func TestBuildContextEmpty(t *testing.T) {
	assert.Empty(t, BuildContext(testKnowledgeBase(), nil, TierWeak, DefaultContextOptions()))
	assert.Empty(t, BuildContext(models.NewKnowledgeBase(nil), nil, TierNone, DefaultContextOptions()))
}

func TestSampleEntries(t *testing.T) {
	kb := testKnowledgeBase()

	assert.Nil(t, SampleEntries(kb, 0))

	all := SampleEntries(kb, 10)
	require.Len(t, all, kb.Len())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, indices(all))

	assert.Equal(t, []int{0, 2}, indices(SampleEntries(kb, 2)))
}
