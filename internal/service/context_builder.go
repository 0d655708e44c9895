package service

import (
	"fmt"
	"strings"

	"career-qa/internal/models"
)

const contextTruncatedMarker = "\n[...context truncated...]"

type ContextOptions struct {
	Limit      int
	MaxChars   int
	SampleSize int
}

func DefaultContextOptions() ContextOptions {
	return ContextOptions{Limit: 6, MaxChars: 6000, SampleSize: 8}
}

// BuildContext renders grounding material for generation as a numbered list
// of question/answer pairs. For TierNone the ranked results are ignored and
// an evenly spaced sample of the whole knowledge base is used instead.
func BuildContext(kb *models.KnowledgeBase, scored []models.ScoredEntry, tier Tier, opts ContextOptions) string {
	entries := scored
	if tier == TierNone {
		entries = SampleEntries(kb, opts.SampleSize)
	}
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. Q: %s\n   A: %s\n\n", i+1, strings.TrimSpace(e.Question), strings.TrimSpace(e.Answer))
	}
	return truncateRunes(strings.TrimRight(b.String(), "\n"), opts.MaxChars)
}

// SampleEntries picks up to n entries at a fixed stride across the knowledge
// base, starting with the first entry.
func SampleEntries(kb *models.KnowledgeBase, n int) []models.ScoredEntry {
	total := kb.Len()
	if n <= 0 || total == 0 {
		return nil
	}
	stride := max(1, total/n)

	out := make([]models.ScoredEntry, 0, min(n, total))
	for i := 0; i < total && len(out) < n; i += stride {
		e, _ := kb.Entry(i)
		out = append(out, models.ScoredEntry{KnowledgeEntry: e, Index: i})
	}
	return out
}

func truncateRunes(s string, maxChars int) string {
	if maxChars <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	return strings.TrimRight(string(r[:maxChars]), " \n") + contextTruncatedMarker
}
