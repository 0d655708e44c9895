package service

import (
	"math"
	"sort"
	"strings"

	"career-qa/internal/models"
)

// Tier is the confidence band of the best retrieval result.
type Tier int

const (
	TierNone Tier = iota
	TierWeak
	TierStrong
)

func (t Tier) String() string {
	switch t {
	case TierStrong:
		return "strong"
	case TierWeak:
		return "weak"
	default:
		return "none"
	}
}

// FusionOptions controls how lexical and semantic scores are combined.
type FusionOptions struct {
	LexicalWeight  float64
	SemanticWeight float64
	Limit          int
	// PreferCategory entries get CategoryBonus added to their fused score.
	PreferCategory string
	CategoryBonus  float64
}

func DefaultFusionOptions() FusionOptions {
	return FusionOptions{LexicalWeight: 0.35, SemanticWeight: 0.65, Limit: 8}
}

// Fuse ranks entries by LexicalWeight*lexical/maxLexical + SemanticWeight*cosine.
// Lexical scores are normalized by the best lexical score of this query; the
// cosine similarity is used as is. Entries scoring <= 0 are dropped. Ties are
// broken by raw lexical score and then by index, so the order is deterministic.
func Fuse(kb *models.KnowledgeBase, lexical map[int]int, semantic map[int]float64, opts FusionOptions) []models.ScoredEntry {
	maxLex := 0
	for _, s := range lexical {
		maxLex = max(maxLex, s)
	}

	candidates := make(map[int]struct{}, len(lexical)+len(semantic))
	for i := range lexical {
		candidates[i] = struct{}{}
	}
	for i := range semantic {
		candidates[i] = struct{}{}
	}

	out := make([]models.ScoredEntry, 0, len(candidates))
	for i := range candidates {
		entry, ok := kb.Entry(i)
		if !ok {
			continue
		}

		lexNorm := 0.0
		if maxLex > 0 {
			lexNorm = float64(lexical[i]) / float64(maxLex)
		}
		sem := semantic[i]
		combined := opts.LexicalWeight*lexNorm + opts.SemanticWeight*sem
		if combined <= 0 {
			continue
		}
		if opts.PreferCategory != "" && strings.EqualFold(entry.Category, opts.PreferCategory) {
			combined = math.Min(1, combined+opts.CategoryBonus)
		}

		out = append(out, models.ScoredEntry{
			KnowledgeEntry: entry,
			Index:          i,
			Score:          combined,
			Lexical:        lexical[i],
			Semantic:       sem,
		})
	}

	sort.Slice(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		if out[a].Lexical != out[b].Lexical {
			return out[a].Lexical > out[b].Lexical
		}
		return out[a].Index < out[b].Index
	})

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

// Thresholds places a ranked result list into a confidence tier. Everything
// is judged on the fused 0-1 scale; raw lexical scores are mapped onto it by
// LexicalScale (0.075 maps 12 to 0.9 and 4 to 0.3). A zero LexicalScale
// judges on the fused score alone.
type Thresholds struct {
	Strong       float64
	Weak         float64
	LexicalScale float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{Strong: 0.9, Weak: 0.3, LexicalScale: 0.075}
}

// Confidence is the larger of the fused score and the scaled lexical score.
func (t Thresholds) Confidence(e models.ScoredEntry) float64 {
	return math.Max(e.Score, math.Min(1, float64(e.Lexical)*t.LexicalScale))
}

func (t Thresholds) Tier(results []models.ScoredEntry) Tier {
	if len(results) == 0 {
		return TierNone
	}
	c := t.Confidence(results[0])
	switch {
	case c >= t.Strong:
		return TierStrong
	case c > t.Weak:
		return TierWeak
	default:
		return TierNone
	}
}
