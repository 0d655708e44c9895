package service

import (
	"context"
	"slices"
	"strings"
	"time"
	"unicode"

	"career-qa/internal/models"
	"career-qa/pkg/config"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const behavioralCategory = "behavioral"

// SearchOptions narrows a single retrieval.
type SearchOptions struct {
	Limit int
	// PreferCategory entries get the configured category bonus.
	PreferCategory string
}

// SearchResult is a ranked retrieval with its confidence tier.
type SearchResult struct {
	Entries        []models.ScoredEntry
	Tier           Tier
	Confidence     float64
	ExactMatch     bool
	SemanticFailed bool
}

// Stats describes the loaded retrieval state.
type Stats struct {
	Entries         int
	SemanticEnabled bool
	Dimensions      int
}

// RetrievalService owns the knowledge base and its embedding index. Both are
// built once at startup and only read afterwards.
type RetrievalService struct {
	kb         *models.KnowledgeBase
	index      *EmbeddingIndex
	fusion     FusionOptions
	thresholds Thresholds
	context    ContextOptions
	// recent holds suggestion questions surfaced within the recency TTL.
	recent       *cache.Cache
	suggestLimit int
	logger       *zap.Logger
}

func NewRetrievalService(
	kb *models.KnowledgeBase,
	index *EmbeddingIndex,
	retrieval *config.RetrievalConfig,
	suggest *config.SuggestConfig,
	logger *zap.Logger,
) *RetrievalService {
	if kb == nil {
		kb = models.NewKnowledgeBase(nil)
	}

	ttl := suggest.RecentTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	limit := suggest.Limit
	if limit <= 0 || limit > 5 {
		limit = 5
	}

	return &RetrievalService{
		kb:    kb,
		index: index,
		fusion: FusionOptions{
			LexicalWeight:  retrieval.LexicalWeight,
			SemanticWeight: retrieval.SemanticWeight,
			Limit:          retrieval.ContextLimit,
			CategoryBonus:  retrieval.CategoryBonus,
		},
		thresholds: Thresholds{
			Strong:       retrieval.StrongThreshold,
			Weak:         retrieval.WeakThreshold,
			LexicalScale: retrieval.LexicalScale,
		},
		context: ContextOptions{
			Limit:      retrieval.ContextLimit,
			MaxChars:   retrieval.ContextMaxChars,
			SampleSize: retrieval.SampleSize,
		},
		recent:       cache.New(ttl, 2*ttl),
		suggestLimit: limit,
		logger:       logger,
	}
}

// Search ranks the knowledge base against query with lexical and semantic
// scores. An embedding failure only disables semantic scoring for this call.
func (s *RetrievalService) Search(ctx context.Context, query string, opts SearchOptions) SearchResult {
	lexical := LexicalScores(query, s.kb)
	semantic := s.index.Similarities(ctx, query)

	fusion := s.fusion
	if opts.Limit > 0 {
		fusion.Limit = opts.Limit
	}
	fusion.PreferCategory = opts.PreferCategory

	res := SearchResult{
		Entries:        Fuse(s.kb, lexical, semantic, fusion),
		SemanticFailed: s.index.Enabled() && len(semantic) == 0,
	}

	if idx, ok := s.exactMatch(query); ok {
		res.Entries = promote(res.Entries, idx, s.kb)
		res.ExactMatch = true
	}

	// The lexical mapping only stands in for missing semantic scores.
	thresholds := s.thresholds
	if len(semantic) > 0 {
		thresholds.LexicalScale = 0
	}
	res.Tier = thresholds.Tier(res.Entries)
	if len(res.Entries) > 0 {
		res.Confidence = thresholds.Confidence(res.Entries[0])
	}
	if res.ExactMatch {
		res.Tier = TierStrong
		res.Confidence = 1
	}

	s.logger.Debug("Knowledge search completed",
		zap.String("query", query),
		zap.Int("results", len(res.Entries)),
		zap.String("tier", res.Tier.String()),
		zap.Float64("confidence", res.Confidence),
	)
	return res
}

// Context renders the grounding material for a search result.
func (s *RetrievalService) Context(res SearchResult) string {
	return BuildContext(s.kb, res.Entries, res.Tier, s.context)
}

// Suggest returns up to limit knowledge-base questions related to q, or a
// spread of questions when q is empty. Questions surfaced recently are moved
// to the back of the list.
func (s *RetrievalService) Suggest(ctx context.Context, q string, limit int) []string {
	if limit <= 0 || limit > s.suggestLimit {
		limit = s.suggestLimit
	}
	q = strings.TrimSpace(q)
	pool := limit * 3

	var candidates []models.ScoredEntry
	if q != "" {
		candidates = s.Search(ctx, Normalize(q), SearchOptions{Limit: pool}).Entries
	}
	if len(candidates) < pool {
		candidates = append(candidates, SampleEntries(s.kb, pool)...)
	}

	exclude := questionKey(q)
	seen := make(map[string]struct{}, len(candidates))
	var fresh, stale []string
	for _, c := range candidates {
		key := questionKey(c.Question)
		if key == "" || key == exclude {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if _, recent := s.recent.Get(key); recent {
			stale = append(stale, c.Question)
		} else {
			fresh = append(fresh, c.Question)
		}
	}

	out := append(fresh, stale...)
	if len(out) > limit {
		out = out[:limit]
	}
	for _, question := range out {
		s.recent.SetDefault(questionKey(question), struct{}{})
	}
	return out
}

// KnowsTerm reports whether term equals a keyword, or a word of a keyword,
// of some entry. Short queries such as "go" or "ai" use it to tell a topic
// from noise.
func (s *RetrievalService) KnowsTerm(term string) bool {
	term = strings.ToLower(trimPunct(term))
	if term == "" {
		return false
	}
	known := false
	s.kb.Each(func(_ int, e models.KnowledgeEntry) {
		if known {
			return
		}
		for _, k := range e.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == term || slices.Contains(strings.FieldsFunc(k, isWordBreak), term) {
				known = true
				return
			}
		}
	})
	return known
}

func isWordBreak(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func (s *RetrievalService) Stats() Stats {
	return Stats{
		Entries:         s.kb.Len(),
		SemanticEnabled: s.index.Enabled(),
		Dimensions:      s.index.Dimensions(),
	}
}

// exactMatch finds an entry whose question equals query after normalization.
func (s *RetrievalService) exactMatch(query string) (int, bool) {
	key := questionKey(query)
	if key == "" {
		return 0, false
	}
	found := -1
	s.kb.Each(func(i int, e models.KnowledgeEntry) {
		if found < 0 && questionKey(e.Question) == key {
			found = i
		}
	})
	return found, found >= 0
}

// promote moves the entry at idx to the front of ranked, adding it when the
// fusion step dropped or truncated it.
func promote(ranked []models.ScoredEntry, idx int, kb *models.KnowledgeBase) []models.ScoredEntry {
	top := models.ScoredEntry{Index: idx, Score: 1}
	rest := make([]models.ScoredEntry, 0, len(ranked)+1)
	for _, r := range ranked {
		if r.Index == idx {
			top = r
			continue
		}
		rest = append(rest, r)
	}
	if top.Question == "" {
		top.KnowledgeEntry, _ = kb.Entry(idx)
	}
	return append([]models.ScoredEntry{top}, rest...)
}

// questionKey is the comparison form of a question: normalized, lowercase,
// single-spaced, without trailing punctuation.
func questionKey(q string) string {
	q = strings.ToLower(Normalize(strings.TrimSpace(q)))
	q = strings.Join(strings.Fields(q), " ")
	return strings.TrimRight(q, "?!. ")
}
