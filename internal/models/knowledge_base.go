package models

// KnowledgeEntry is one curated question/answer fact about the subject.
// Entries are immutable once loaded; their identity is their position in the
// KnowledgeBase.
type KnowledgeEntry struct {
	Question string   `yaml:"question" json:"question" db:"question"`
	Answer   string   `yaml:"answer" json:"answer" db:"answer"`
	Keywords []string `yaml:"keywords" json:"keywords" db:"keywords"`
	Category string   `yaml:"category,omitempty" json:"category,omitempty" db:"category"`
}

// KnowledgeBase is the ordered, read-only collection of entries loaded at startup.
type KnowledgeBase struct {
	entries []KnowledgeEntry
}

func NewKnowledgeBase(entries []KnowledgeEntry) *KnowledgeBase {
	kept := make([]KnowledgeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Question == "" || e.Answer == "" {
			continue
		}
		kw := make([]string, len(e.Keywords))
		copy(kw, e.Keywords)
		e.Keywords = kw
		kept = append(kept, e)
	}
	return &KnowledgeBase{entries: kept}
}

// Len returns the number of entries. A nil knowledge base is empty.
func (kb *KnowledgeBase) Len() int {
	if kb == nil {
		return 0
	}
	return len(kb.entries)
}

// Entry returns the entry at index i.
func (kb *KnowledgeBase) Entry(i int) (KnowledgeEntry, bool) {
	if kb == nil || i < 0 || i >= len(kb.entries) {
		return KnowledgeEntry{}, false
	}
	return kb.entries[i], true
}

// Each calls fn for every entry in index order.
func (kb *KnowledgeBase) Each(fn func(i int, e KnowledgeEntry)) {
	if kb == nil {
		return
	}
	for i, e := range kb.entries {
		fn(i, e)
	}
}

// EmbeddingText is the text sent to the embedding service for an entry.
func (e KnowledgeEntry) EmbeddingText() string {
	return e.Question + "\n" + e.Answer
}

// EmbeddingRecord is the precomputed vector for the entry at Index.
type EmbeddingRecord struct {
	Index  int
	Vector []float32
}

// ScoredEntry is a knowledge entry ranked for a single query.
type ScoredEntry struct {
	KnowledgeEntry
	Index    int
	Score    float64
	Lexical  int
	Semantic float64
}
