package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"career-qa/internal/models"
	"career-qa/pkg/config"

	"go.uber.org/zap"
)

// fakeGenerator returns its replies in order and repeats the last one.
type fakeGenerator struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   int
	systems []string
	users   []string
}

func (g *fakeGenerator) Generate(_ context.Context, system, user string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls++
	g.systems = append(g.systems, system)
	g.users = append(g.users, user)
	if g.err != nil {
		return "", g.err
	}
	if len(g.replies) == 0 {
		return "", ErrEmptyGeneration
	}
	i := min(g.calls, len(g.replies)) - 1
	return g.replies[i], nil
}

func (g *fakeGenerator) Provider() string { return "fake" }

func (g *fakeGenerator) Close() error { return nil }

// vocabEmbedder embeds text as a bag of the vocabulary words it contains.
type vocabEmbedder struct {
	vocab    []string
	queryErr error
	docErr   error
	docCalls int
}

func (e *vocabEmbedder) vector(text string) []float32 {
	lower := strings.ToLower(text)
	v := make([]float32, len(e.vocab))
	for i, w := range e.vocab {
		if strings.Contains(lower, w) {
			v[i] = 1
		}
	}
	return v
}

func (e *vocabEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	e.docCalls++
	if e.docErr != nil {
		return nil, e.docErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.vector(t)
	}
	return out, nil
}

func (e *vocabEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if e.queryErr != nil {
		return nil, e.queryErr
	}
	return e.vector(text), nil
}

var errUnavailable = errors.New("connection refused")

func testPersona() models.Persona {
	return models.Persona{Name: "Jordan Lee", Pronoun: "he", AssistantName: "Echo"}.WithDefaults()
}

func testEntries() []models.KnowledgeEntry {
	return []models.KnowledgeEntry{
		{
			Question: "What is Jordan's current role?",
			Answer:   "Jordan is a Staff Software Engineer at Northwind Logistics.",
			Keywords: []string{"current role", "current job"},
			Category: "experience",
		},
		{
			Question: "Which programming languages does Jordan use?",
			Answer:   "Jordan works mostly in Go and Python.",
			Keywords: []string{"languages", "golang", "python"},
			Category: "skills",
		},
		{
			Question: "Tell me about a time Jordan handled a production incident.",
			Answer:   "During a holiday peak the dispatch queue stalled and Jordan led the incident response.",
			Keywords: []string{"incident", "outage"},
			Category: "behavioral",
		},
		{
			Question: "Where did Jordan work before Northwind?",
			Answer:   "Jordan spent four years at Brightline Health building scheduling APIs.",
			Keywords: []string{"previous jobs", "work history"},
			Category: "experience",
		},
		{
			Question: "What is Jordan's educational background?",
			Answer:   "Jordan holds a BSc in Computer Science.",
			Keywords: []string{"education", "degree"},
			Category: "education",
		},
	}
}

func testKnowledgeBase() *models.KnowledgeBase {
	return models.NewKnowledgeBase(testEntries())
}

func testRetrievalConfig() *config.RetrievalConfig {
	return &config.RetrievalConfig{
		StrongThreshold: 0.9,
		WeakThreshold:   0.3,
		LexicalWeight:   0.35,
		SemanticWeight:  0.65,
		LexicalScale:    0.075,
		ContextLimit:    6,
		ContextMaxChars: 6000,
		SampleSize:      8,
		CategoryBonus:   0.05,
		RepeatThreshold: 0.8,
	}
}

func newTestRetrieval(index *EmbeddingIndex) *RetrievalService {
	return NewRetrievalService(testKnowledgeBase(), index, testRetrievalConfig(), &config.SuggestConfig{Limit: 5}, zap.NewNop())
}
