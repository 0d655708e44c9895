package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"career-qa/internal/models"

	"go.uber.org/zap"
)

// Embedder turns text into vectors. langchaingo's embeddings.Embedder satisfies it.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0 when
// either vector is empty, all zeros, or the lengths differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	// sqrt(n*n) == n in IEEE arithmetic, so identical vectors score exactly 1.
	sim := dot / math.Sqrt(normA*normB)
	return math.Max(-1, math.Min(1, sim))
}

// EmbeddingIndex holds one precomputed vector per knowledge entry. A nil
// index means the embedding service was unavailable at startup and semantic
// scoring stays off for the life of the process.
type EmbeddingIndex struct {
	embedder   Embedder
	records    []models.EmbeddingRecord
	dimensions int
	timeout    time.Duration
	logger     *zap.Logger
}

// BuildEmbeddingIndex embeds every entry in batches. Any failure returns a nil
// index and the error; callers treat that as the permanent degraded state.
func BuildEmbeddingIndex(
	ctx context.Context,
	embedder Embedder,
	kb *models.KnowledgeBase,
	batchSize int,
	timeout time.Duration,
	logger *zap.Logger,
) (*EmbeddingIndex, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedding service disabled")
	}
	if kb.Len() == 0 {
		return nil, fmt.Errorf("knowledge base is empty")
	}
	if batchSize <= 0 {
		batchSize = 64
	}

	texts := make([]string, 0, kb.Len())
	kb.Each(func(_ int, e models.KnowledgeEntry) {
		texts = append(texts, e.EmbeddingText())
	})

	records := make([]models.EmbeddingRecord, 0, len(texts))
	dims := 0
	for start := 0; start < len(texts); start += batchSize {
		end := min(start+batchSize, len(texts))
		vectors, err := embedder.EmbedDocuments(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to embed entries %d-%d: %w", start, end-1, err)
		}
		if len(vectors) != end-start {
			return nil, fmt.Errorf("embedding service returned %d vectors for %d entries", len(vectors), end-start)
		}
		for i, v := range vectors {
			if dims == 0 {
				dims = len(v)
			}
			if len(v) == 0 || len(v) != dims {
				return nil, fmt.Errorf("entry %d: unexpected embedding dimension %d (want %d)", start+i, len(v), dims)
			}
			records = append(records, models.EmbeddingRecord{Index: start + i, Vector: v})
		}
	}

	logger.Info("Knowledge base embedded",
		zap.Int("entries", len(records)),
		zap.Int("dimensions", dims),
	)

	return &EmbeddingIndex{
		embedder:   embedder,
		records:    records,
		dimensions: dims,
		timeout:    timeout,
		logger:     logger,
	}, nil
}

// Enabled reports whether semantic scoring is available.
func (x *EmbeddingIndex) Enabled() bool {
	return x != nil && len(x.records) > 0
}

func (x *EmbeddingIndex) Dimensions() int {
	if x == nil {
		return 0
	}
	return x.dimensions
}

// Similarities embeds query once and returns the cosine similarity of every
// entry. On any failure it returns an empty map so ranking falls back to
// lexical scores for this request only.
func (x *EmbeddingIndex) Similarities(ctx context.Context, query string) map[int]float64 {
	out := make(map[int]float64)
	if !x.Enabled() || query == "" {
		return out
	}

	if x.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.timeout)
		defer cancel()
	}

	vec, err := x.embedder.EmbedQuery(ctx, query)
	if err != nil {
		x.logger.Warn("Query embedding failed, using lexical scores only", zap.Error(err))
		return out
	}
	if len(vec) != x.dimensions {
		x.logger.Warn("Query embedding has unexpected dimension",
			zap.Int("got", len(vec)),
			zap.Int("want", x.dimensions),
		)
		return out
	}

	for _, r := range x.records {
		out[r.Index] = CosineSimilarity(vec, r.Vector)
	}
	return out
}
