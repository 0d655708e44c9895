package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RETRIEVAL_STRONG_THRESHOLD", "")
	t.Setenv("EMBEDDING_PROVIDER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Retrieval.StrongThreshold)
	assert.Equal(t, 0.3, cfg.Retrieval.WeakThreshold)
	assert.Equal(t, 0.35, cfg.Retrieval.LexicalWeight)
	assert.Equal(t, 0.65, cfg.Retrieval.SemanticWeight)
	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, 5, cfg.Suggest.Limit)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EMBEDDING_PROVIDER", "NONE")
	t.Setenv("RETRIEVAL_WEAK_THRESHOLD", "0.25")
	t.Setenv("SUGGEST_RECENT_TTL_MINUTES", "3")
	t.Setenv("RETRIEVAL_CONTEXT_LIMIT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.Embedding.Provider)
	assert.Equal(t, 0.25, cfg.Retrieval.WeakThreshold)
	assert.Equal(t, 3*time.Minute, cfg.Suggest.RecentTTL)
	assert.Equal(t, 6, cfg.Retrieval.ContextLimit)
}
