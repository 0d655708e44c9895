package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"career-qa/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListEntriesQuery(t *testing.T) {
	sql, args, err := listEntriesQuery().ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT question, answer, keywords, category FROM knowledge_base ORDER BY position ASC", sql)
	assert.Empty(t, args)
}

func TestInsertEntryQuery(t *testing.T) {
	sql, args, err := insertEntryQuery(3, models.KnowledgeEntry{Question: "q", Answer: "a"}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO knowledge_base (id,position,question,answer,keywords,category) VALUES ($1,$2,$3,$4,$5,$6)", sql)
	require.Len(t, args, 6)
	assert.Equal(t, 3, args[1])
	assert.Equal(t, []string{}, args[4], "nil keywords are stored as an empty array")
}

func TestParseKnowledgeDocument(t *testing.T) {
	data := []byte(`
entries:
  - question: What is his current role?
    answer: He leads the platform team.
    keywords: [role, current job]
    category: career
  - question: Tell me about a conflict he resolved
    answer: He mediated a roadmap dispute.
    category: behavioral
`)
	entries, err := ParseKnowledge(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "What is his current role?", entries[0].Question)
	assert.Equal(t, []string{"role", "current job"}, entries[0].Keywords)
	assert.Equal(t, "behavioral", entries[1].Category)
	assert.Empty(t, entries[1].Keywords)
}

func TestParseKnowledgeList(t *testing.T) {
	data := []byte(`[{"question": "Where is he based?", "answer": "Lisbon.", "keywords": ["location"]}]`)

	entries, err := ParseKnowledge(data)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Lisbon.", entries[0].Answer)
}

func TestParseKnowledgeEmpty(t *testing.T) {
	entries, err := ParseKnowledge([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestKnowledgeFileMissing(t *testing.T) {
	f := NewKnowledgeFile(filepath.Join(t.TempDir(), "missing.yaml"), zap.NewNop())

	_, err := f.LoadEntries(context.Background())
	assert.Error(t, err)
}

func TestLoadPersona(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Dana Reyes\npronoun: she\ncapabilities:\n  leadership: She has led teams of twelve.\n"), 0o644))

	p, err := LoadPersona(path)
	require.NoError(t, err)

	assert.Equal(t, "Dana Reyes", p.Name)
	assert.Equal(t, "she", p.Pronoun)
	assert.Equal(t, "She has led teams of twelve.", p.Capabilities["leadership"])
}
