package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSystemInstruction(t *testing.T) {
	persona := testPersona()

	plain := buildSystemInstruction(persona, ShapeGenerated, TierWeak)
	assert.Contains(t, plain, "You are Echo")
	assert.Contains(t, plain, "third person (he/him/his)")
	assert.NotContains(t, plain, "# STRUCTURE")
	assert.NotContains(t, plain, "# NOTE")

	star := buildSystemInstruction(persona, ShapeSTAR, TierWeak)
	for _, label := range []string{"**Situation:**", "**Task:**", "**Action:**", "**Result:**"} {
		assert.Contains(t, star, label)
	}

	multi := buildSystemInstruction(persona, ShapeMultiPart, TierWeak)
	assert.Contains(t, multi, "numbered list")

	ambiguous := buildSystemInstruction(persona, ShapeAmbiguous, TierNone)
	assert.Contains(t, ambiguous, "could mean several things")
	assert.Contains(t, ambiguous, "# NOTE")
}

func TestBuildUserMessage(t *testing.T) {
	assert.Equal(t,
		"CONTEXT:\n1. Q: q\n   A: a\n\nQUESTION:\nWhat did he build?",
		buildUserMessage("What did he build?", "1. Q: q\n   A: a", ""))

	withPrior := buildUserMessage("And then?", "", "He built the dispatch platform.")
	assert.Equal(t,
		"CONTEXT:\n(no background material available)\n\nPREVIOUS ANSWER:\nHe built the dispatch platform.\n\nQUESTION:\nAnd then?",
		withPrior)
}

func TestDiversifyInstruction(t *testing.T) {
	got := diversifyInstruction("He built the dispatch platform.")

	assert.Contains(t, got, "# REPHRASE")
	assert.Contains(t, got, "\"\"\"\nHe built the dispatch platform.\n\"\"\"")
}
