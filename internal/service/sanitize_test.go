package service

import (
	"testing"

	"career-qa/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEnforceVoice(t *testing.T) {
	he := testPersona()
	she := models.Persona{Name: "Dana Reyes", Pronoun: "she", AssistantName: "Echo"}.WithDefaults()
	they := models.Persona{Name: "Sam Ortiz", Pronoun: "they", AssistantName: "Echo"}.WithDefaults()

	tests := []struct {
		name    string
		persona models.Persona
		in      string
		want    string
	}{
		{"confidence statement", he, "I am confident in this area", "He is confident in this area"},
		{"am and bare verb", he, "I am a platform engineer. I lead the team and my focus is reliability.", "He is a platform engineer. He leads the team and his focus is reliability."},
		{"contractions", he, "I've built systems and I'd do it again. I'll help.", "He has built systems and he would do it again. He will help."},
		{"typographic apostrophe", he, "I’m based in Seattle.", "He is based in Seattle."},
		{"past tense", he, "I was the lead.", "He was the lead."},
		{"unknown verb kept", he, "Colleagues and I shipped it.", "Colleagues and he shipped it."},
		{"object and reflexive", he, "They asked me to do it myself.", "They asked him to do it himself."},
		{"capitalized possessive", he, "My role was platform lead.", "His role was platform lead."},
		{"y and s endings", he, "I try hard. I focus on outcomes.", "He tries hard. He focuses on outcomes."},
		{"irregular verb", he, "I do the planning.", "He does the planning."},
		{"negated do", he, "I don't have details on that.", "He doesn't have details on that."},
		{"negated do typographic", he, "I don’t know.", "He doesn’t know."},
		{"do not", he, "I do not manage people.", "He does not manage people."},
		{"negated have and was", he, "I haven't used Rust and I wasn't on that team.", "He hasn't used Rust and he wasn't on that team."},
		{"they negated", they, "I don't manage people. I haven't.", "They don't manage people. They haven't."},
		{"she", she, "I lead teams.", "She leads teams."},
		{"they", they, "I am a manager. I lead teams.", "They are a manager. They lead teams."},
		{"assistant line untouched", he, "I am Echo, and I answer questions.", "I am Echo, and I answer questions."},
		{"list item capitalized", he, "- I built the API", "- He built the API"},
		{"empty", he, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnforceVoice(tt.in, tt.persona))
		})
	}
}

func TestStripPhrases(t *testing.T) {
	persona := testPersona()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"self described as an AI",
			"He is an AI language model created by OpenAI. He led the migration.",
			"Echo is an AI assistant that answers questions about Jordan Lee. He led the migration.",
		},
		{
			"as an AI preamble",
			"As an AI, he cannot say.",
			"He cannot say.",
		},
		{
			"taunt",
			"He led the migration. Feel free to challenge him with harder questions!",
			"He led the migration.",
		},
		{
			"AI researcher is a real job",
			"He is an AI researcher at Northwind.",
			"He is an AI researcher at Northwind.",
		},
		{
			"clean text",
			"He led the migration.",
			"He led the migration.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripPhrases(tt.in, persona))
		})
	}
}

func TestFormatParagraphs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"sentences", "He led the team. He shipped the platform.", "He led the team.\n\nHe shipped the platform."},
		{"crlf", "Line one.\r\nLine two.", "Line one.\nLine two."},
		{"bullets", "Key skills: - Go. - Python.", "Key skills:\n- Go.\n- Python."},
		{"numbered", "Two parts: 1. Go is used. 2. Python too.", "Two parts:\n1. Go is used.\n2. Python too."},
		{"star labels", "**Situation:** The queue stalled. **Task:** Restore it.", "**Situation:** The queue stalled.\n\n**Task:** Restore it."},
		{"blank runs", "First.\n\n\n\nSecond.", "First.\n\nSecond."},
		{"trailing spaces", "First.   \nSecond.  ", "First.\nSecond."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatParagraphs(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, FormatParagraphs(got), "idempotent")
		})
	}
}

func TestSanitize(t *testing.T) {
	persona := testPersona()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"full pipeline",
			"I am a backend engineer. My focus is reliability.\r\nI lead a team of five.",
			"He is a backend engineer.\n\nHis focus is reliability.\nHe leads a team of five.",
		},
		{
			"here filler",
			"I built the dispatch platform. I'm here to help! Try asking about my projects.",
			"He built the dispatch platform.",
		},
		{
			"star answer",
			"**Situation:** A launch date moved up. **Task:** I had to protect quality. **Action:** I negotiated scope. **Result:** It shipped on time.",
			"**Situation:** A launch date moved up.\n\n**Task:** He had to protect quality.\n\n**Action:** He negotiated scope.\n\n**Result:** It shipped on time.",
		},
		{"only banter", "As an AI, ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in, persona)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Sanitize(got, persona), "idempotent")
		})
	}
}
