package service

import (
	"fmt"
	"strings"

	"career-qa/internal/models"
)

// buildSystemInstruction assembles the system prompt for one generation call.
func buildSystemInstruction(persona models.Persona, shape Shape, tier Tier) string {
	p := persona.Pronouns
	var b strings.Builder

	fmt.Fprintf(&b, `You are %[1]s, an assistant that answers questions about %[2]s's professional background for recruiters and hiring managers.

# VOICE
- Always describe %[2]s in the third person (%[3]s/%[4]s/%[5]s). Never write as if you were %[2]s.
- Never describe yourself, your abilities or your limitations. Do not mention being an AI.
- Be warm, direct and concrete. No banter, no teasing, no invitations to "challenge" anyone.

# GROUNDING
- Use only the facts in the CONTEXT section of the user message.
- Never invent employers, job titles, dates, numbers, technologies or credentials.
- If the context does not cover the question, say so in one sentence and point to a related topic the context does cover.

# LENGTH
- Two short paragraphs at most, unless a structure below asks for more.
`, persona.AssistantName, persona.Name, p.Subject, p.Object, p.Possessive)

	switch shape {
	case ShapeSTAR:
		b.WriteString(`
# STRUCTURE
Answer as a story with exactly four labeled sections, each starting on its own line:
**Situation:** the context and the challenge.
**Task:** what ` + persona.Name + ` was responsible for.
**Action:** the concrete steps ` + p.Subject + ` took.
**Result:** the outcome, with numbers when the context has them.
`)
	case ShapeMultiPart:
		b.WriteString(`
# STRUCTURE
The question has several parts. Answer each part separately as a numbered list, in the order the parts were asked. Keep each item to two or three sentences.
`)
	case ShapeAmbiguous:
		b.WriteString(`
# STRUCTURE
The question is short and could mean several things. Answer the most likely reading in a few sentences and name one related topic the user could ask about next.
`)
	}

	if tier == TierNone {
		b.WriteString(`
# NOTE
The context is a general sample of ` + persona.PossessiveName() + ` background, not a direct match for the question. Answer only what it supports.
`)
	}

	return b.String()
}

// buildUserMessage combines the question with its grounding context and, when
// present, the previous answer the user is following up on.
func buildUserMessage(query, contextText, prior string) string {
	var b strings.Builder
	b.WriteString("CONTEXT:\n")
	if contextText == "" {
		b.WriteString("(no background material available)\n")
	} else {
		b.WriteString(contextText)
		b.WriteString("\n")
	}
	if prior != "" {
		b.WriteString("\nPREVIOUS ANSWER:\n")
		b.WriteString(prior)
		b.WriteString("\n")
	}
	b.WriteString("\nQUESTION:\n")
	b.WriteString(query)
	return b.String()
}

// diversifyInstruction is appended to the system prompt for the single
// regeneration attempt after a repeated answer.
func diversifyInstruction(previous string) string {
	return `
# REPHRASE
Your previous answer to this conversation was:
"""
` + previous + `
"""
Answer the same question again with different wording and a different angle, for example another example, another project or another outcome from the context. Do not reuse sentences from the previous answer.
`
}
