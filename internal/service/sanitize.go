package service

import (
	"fmt"
	"regexp"
	"strings"

	"career-qa/internal/models"
)

// Sanitize rewrites generated text into the subject's third person, removes
// banter and lays the result out in paragraphs. The passes run in this order
// so that stripped phrases never leave first-person fragments behind.
func Sanitize(text string, persona models.Persona) string {
	return FormatParagraphs(StripPhrases(EnforceVoice(text, persona), persona))
}

type voiceRule struct {
	pattern *regexp.Regexp
	replace func(p models.Pronouns, m []string) string
}

const apos = `(?:'|’)`

// voiceRules run top to bottom. Negated, contracted and two-word forms must
// come before the bare "I" rule.
var voiceRules = []voiceRule{
	{regexp.MustCompile(`\bI\s+don('|’)t\b`), func(p models.Pronouns, m []string) string {
		if p.Plural {
			return p.Subject + " don" + m[1] + "t"
		}
		return p.Subject + " doesn" + m[1] + "t"
	}},
	{regexp.MustCompile(`\bI\s+haven('|’)t\b`), func(p models.Pronouns, m []string) string {
		return p.Subject + " " + p.Have + "n" + m[1] + "t"
	}},
	{regexp.MustCompile(`\bI\s+wasn('|’)t\b`), func(p models.Pronouns, m []string) string {
		return p.Subject + " " + p.Was + "n" + m[1] + "t"
	}},
	{regexp.MustCompile(`\bI` + apos + `m\b|\bI am\b`), func(p models.Pronouns, _ []string) string {
		return p.Subject + " " + p.Be
	}},
	{regexp.MustCompile(`\bI` + apos + `ve\b|\bI have\b`), func(p models.Pronouns, _ []string) string {
		return p.Subject + " " + p.Have
	}},
	{regexp.MustCompile(`\bI` + apos + `d\b`), func(p models.Pronouns, _ []string) string {
		return p.Subject + " would"
	}},
	{regexp.MustCompile(`\bI` + apos + `ll\b`), func(p models.Pronouns, _ []string) string {
		return p.Subject + " will"
	}},
	{regexp.MustCompile(`\bI was\b`), func(p models.Pronouns, _ []string) string {
		return p.Subject + " " + p.Was
	}},
	{regexp.MustCompile(`(^|[^\w/'’-])I\s+([a-z]+)\b`), func(p models.Pronouns, m []string) string {
		return m[1] + p.Subject + " " + agreeVerb(m[2], p)
	}},
	{regexp.MustCompile(`(^|[^\w/'’-])I([^\w/'’-]|$)`), func(p models.Pronouns, m []string) string {
		return m[1] + p.Subject + m[2]
	}},
	{regexp.MustCompile(`(?i)\bmyself\b`), func(p models.Pronouns, _ []string) string {
		return p.Reflexive
	}},
	{regexp.MustCompile(`(?i)\bmy\b`), func(p models.Pronouns, _ []string) string {
		return p.Possessive
	}},
	{regexp.MustCompile(`(?i)\bme\b`), func(p models.Pronouns, _ []string) string {
		return p.Object
	}},
}

// sentenceStartPronoun finds a lowercase pronoun that opens a line, a
// sentence, a list item or a bold label such as "**Action:**".
var sentenceStartPronoun = regexp.MustCompile(`(^\s*(?:[-•*]\s+|\d{1,2}[.)]\s+)?|[.!?]["')]?\s+|:\*\*\s+)(he|she|they|his|her|their|him|them|himself|herself|themselves)\b`)

var irregularVerbs = map[string]string{
	"am": "is", "are": "is", "have": "has", "do": "does", "go": "goes",
	"was": "was", "were": "was",
}

// modal and past-tense forms keep their spelling after any subject.
var invariantVerbs = map[string]struct{}{
	"can": {}, "could": {}, "will": {}, "would": {}, "shall": {}, "should": {},
	"may": {}, "might": {}, "must": {}, "did": {}, "had": {}, "led": {}, "built": {},
	"ran": {}, "made": {}, "took": {}, "saw": {}, "wrote": {}, "also": {}, "never": {},
	"always": {}, "often": {}, "still": {}, "really": {}, "usually": {}, "just": {},
}

// agreeableVerbs take an -s ending in the third person singular.
var agreeableVerbs = map[string]struct{}{
	"lead": {}, "build": {}, "work": {}, "manage": {}, "love": {}, "enjoy": {}, "like": {},
	"believe": {}, "think": {}, "focus": {}, "bring": {}, "help": {}, "own": {}, "design": {},
	"run": {}, "write": {}, "prefer": {}, "want": {}, "know": {}, "use": {}, "mentor": {},
	"see": {}, "take": {}, "make": {}, "drive": {}, "deliver": {}, "create": {}, "develop": {},
	"teach": {}, "learn": {}, "try": {}, "apply": {}, "push": {}, "fix": {}, "approach": {},
	"coach": {}, "care": {}, "value": {}, "aim": {}, "start": {}, "keep": {}, "get": {},
	"specialize": {}, "thrive": {}, "consider": {},
}

func agreeVerb(verb string, p models.Pronouns) string {
	if p.Plural {
		switch verb {
		case "am", "is":
			return "are"
		case "was":
			return "were"
		case "has":
			return "have"
		}
		return verb
	}
	if v, ok := irregularVerbs[verb]; ok {
		return v
	}
	if _, ok := invariantVerbs[verb]; ok {
		return verb
	}
	if _, ok := agreeableVerbs[verb]; !ok {
		return verb
	}
	switch {
	case strings.HasSuffix(verb, "y") && len(verb) > 1 && !strings.ContainsAny(verb[len(verb)-2:len(verb)-1], "aeiou"):
		return verb[:len(verb)-1] + "ies"
	case strings.HasSuffix(verb, "s"), strings.HasSuffix(verb, "sh"), strings.HasSuffix(verb, "ch"),
		strings.HasSuffix(verb, "x"), strings.HasSuffix(verb, "z"), strings.HasSuffix(verb, "o"):
		return verb + "es"
	default:
		return verb + "s"
	}
}

// EnforceVoice rewrites first-person phrasing to the subject's third person.
// Lines that mention the assistant by name are left untouched.
func EnforceVoice(text string, persona models.Persona) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	p := persona.Pronouns
	if p.Subject == "" {
		p = models.PronounsFor(persona.Pronoun)
	}
	marker := strings.ToLower(strings.TrimSpace(persona.AssistantName))

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if marker != "" && strings.Contains(strings.ToLower(line), marker) {
			continue
		}
		for _, rule := range voiceRules {
			line = rule.pattern.ReplaceAllStringFunc(line, func(match string) string {
				return rule.replace(p, rule.pattern.FindStringSubmatch(match))
			})
		}
		lines[i] = capitalizeSentenceStarts(line)
	}
	return strings.Join(lines, "\n")
}

func capitalizeSentenceStarts(line string) string {
	return sentenceStartPronoun.ReplaceAllStringFunc(line, func(match string) string {
		m := sentenceStartPronoun.FindStringSubmatch(match)
		return m[1] + capitalizeFirst(m[2])
	})
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var (
	tauntPattern = regexp.MustCompile(`(?i)[^.!?\n]*\b(challenge\s+(me|him|her|them)|try\s+to\s+stump\s+(me|him|her|them)|stump\s+(me|him|her|them)|give\s+(me|him|her|them)\s+your\s+best\s+shot|bring\s+it\s+on|ask\s+(me|him|her|them)\s+anything)\b[^.!?\n]*[.!?]*[ \t]*`)

	hereFillerPattern = regexp.MustCompile(`(?i)\b(he|she|they)\s+(is|are)\s+here(\s+to\s+help)?(\s*!+)?\s*\.?\s*(try\s+asking|ask\s+(me|him|her|them)\s+(about|anything))[^.!?\n]*[.!?]*[ \t]*|\b(he|she|they)\s+(is|are)\s+here(\s+to\s+help)?\s*!+[ \t]*`)

	asAnAIPattern = regexp.MustCompile(`(?i)\bas\s+an?\s+(ai|artificial\s+intelligence)(\s+(language\s+model|assistant|model))?\s*,?\s*`)

	selfAsAIPattern = regexp.MustCompile(`(?i)\b(he|she|they)\s+(is|are)\s+(just\s+|only\s+|merely\s+)?(an?\s+)?((ai|artificial\s+intelligence)(\s+(language\s+model|assistant|model|chatbot|system|program))?|(large\s+)?language\s+model|llm|chatbot)([.!?,]|\s+(created|developed|made|trained|built|designed|and|that|who|by|from|so|here)\b[^.!?\n]*[.!?]?|\s*$)`)

	multiSpacePattern = regexp.MustCompile(`(\S)[ \t]{2,}`)
	spaceBeforePunct  = regexp.MustCompile(`[ \t]+([,.!?;:])`)
	leadingLinePunct  = regexp.MustCompile(`(?m)^[ \t]*[,;][ \t]*`)
)

// StripPhrases removes banter and meta commentary. A sentence that calls the
// subject an AI is replaced with the canonical description of the assistant.
func StripPhrases(text string, persona models.Persona) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	assistant := persona.AssistantName
	if assistant == "" {
		assistant = "This assistant"
	}
	name := persona.Name
	if name == "" {
		name = "the candidate"
	}
	canonical := fmt.Sprintf("%s is an AI assistant that answers questions about %s.", assistant, name)

	out := selfAsAIPattern.ReplaceAllLiteralString(text, canonical)
	out = asAnAIPattern.ReplaceAllString(out, "")
	out = tauntPattern.ReplaceAllString(out, "")
	out = hereFillerPattern.ReplaceAllString(out, "")

	out = multiSpacePattern.ReplaceAllString(out, "$1 ")
	out = spaceBeforePunct.ReplaceAllString(out, "$1")
	out = leadingLinePunct.ReplaceAllString(out, "")

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = capitalizeSentenceStarts(line)
	}
	return strings.Join(lines, "\n")
}

var (
	trailingSpacePattern = regexp.MustCompile(`[ \t]+\n`)
	bulletBreakPattern   = regexp.MustCompile(`([.:!?])\s+([-•*]\s)`)
	numberBreakPattern   = regexp.MustCompile(`([.:!?])\s+(\d{1,2}[.)]\s)`)
	sentenceBreakPattern = regexp.MustCompile(`([\p{Ll})"'][.!?])[ \t]+((?:\*\*)?[A-Z])`)
	blankRunPattern      = regexp.MustCompile(`\n{3,}`)
)

// FormatParagraphs normalizes line endings, starts list items on their own
// line and puts each sentence in its own paragraph. It is idempotent.
func FormatParagraphs(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	out := strings.ReplaceAll(text, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "\n")
	out = trailingSpacePattern.ReplaceAllString(out, "\n")
	out = bulletBreakPattern.ReplaceAllString(out, "$1\n$2")
	out = numberBreakPattern.ReplaceAllString(out, "$1\n$2")
	out = sentenceBreakPattern.ReplaceAllString(out, "$1\n\n$2")
	out = blankRunPattern.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
