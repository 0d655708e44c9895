package service

import (
	"strings"
	"unicode"

	"career-qa/internal/models"
)

const (
	keywordHitScore     = 25
	questionPrefixScore = 10
	tokenOverlapScore   = 3

	questionPrefixLen = 20
	minTokenLen       = 3
)

// LexicalScore rates how well query matches entry by keyword, question
// prefix and token overlap. The result is never negative.
func LexicalScore(query string, entry models.KnowledgeEntry) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}

	question := strings.ToLower(entry.Question)
	answer := strings.ToLower(entry.Answer)
	keywords := make([]string, 0, len(entry.Keywords))
	for _, k := range entry.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}

	score := 0
	for _, k := range keywords {
		if strings.Contains(q, k) {
			score += keywordHitScore
			break
		}
	}

	if prefix := runePrefix(strings.TrimSpace(question), questionPrefixLen); prefix != "" && strings.Contains(q, prefix) {
		score += questionPrefixScore
	}

	for _, tok := range distinctTokens(q, minTokenLen) {
		if strings.Contains(question, tok) || strings.Contains(answer, tok) || anyContains(keywords, tok) {
			score += tokenOverlapScore
		}
	}

	return score
}

// LexicalScores scores every entry and drops the zero scores.
func LexicalScores(query string, kb *models.KnowledgeBase) map[int]int {
	scores := make(map[int]int)
	kb.Each(func(i int, e models.KnowledgeEntry) {
		if s := LexicalScore(query, e); s > 0 {
			scores[i] = s
		}
	})
	return scores
}

// distinctTokens splits s on anything that is not a letter, digit or
// apostrophe and keeps tokens of at least minLen runes, in first-seen order.
func distinctTokens(s string, minLen int) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if len([]rune(f)) < minLen {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func runePrefix(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

func anyContains(haystacks []string, needle string) bool {
	for _, h := range haystacks {
		if strings.Contains(h, needle) {
			return true
		}
	}
	return false
}
