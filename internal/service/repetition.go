package service

import "strings"

const repeatTokenMinLen = 4

// Jaccard returns |A∩B| / |A∪B| over the distinct lowercase tokens longer
// than three characters. Two texts without such tokens score 0.
func Jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	union := len(setA)
	inter := 0
	for tok := range setB {
		if _, ok := setA[tok]; ok {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// IsRepeat reports whether candidate says essentially what previous said.
func IsRepeat(previous, candidate string, threshold float64) bool {
	if len(tokenSet(previous)) == 0 || len(tokenSet(candidate)) == 0 {
		return false
	}
	return Jaccard(previous, candidate) >= threshold
}

func tokenSet(s string) map[string]struct{} {
	toks := distinctTokens(strings.ToLower(s), repeatTokenMinLen)
	set := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		set[t] = struct{}{}
	}
	return set
}
