package service

import (
	"regexp"
	"sort"
	"strings"
)

// typoTable maps common misspellings to the canonical term. No canonical term
// may appear as a key, otherwise Normalize would stop being idempotent.
var typoTable = map[string]string{
	"experiance":     "experience",
	"expirience":     "experience",
	"exprience":      "experience",
	"experince":      "experience",
	"expereince":     "experience",
	"resposibility":  "responsibility",
	"responsiblity":  "responsibility",
	"responsibilty":  "responsibility",
	"leadrship":      "leadership",
	"leadersip":      "leadership",
	"managment":      "management",
	"mangement":      "management",
	"strenghts":      "strengths",
	"strenghs":       "strengths",
	"strenght":       "strength",
	"weakneses":      "weaknesses",
	"weeknesses":     "weaknesses",
	"weekness":       "weakness",
	"acheivement":    "achievement",
	"acheivements":   "achievements",
	"achievments":    "achievements",
	"accomplisments": "accomplishments",
	"salery":         "salary",
	"sallary":        "salary",
	"compensaton":    "compensation",
	"educaton":       "education",
	"eduction":       "education",
	"univeristy":     "university",
	"projets":        "projects",
	"porject":        "project",
	"progect":        "project",
	"skils":          "skills",
	"skilss":         "skills",
	"tecnical":       "technical",
	"techincal":      "technical",
	"enginering":     "engineering",
	"engeneering":    "engineering",
	"develoment":     "development",
	"devlopment":     "development",
	"certfication":   "certification",
	"certifcation":   "certification",
	"colaboration":   "collaboration",
	"comunication":   "communication",
	"communciation":  "communication",
	"proccess":       "process",
	"procces":        "process",
	"backgroud":      "background",
	"bakground":      "background",
	"carreer":        "career",
	"carrer":         "career",
	"recieve":        "receive",
	"wich":           "which",
	"teh":            "the",
	"pyhton":         "python",
	"javscript":      "javascript",
	"kubernates":     "kubernetes",
}

var typoPattern = compileTypoPattern()

func compileTypoPattern() *regexp.Regexp {
	words := make([]string, 0, len(typoTable))
	for w := range typoTable {
		words = append(words, regexp.QuoteMeta(w))
	}
	// Longest first so overlapping alternatives prefer the full word.
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	return regexp.MustCompile(`(?i)\b(` + strings.Join(words, "|") + `)\b`)
}

// Normalize corrects known misspellings (whole word, case-insensitive).
func Normalize(raw string) string {
	if raw == "" {
		return raw
	}
	return typoPattern.ReplaceAllStringFunc(raw, func(m string) string {
		if canonical, ok := typoTable[strings.ToLower(m)]; ok {
			return canonical
		}
		return m
	})
}
