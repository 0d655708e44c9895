package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no typos", "What did he build?", "What did he build?"},
		{"single typo", "What is his experiance?", "What is his experience?"},
		{"case insensitive", "Tell me about his EXPERIANCE", "Tell me about his experience"},
		{"several typos", "managment and leadrship skils", "management and leadership skills"},
		{"whole words only", "experiances", "experiances"},
		{"punctuation boundary", "salery?", "salary?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"What is his experiance with kubernates?",
		"carrer backgroud and eduction",
		"teh proccess he follows",
		"Already clean text.",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestTypoTableHasNoCanonicalKeys(t *testing.T) {
	for typo, canonical := range typoTable {
		_, clash := typoTable[canonical]
		assert.False(t, clash, "canonical %q of %q is itself a key", canonical, typo)
	}
}
