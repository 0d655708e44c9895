package service

import "strings"

// sanitizeUTF8 removes invalid byte sequences from a turn's query and prior
// answer. The classifier regexes and the JSON response both expect
// well-formed text, so bad bytes are dropped rather than replaced.
func sanitizeUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}
