package judge

import (
	"regexp"
	"strings"

	"github.com/unieval-ai/unieval/api"
)

// answerPattern matches phrasings like "Answer: B", "answer is (c)".
var answerPattern = regexp.MustCompile(`(?i)\banswer\b\s*(?:is)?\s*[:\-]?\s*\(?([A-Za-z]+)\)?`)

// NormalizeLabel maps a raw answer token onto one of the question's declared
// labels. Surrounding punctuation and case are ignored; anything that does
// not resolve to a declared label (or the literal INVALID) normalizes to
// InvalidResponse.
func NormalizeLabel(raw string, q api.Question) api.Label {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "()[]{}.:*\"'")
	s = strings.TrimSpace(s)
	if s == "" {
		return api.InvalidResponse
	}
	if strings.EqualFold(s, string(api.InvalidResponse)) {
		return api.InvalidResponse
	}
	for _, l := range q.Labels() {
		if strings.EqualFold(s, string(l)) {
			return l
		}
	}
	return api.InvalidResponse
}

// ExtractLabel pulls a response label out of a free-form answer. It first
// looks for an "answer is X" phrasing, then falls back to normalizing the
// whole text as a bare label.
func ExtractLabel(response string, q api.Question) api.Label {
	if m := answerPattern.FindStringSubmatch(response); len(m) == 2 {
		if l := NormalizeLabel(m[1], q); l != api.InvalidResponse {
			return l
		}
	}
	return NormalizeLabel(response, q)
}
