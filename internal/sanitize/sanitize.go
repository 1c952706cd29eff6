// Package sanitize normalizes free-text fields before persistence: trim,
// strip markup and control characters, truncate. Applied after structural
// validation and before any write.
package sanitize

import (
	"strings"
	"unicode"
)

// Per-field length limits, in runes. Answer keys have no limit here: they
// bypass sanitization entirely so grading keeps matching stored keys.
const (
	MaxQuizTitle    = 200
	MaxQuestionText = 500
	MaxOptionText   = 200
	MaxTemplateName = 200
	MaxDescription  = 1000
	MaxTag          = 50
	MaxCreatorName  = 100
	MaxSubcategory  = 100
)

// Text trims whitespace, removes angle brackets and control characters, and
// truncates the result to max runes. max <= 0 means no length limit.
func Text(s string, max int) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '<' || r == '>' {
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())

	if max > 0 {
		runes := []rune(out)
		if len(runes) > max {
			out = strings.TrimSpace(string(runes[:max]))
		}
	}
	return out
}

// Tags sanitizes a tag list, dropping entries that are empty after cleanup.
func Tags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if cleaned := Text(t, MaxTag); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
