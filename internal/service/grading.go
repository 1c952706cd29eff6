package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/quizdeck/quizdeck-backend/internal/model"
)

// grade compares positional answers against the stored key and returns the
// rounded percentage plus the counts. Scoring divides correct-question count
// by total question count: per-question points and the quiz's totalPoints are
// tracked and surfaced elsewhere but do not weight the percentage. Kept as-is
// for parity with previously stored results.
func grade(questions []model.Question, answers []json.RawMessage) (score, correct, total int) {
	total = len(questions)

	for i, q := range questions {
		var answer json.RawMessage
		if i < len(answers) {
			answer = answers[i]
		}
		if answerMatches(q, answer) {
			correct++
		}
	}

	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}
	return score, correct, total
}

// answerMatches applies per-variant comparison semantics: multiple-choice is
// a strict numeric match against the correct option index (a string "1" never
// matches index 1); enumeration stringifies the answer and compares case- and
// surrounding-whitespace-insensitively. A missing answer or an explicit null
// (a skipped question) never matches anything, including index 0.
func answerMatches(q model.Question, answer json.RawMessage) bool {
	answer = bytes.TrimSpace(answer)
	if len(answer) == 0 || bytes.Equal(answer, []byte("null")) {
		return false
	}

	switch v := q.Variant.(type) {
	case model.MultipleChoice:
		var n float64
		if err := json.Unmarshal(answer, &n); err != nil {
			return false
		}
		return n == float64(v.CorrectIndex)
	case model.Enumeration:
		var text string
		if err := json.Unmarshal(answer, &text); err != nil {
			var raw interface{}
			if err := json.Unmarshal(answer, &raw); err != nil {
				return false
			}
			text = fmt.Sprint(raw)
		}
		return strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(v.CorrectText))
	}
	return false
}
