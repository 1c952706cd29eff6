package model

import (
	"encoding/json"
	"fmt"
)

// QuestionType tags the two question variants.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionEnumeration    QuestionType = "enumeration"
)

// Question is one entry in a quiz or template question set. Shared fields
// are lifted out of the variants; the answer key lives behind Variant and is
// never serialized into student-facing views.
type Question struct {
	Text    string
	Points  int
	Variant QuestionVariant
}

// QuestionVariant is the closed set of question payloads.
type QuestionVariant interface {
	Type() QuestionType
}

// MultipleChoice holds an ordered option list and the index of the correct one.
type MultipleChoice struct {
	Options      []string
	CorrectIndex int
}

func (MultipleChoice) Type() QuestionType { return QuestionMultipleChoice }

// Enumeration holds a free-text answer key, compared case- and
// whitespace-insensitively at grading time.
type Enumeration struct {
	CorrectText string
}

func (Enumeration) Type() QuestionType { return QuestionEnumeration }

// questionWire is the stored document shape:
// {type, question, options, correctAnswer, points}.
type questionWire struct {
	Type          QuestionType    `json:"type"`
	Question      string          `json:"question"`
	Options       []string        `json:"options"`
	CorrectAnswer json.RawMessage `json:"correctAnswer,omitempty"`
	Points        json.RawMessage `json:"points,omitempty"`
}

// MarshalJSON emits the stored wire shape. Enumeration questions carry an
// empty options list, matching documents written by earlier clients.
func (q Question) MarshalJSON() ([]byte, error) {
	w := questionWire{
		Question: q.Text,
		Options:  []string{},
	}
	if q.Points != 0 {
		w.Points, _ = json.Marshal(q.Points)
	}

	switch v := q.Variant.(type) {
	case MultipleChoice:
		w.Type = QuestionMultipleChoice
		if v.Options != nil {
			w.Options = v.Options
		}
		w.CorrectAnswer, _ = json.Marshal(v.CorrectIndex)
	case Enumeration:
		w.Type = QuestionEnumeration
		w.CorrectAnswer, _ = json.Marshal(v.CorrectText)
	default:
		return nil, fmt.Errorf("question has no variant")
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses the stored wire shape into the variant form. Points
// values that are absent or not a whole number decode as 0; the question-set
// validator clamps them to the minimum of 1 before persistence.
func (q *Question) UnmarshalJSON(data []byte) error {
	var w questionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	q.Text = w.Question
	q.Points = decodePoints(w.Points)

	switch w.Type {
	case QuestionMultipleChoice:
		var idx int
		if len(w.CorrectAnswer) > 0 {
			var f float64
			if err := json.Unmarshal(w.CorrectAnswer, &f); err != nil {
				return fmt.Errorf("multiple-choice correctAnswer: %w", err)
			}
			idx = int(f)
		}
		opts := w.Options
		if opts == nil {
			opts = []string{}
		}
		q.Variant = MultipleChoice{Options: opts, CorrectIndex: idx}
	case QuestionEnumeration:
		var text string
		if len(w.CorrectAnswer) > 0 {
			// Keys written by older clients may be numeric; stringify them.
			if err := json.Unmarshal(w.CorrectAnswer, &text); err != nil {
				var raw interface{}
				if err := json.Unmarshal(w.CorrectAnswer, &raw); err != nil {
					return fmt.Errorf("enumeration correctAnswer: %w", err)
				}
				text = fmt.Sprint(raw)
			}
		}
		q.Variant = Enumeration{CorrectText: text}
	default:
		return fmt.Errorf("unknown question type %q", w.Type)
	}
	return nil
}

func decodePoints(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	if f != float64(int(f)) {
		return 0
	}
	return int(f)
}

// RedactedQuestion is the student-facing view with the answer key stripped.
type RedactedQuestion struct {
	Type     QuestionType `json:"type"`
	Question string       `json:"question"`
	Options  []string     `json:"options,omitempty"`
}

// Redacted returns the question without its correct answer. Multiple-choice
// keeps the option list; enumeration exposes only the prompt.
func (q Question) Redacted() RedactedQuestion {
	r := RedactedQuestion{Type: q.Variant.Type(), Question: q.Text}
	if v, ok := q.Variant.(MultipleChoice); ok {
		r.Options = v.Options
	}
	return r
}

// TotalPoints sums the points over a question set.
func TotalPoints(questions []Question) int {
	total := 0
	for _, q := range questions {
		total += q.Points
	}
	return total
}
