package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestQuestionWireRoundTrip(t *testing.T) {
	in := `{
		"type": "multiple-choice",
		"question": "Pick one",
		"options": ["a", "b", "c"],
		"correctAnswer": 2,
		"points": 3
	}`

	var q Question
	if err := json.Unmarshal([]byte(in), &q); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	mc, ok := q.Variant.(MultipleChoice)
	if !ok {
		t.Fatalf("expected MultipleChoice variant, got %T", q.Variant)
	}
	if q.Text != "Pick one" || q.Points != 3 || mc.CorrectIndex != 2 || len(mc.Options) != 3 {
		t.Fatalf("unexpected question: %+v", q)
	}

	out, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var wire map[string]interface{}
	if err := json.Unmarshal(out, &wire); err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if wire["type"] != "multiple-choice" || wire["question"] != "Pick one" {
		t.Fatalf("unexpected wire shape: %v", wire)
	}
	if wire["correctAnswer"] != float64(2) || wire["points"] != float64(3) {
		t.Fatalf("unexpected wire values: %v", wire)
	}
}

func TestQuestionEnumerationWire(t *testing.T) {
	var q Question
	err := json.Unmarshal([]byte(`{"type":"enumeration","question":"Say it","correctAnswer":"Yes"}`), &q)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if v := q.Variant.(Enumeration); v.CorrectText != "Yes" {
		t.Fatalf("unexpected key: %+v", v)
	}

	// Enumeration marshals with an empty options list, matching documents
	// written by earlier clients.
	out, _ := json.Marshal(q)
	if !strings.Contains(string(out), `"options":[]`) {
		t.Fatalf("expected empty options list, got %s", out)
	}
}

func TestQuestionWireLenientDecoding(t *testing.T) {
	t.Run("numeric enumeration key stringifies", func(t *testing.T) {
		var q Question
		if err := json.Unmarshal([]byte(`{"type":"enumeration","question":"Count","correctAnswer":42}`), &q); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if v := q.Variant.(Enumeration); v.CorrectText != "42" {
			t.Fatalf("expected stringified key, got %q", v.CorrectText)
		}
	})

	t.Run("fractional points decode as zero", func(t *testing.T) {
		var q Question
		if err := json.Unmarshal([]byte(`{"type":"enumeration","question":"Q","correctAnswer":"a","points":1.5}`), &q); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if q.Points != 0 {
			t.Fatalf("expected 0 points, got %d", q.Points)
		}
	})

	t.Run("float index truncates", func(t *testing.T) {
		var q Question
		if err := json.Unmarshal([]byte(`{"type":"multiple-choice","question":"Q","options":["a"],"correctAnswer":1.0}`), &q); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if q.Variant.(MultipleChoice).CorrectIndex != 1 {
			t.Fatalf("unexpected index: %+v", q.Variant)
		}
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		var q Question
		if err := json.Unmarshal([]byte(`{"type":"essay","question":"Q"}`), &q); err == nil {
			t.Fatal("expected error for unknown type")
		}
	})
}

func TestRedactedStripsKeys(t *testing.T) {
	mc := Question{Text: "Pick", Points: 1, Variant: MultipleChoice{
		Options: []string{"a", "b"}, CorrectIndex: 1}}
	enum := Question{Text: "Say", Points: 1, Variant: Enumeration{CorrectText: "secret"}}

	rmc := mc.Redacted()
	if rmc.Type != QuestionMultipleChoice || len(rmc.Options) != 2 {
		t.Fatalf("unexpected redacted mc: %+v", rmc)
	}
	renum := enum.Redacted()
	if renum.Type != QuestionEnumeration || renum.Options != nil {
		t.Fatalf("unexpected redacted enumeration: %+v", renum)
	}

	for _, r := range []RedactedQuestion{rmc, renum} {
		raw, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		for _, leak := range []string{"correctAnswer", "secret"} {
			if strings.Contains(string(raw), leak) {
				t.Fatalf("key leaked via %q: %s", leak, raw)
			}
		}
	}
}

func TestTotalPoints(t *testing.T) {
	questions := []Question{
		{Points: 2, Variant: Enumeration{CorrectText: "a"}},
		{Points: 3, Variant: Enumeration{CorrectText: "b"}},
	}
	if got := TotalPoints(questions); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := TotalPoints(nil); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestNormalizeCategory(t *testing.T) {
	if got := NormalizeCategory("Science"); got != "Science" {
		t.Fatalf("expected Science, got %q", got)
	}
	if got := NormalizeCategory("Underwater Basket Weaving"); got != "Other" {
		t.Fatalf("expected Other, got %q", got)
	}
	if got := NormalizeCategory(""); got != "Other" {
		t.Fatalf("expected Other for empty input, got %q", got)
	}
}
