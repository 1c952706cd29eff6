package service

import (
	"fmt"
	"strings"

	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/sanitize"
)

// Question-set bounds shared by templates and quizzes.
const (
	minQuestions = 1
	maxQuestions = 100
)

// ValidateQuestionSet applies the structural rules shared by template
// create/update and quiz instantiation with overridden questions: list
// bounds, non-empty trimmed text, complete options, non-empty answer keys.
// Correct-index bounds are deliberately not checked here, matching the
// behavior of existing stored data.
func ValidateQuestionSet(questions []model.Question) error {
	if len(questions) < minQuestions {
		return fmt.Errorf("%w: at least one question is required", ErrInvalidArgument)
	}
	if len(questions) > maxQuestions {
		return fmt.Errorf("%w: at most %d questions are allowed", ErrInvalidArgument, maxQuestions)
	}

	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("%w: question %d has empty text", ErrInvalidArgument, i+1)
		}

		switch v := q.Variant.(type) {
		case model.MultipleChoice:
			if len(v.Options) == 0 {
				return fmt.Errorf("%w: question %d has no options", ErrInvalidArgument, i+1)
			}
			for j, opt := range v.Options {
				if strings.TrimSpace(opt) == "" {
					return fmt.Errorf("%w: question %d option %d is empty", ErrInvalidArgument, i+1, j+1)
				}
			}
		case model.Enumeration:
			if strings.TrimSpace(v.CorrectText) == "" {
				return fmt.Errorf("%w: question %d has an empty answer", ErrInvalidArgument, i+1)
			}
		default:
			return fmt.Errorf("%w: question %d has an unknown type", ErrInvalidArgument, i+1)
		}
	}
	return nil
}

// SanitizeQuestionSet trims and truncates question text and options and
// clamps points to the minimum of 1. Answer keys pass through unchanged so
// grading comparisons keep matching previously stored keys. Runs after
// ValidateQuestionSet and before persistence.
func SanitizeQuestionSet(questions []model.Question) []model.Question {
	out := make([]model.Question, len(questions))
	for i, q := range questions {
		q.Text = sanitize.Text(q.Text, sanitize.MaxQuestionText)
		if q.Points < 1 {
			q.Points = 1
		}
		if v, ok := q.Variant.(model.MultipleChoice); ok {
			opts := make([]string, len(v.Options))
			for j, opt := range v.Options {
				opts[j] = sanitize.Text(opt, sanitize.MaxOptionText)
			}
			v.Options = opts
			q.Variant = v
		}
		out[i] = q
	}
	return out
}
