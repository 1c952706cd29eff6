package model

import (
	"encoding/json"
	"time"
)

// Quiz is a gradable assessment bound to one class. Quizzes are immutable
// once created; there is no edit path.
type Quiz struct {
	ID                  string     `json:"id,omitempty"`
	Title               string     `json:"title"`
	Questions           []Question `json:"questions"`
	ClassID             string     `json:"classId"`
	Deadline            *time.Time `json:"deadline"`
	GradingScale        string     `json:"gradingScale"`
	PassingGrade        int        `json:"passingGrade"`
	TotalPoints         int        `json:"totalPoints"`
	CreatedAt           time.Time  `json:"createdAt"`
	CreatedBy           string     `json:"createdBy"`
	CreatedFromTemplate string     `json:"createdFromTemplate,omitempty"`
}

// SubmitQuizRequest is the payload for submitting answers to a quiz.
// Answers are positional: answers[i] belongs to questions[i].
type SubmitQuizRequest struct {
	ClassID string            `json:"classId" binding:"required"`
	Answers []json.RawMessage `json:"answers" binding:"required"`
}

// SubmissionResult is returned to the student after grading. It carries only
// aggregate counts, never which answers were right or wrong.
type SubmissionResult struct {
	Success        bool   `json:"success"`
	Score          int    `json:"score"`
	CorrectAnswers int    `json:"correctAnswers"`
	TotalQuestions int    `json:"totalQuestions"`
	Message        string `json:"message"`
}

// QuizView is the student-facing quiz payload with answer keys stripped.
type QuizView struct {
	QuizID    string             `json:"quizId"`
	Title     string             `json:"title"`
	ClassID   string             `json:"classId"`
	Deadline  *time.Time         `json:"deadline"`
	Questions []RedactedQuestion `json:"questions"`
}

// CreateQuizFromTemplateRequest instantiates a quiz from a template.
// Questions, when present, replace the template's stored set and go through
// the same validation and sanitization as a template create.
type CreateQuizFromTemplateRequest struct {
	Title     string     `json:"title" binding:"required"`
	ClassID   string     `json:"classId" binding:"required"`
	Deadline  *time.Time `json:"deadline"`
	Questions []Question `json:"questions"`
}
