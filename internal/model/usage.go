package model

import "time"

// TemplateUsage is an append-only analytics marker written whenever a quiz is
// instantiated from a template. Recording is best-effort and must never fail
// the quiz creation it accompanies.
type TemplateUsage struct {
	ID         string    `json:"id,omitempty"`
	TemplateID string    `json:"templateId"`
	UsedBy     string    `json:"usedBy"`
	UsedAt     time.Time `json:"usedAt"`
	ClassID    string    `json:"classId"`
	QuizID     string    `json:"quizId"`
}

// QuizRequestLog is an append-only marker counted by the question-fetch rate
// limiter. Rows are never updated or pruned by this core.
type QuizRequestLog struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"userId"`
	QuizID      string    `json:"quizId"`
	RequestedAt time.Time `json:"requestedAt"`
}
