package model

import "time"

// QuizResult is one student's graded attempt. Written exactly once per
// (quiz, student) pair and never mutated afterwards. Recent rows double as
// the submission rate-limit window for the student.
type QuizResult struct {
	ID             string    `json:"id,omitempty"`
	QuizID         string    `json:"quizId"`
	ClassID        string    `json:"classId"`
	StudentID      string    `json:"studentId"`
	Score          int       `json:"score"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	SubmittedAt    time.Time `json:"submittedAt"`
}
