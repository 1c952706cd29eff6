package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/store"
	"github.com/rs/zerolog"
)

// QuizService handles quiz submission and question delivery. Grading is
// server-authoritative: the stored answer key never leaves this package.
type QuizService struct {
	store   store.Store
	limiter *RateLimitService
	log     zerolog.Logger
	now     func() time.Time
}

// NewQuizService creates a new QuizService.
func NewQuizService(st store.Store, limiter *RateLimitService, log zerolog.Logger) *QuizService {
	return &QuizService{
		store:   st,
		limiter: limiter,
		log:     log.With().Str("component", "quiz_service").Logger(),
		now:     time.Now,
	}
}

// SubmitQuiz validates, grades and persists one student attempt. The returned
// result carries aggregate counts only; per-question outcomes and the answer
// key stay server-side.
func (s *QuizService) SubmitQuiz(ctx context.Context, studentID, quizID, classID string, answers []json.RawMessage) (*model.SubmissionResult, error) {
	if studentID == "" {
		return nil, ErrUnauthenticated
	}
	if quizID == "" || classID == "" || answers == nil {
		return nil, fmt.Errorf("%w: quizId, classId and answers are required", ErrInvalidArgument)
	}

	allowed, err := s.limiter.AllowSubmission(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrRateLimited
	}

	quiz, _, err := s.authorizeSubmission(ctx, quizID, classID, studentID)
	if err != nil {
		return nil, err
	}

	score, correct, total := grade(quiz.Questions, answers)

	result := model.QuizResult{
		QuizID:         quizID,
		ClassID:        classID,
		StudentID:      studentID,
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: total,
		SubmittedAt:    s.now(),
	}
	if _, err := s.store.Add(ctx, store.CollectionQuizResults, result); err != nil {
		return nil, fmt.Errorf("save quiz result: %w", err)
	}

	s.log.Info().
		Str("quiz_id", quizID).
		Int("score", score).
		Msg("Quiz submission graded")

	return &model.SubmissionResult{
		Success:        true,
		Score:          score,
		CorrectAnswers: correct,
		TotalQuestions: total,
		Message:        "Quiz submitted successfully!",
	}, nil
}

// GetQuestions returns the student-facing view of a quiz with every answer
// key stripped. The request is logged against the fetch window as soon as it
// is allowed, before any quiz data is read.
func (s *QuizService) GetQuestions(ctx context.Context, userID, quizID string) (*model.QuizView, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if quizID == "" {
		return nil, fmt.Errorf("%w: quizId is required", ErrInvalidArgument)
	}

	allowed, err := s.limiter.AllowQuizRequest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrRateLimited
	}
	if err := s.limiter.LogQuizRequest(ctx, userID, quizID); err != nil {
		return nil, err
	}

	var quiz model.Quiz
	if err := s.store.Get(ctx, store.CollectionQuizzes, quizID, &quiz); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("load quiz: %w", err)
	}

	questions := make([]model.RedactedQuestion, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = q.Redacted()
	}

	return &model.QuizView{
		QuizID:    quizID,
		Title:     quiz.Title,
		ClassID:   quiz.ClassID,
		Deadline:  quiz.Deadline,
		Questions: questions,
	}, nil
}
