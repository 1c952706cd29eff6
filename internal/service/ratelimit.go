package service

import (
	"context"
	"fmt"
	"time"

	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/store"
	"github.com/rs/zerolog"
)

// Fixed-window limits. Submissions are counted against the student's recent
// QuizResult rows, so a successful submission is itself the log record.
// Question fetches use a dedicated append-only request log.
const (
	submissionWindow = 5 * time.Minute
	submissionMax    = 5

	quizRequestWindow = 5 * time.Minute
	quizRequestMax    = 10
)

// RateLimitService counts recent actions per actor within a trailing window.
// A store read failure propagates; the limiter never silently fails open or
// closed.
type RateLimitService struct {
	store store.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewRateLimitService creates a new RateLimitService.
func NewRateLimitService(st store.Store, log zerolog.Logger) *RateLimitService {
	return &RateLimitService{
		store: st,
		log:   log.With().Str("component", "rate_limit_service").Logger(),
		now:   time.Now,
	}
}

// AllowSubmission reports whether the student is under the submission limit.
// No record is written here: the graded QuizResult row doubles as the log
// entry, so only successful submissions count against the window.
func (s *RateLimitService) AllowSubmission(ctx context.Context, studentID string) (bool, error) {
	var recent []model.QuizResult
	err := s.store.Query(ctx, store.CollectionQuizResults, []store.Filter{
		store.Eq("studentId", studentID),
		store.Gt("submittedAt", s.now().Add(-submissionWindow)),
	}, &recent)
	if err != nil {
		return false, fmt.Errorf("count recent submissions: %w", err)
	}
	return len(recent) < submissionMax, nil
}

// AllowQuizRequest reports whether the user is under the question-fetch limit.
func (s *RateLimitService) AllowQuizRequest(ctx context.Context, userID string) (bool, error) {
	var recent []model.QuizRequestLog
	err := s.store.Query(ctx, store.CollectionQuizRequests, []store.Filter{
		store.Eq("userId", userID),
		store.Gt("requestedAt", s.now().Add(-quizRequestWindow)),
	}, &recent)
	if err != nil {
		return false, fmt.Errorf("count recent quiz requests: %w", err)
	}
	return len(recent) < quizRequestMax, nil
}

// LogQuizRequest appends a request-log row. Called unconditionally once a
// fetch is allowed, before any quiz data is returned, so even requests for
// nonexistent quizzes consume the window.
func (s *RateLimitService) LogQuizRequest(ctx context.Context, userID, quizID string) error {
	_, err := s.store.Add(ctx, store.CollectionQuizRequests, model.QuizRequestLog{
		UserID:      userID,
		QuizID:      quizID,
		RequestedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("log quiz request: %w", err)
	}
	return nil
}
