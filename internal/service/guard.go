package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/store"
)

// authorizeSubmission runs the ordered, read-only access checks gating a
// submission: quiz exists, quiz belongs to the requested class, deadline not
// passed, class exists, student enrolled, no prior result. It short-circuits
// on the first failure and performs no writes. The final check is a
// read-then-write race against a store without cross-document transactions;
// a concurrent duplicate slipping through is accepted.
func (s *QuizService) authorizeSubmission(ctx context.Context, quizID, classID, studentID string) (*model.Quiz, *model.Class, error) {
	var quiz model.Quiz
	if err := s.store.Get(ctx, store.CollectionQuizzes, quizID, &quiz); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrQuizNotFound
		}
		return nil, nil, fmt.Errorf("load quiz: %w", err)
	}
	quiz.ID = quizID

	if quiz.ClassID != classID {
		return nil, nil, ErrWrongClass
	}

	if quiz.Deadline != nil && s.now().After(*quiz.Deadline) {
		return nil, nil, ErrDeadlinePassed
	}

	var class model.Class
	if err := s.store.Get(ctx, store.CollectionClasses, classID, &class); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrClassNotFound
		}
		return nil, nil, fmt.Errorf("load class: %w", err)
	}
	class.ID = classID

	if !class.HasStudent(studentID) {
		return nil, nil, ErrNotEnrolled
	}

	var existing []model.QuizResult
	err := s.store.Query(ctx, store.CollectionQuizResults, []store.Filter{
		store.Eq("quizId", quizID),
		store.Eq("studentId", studentID),
	}, &existing)
	if err != nil {
		return nil, nil, fmt.Errorf("check prior submission: %w", err)
	}
	if len(existing) > 0 {
		return nil, nil, ErrAlreadySubmitted
	}

	return &quiz, &class, nil
}
