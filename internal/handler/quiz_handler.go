package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdeck/quizdeck-backend/internal/middleware"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/response"
	"github.com/quizdeck/quizdeck-backend/internal/service"
	"github.com/quizdeck/quizdeck-backend/internal/validator"
	"github.com/rs/zerolog"
)

// QuizHandler handles quiz taking: submissions and question delivery.
type QuizHandler struct {
	quizService *service.QuizService
	log         zerolog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		log:         log.With().Str("component", "quiz_handler").Logger(),
	}
}

// SubmitQuiz godoc
// POST /api/v1/quizzes/:quiz_id/submissions
// Grades the submitted answers server-side and returns aggregate counts only.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	var req model.SubmitQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidArgument, fields)
		return
	}

	result, err := h.quizService.SubmitQuiz(
		c.Request.Context(), claims.Subject, c.Param("quiz_id"), req.ClassID, req.Answers)
	if err != nil {
		failFromError(c, h.log, "submit_quiz", err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetQuestions godoc
// GET /api/v1/quizzes/:quiz_id/questions
// Returns the quiz with every correctAnswer field stripped.
func (h *QuizHandler) GetQuestions(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	view, err := h.quizService.GetQuestions(c.Request.Context(), claims.Subject, c.Param("quiz_id"))
	if err != nil {
		failFromError(c, h.log, "get_quiz_questions", err)
		return
	}

	response.Success(c, http.StatusOK, view)
}
