package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizdeck/quizdeck-backend/internal/middleware"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/response"
	"github.com/quizdeck/quizdeck-backend/internal/service"
	"github.com/quizdeck/quizdeck-backend/internal/validator"
	"github.com/rs/zerolog"
)

// TemplateHandler handles template CRUD, duplication, statistics, and quiz
// instantiation from a template.
type TemplateHandler struct {
	templateService *service.TemplateService
	log             zerolog.Logger
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService *service.TemplateService, log zerolog.Logger) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
		log:             log.With().Str("component", "template_handler").Logger(),
	}
}

// CreateTemplate godoc
// POST /api/v1/templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	var req model.CreateTemplateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidArgument, fields)
		return
	}
	if req.CreatedByName == "" {
		req.CreatedByName = claims.Name
	}

	tpl, err := h.templateService.Create(c.Request.Context(), claims.Subject, &req)
	if err != nil {
		failFromError(c, h.log, "create_template", err)
		return
	}

	response.Success(c, http.StatusCreated, tpl)
}

// ListTemplates godoc
// GET /api/v1/templates?category=&search=&sort_by=&sort_dir=&limit=
// Lists the caller's own templates.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	templates, err := h.templateService.ListMine(c.Request.Context(), claims.Subject, listOptions(c))
	if err != nil {
		failFromError(c, h.log, "list_templates", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"templates": templates})
}

// ListPublicTemplates godoc
// GET /api/v1/public/templates?category=&limit=
// Lists public templates ordered by popularity.
func (h *TemplateHandler) ListPublicTemplates(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	templates, err := h.templateService.ListPublic(c.Request.Context(), claims.Subject, listOptions(c))
	if err != nil {
		failFromError(c, h.log, "list_public_templates", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"templates": templates})
}

// GetTemplate godoc
// GET /api/v1/templates/:template_id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	tpl, err := h.templateService.GetByID(c.Request.Context(), claims.Subject, c.Param("template_id"))
	if err != nil {
		failFromError(c, h.log, "get_template", err)
		return
	}

	response.Success(c, http.StatusOK, tpl)
}

// UpdateTemplate godoc
// PATCH /api/v1/templates/:template_id
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	var req model.UpdateTemplateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidArgument, fields)
		return
	}

	tpl, err := h.templateService.Update(c.Request.Context(), claims.Subject, c.Param("template_id"), &req)
	if err != nil {
		failFromError(c, h.log, "update_template", err)
		return
	}

	response.Success(c, http.StatusOK, tpl)
}

// DeleteTemplate godoc
// DELETE /api/v1/templates/:template_id
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), claims.Subject, c.Param("template_id")); err != nil {
		failFromError(c, h.log, "delete_template", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// DuplicateTemplate godoc
// POST /api/v1/templates/:template_id/duplicate
// Copies a readable template into a new private one owned by the caller.
func (h *TemplateHandler) DuplicateTemplate(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	var req model.DuplicateTemplateRequest
	if c.Request.ContentLength > 0 {
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidArgument, fields)
			return
		}
	}

	tpl, err := h.templateService.Duplicate(
		c.Request.Context(), claims.Subject, claims.Name, c.Param("template_id"), req.Name)
	if err != nil {
		failFromError(c, h.log, "duplicate_template", err)
		return
	}

	response.Success(c, http.StatusCreated, tpl)
}

// GetTemplateStats godoc
// GET /api/v1/templates/:template_id/stats
func (h *TemplateHandler) GetTemplateStats(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	stats, err := h.templateService.Stats(c.Request.Context(), claims.Subject, c.Param("template_id"))
	if err != nil {
		failFromError(c, h.log, "get_template_stats", err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// CreateQuizFromTemplate godoc
// POST /api/v1/templates/:template_id/quizzes
// Instantiates a quiz from the template; the quiz is returned regardless of
// whether the best-effort usage recording succeeds.
func (h *TemplateHandler) CreateQuizFromTemplate(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	var req model.CreateQuizFromTemplateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidArgument, fields)
		return
	}

	quiz, err := h.templateService.Instantiate(c.Request.Context(), claims.Subject, c.Param("template_id"), &req)
	if err != nil {
		failFromError(c, h.log, "create_quiz_from_template", err)
		return
	}

	response.Success(c, http.StatusCreated, quiz)
}

func listOptions(c *gin.Context) model.TemplateListOptions {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return model.TemplateListOptions{
		Category:      c.Query("category"),
		Search:        c.Query("search"),
		SortBy:        c.DefaultQuery("sort_by", "createdAt"),
		SortDirection: c.DefaultQuery("sort_dir", "desc"),
		Limit:         limit,
	}
}
