package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdeck/quizdeck-backend/internal/logger"
	"github.com/quizdeck/quizdeck-backend/internal/response"
	"github.com/quizdeck/quizdeck-backend/internal/service"
	"github.com/rs/zerolog"
)

// failFromError maps a service error onto the stable rejection vocabulary.
// Known domain errors surface with their specific kind and message;
// everything else is logged under the given context tag and collapsed to a
// generic internal rejection so store error text never reaches the caller.
func failFromError(c *gin.Context, log zerolog.Logger, context string, err error) {
	var tooLarge *service.TemplateTooLargeError

	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)

	case errors.Is(err, service.ErrInvalidArgument):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidArgument, err.Error())
	case errors.As(err, &tooLarge):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrInvalidArgument, tooLarge.Error())

	case errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, service.ErrClassNotFound),
		errors.Is(err, service.ErrTemplateNotFound):
		response.FailWithMessage(c, http.StatusNotFound, response.ErrNotFound, err.Error())

	case errors.Is(err, service.ErrWrongClass),
		errors.Is(err, service.ErrNotEnrolled),
		errors.Is(err, service.ErrTemplateAccessDenied),
		errors.Is(err, service.ErrNotTemplateOwner):
		response.FailWithMessage(c, http.StatusForbidden, response.ErrPermissionDenied, err.Error())

	case errors.Is(err, service.ErrDeadlinePassed):
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrFailedPrecondition, err.Error())

	case errors.Is(err, service.ErrAlreadySubmitted):
		response.FailWithMessage(c, http.StatusConflict, response.ErrAlreadyExists, err.Error())

	case errors.Is(err, service.ErrRateLimited),
		errors.Is(err, service.ErrTemplateQuota):
		response.FailWithMessage(c, http.StatusTooManyRequests, response.ErrResourceExhausted, err.Error())

	default:
		log.Error().Str("context", context).Msg(logger.ErrDetail(err))
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
