package service

import (
	"errors"
	"fmt"
)

// Domain errors. Handlers map these onto the stable rejection vocabulary;
// anything unrecognized is logged and surfaced as a generic internal error.
var (
	ErrUnauthenticated = errors.New("user must be authenticated")
	ErrInvalidArgument = errors.New("missing or invalid request fields")

	ErrQuizNotFound     = errors.New("quiz not found")
	ErrClassNotFound    = errors.New("class not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrWrongClass rejects a submission whose classId does not match the
	// quiz's stored class reference (cross-class submission attempt).
	ErrWrongClass       = errors.New("quiz does not belong to the specified class")
	ErrNotEnrolled      = errors.New("student is not enrolled in this class")
	ErrDeadlinePassed   = errors.New("quiz deadline has passed")
	ErrAlreadySubmitted = errors.New("quiz has already been submitted")

	ErrRateLimited = errors.New("too many requests in the current window")

	// ErrTemplateAccessDenied rejects reads of a private template by a
	// non-owner; ErrNotTemplateOwner rejects any mutation by a non-owner.
	// The public flag grants read/use only, never write.
	ErrTemplateAccessDenied = errors.New("no permission to view this template")
	ErrNotTemplateOwner     = errors.New("no permission to modify this template")

	ErrTemplateQuota = errors.New("maximum template limit reached (50 templates)")
)

// TemplateTooLargeError rejects a template whose serialized size exceeds the
// document limit, reporting the computed size.
type TemplateTooLargeError struct {
	SizeKB    int
	MaxSizeKB int
}

func (e *TemplateTooLargeError) Error() string {
	return fmt.Sprintf("template is too large (%dKB); maximum size is %dKB", e.SizeKB, e.MaxSizeKB)
}
