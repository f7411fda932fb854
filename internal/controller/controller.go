package controller

import (
	"errors"
	"net/http"

	"github.com/tahsinkabir/examly/internal/service"
)

// StatusFromError maps the service layer's named failures to HTTP codes so
// callers can branch on them. Anything unrecognized is a 500.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrAlreadyAttempted):
		return http.StatusConflict
	case errors.Is(err, service.ErrExamNotFound),
		errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrSubjectNotFound),
		errors.Is(err, service.ErrChapterNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrRoutineNotFound),
		errors.Is(err, service.ErrPaymentNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidQuestion):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
