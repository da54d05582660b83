package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/contentkosh/institute-api/internal/api/response"
	"github.com/contentkosh/institute-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the canonical envelope for every failure.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg, code := resolveError(err, log, c)
		_ = response.Error(c, status, msg, code)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, response.Code) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), codeForStatus(he.Code)
	}

	// Field validation failures carry their own message.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Msg, response.CodeBadRequest
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password", response.CodeUnauthorized
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "Invalid or expired token", response.CodeUnauthorized
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many login attempts, try again later", response.CodeGeneric

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBusinessNotFound),
		errors.Is(err, domain.ErrExamNotFound),
		errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrSubjectNotFound),
		errors.Is(err, domain.ErrBatchNotFound),
		errors.Is(err, domain.ErrAnnouncementNotFound),
		errors.Is(err, domain.ErrBatchMemberMissing),
		errors.Is(err, domain.ErrAssignmentMissing):
		return http.StatusNotFound, capitalizedMessage(err), response.CodeNotFound

	// The envelope's 409s go through the generic code, matching the
	// public API contract.
	case errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrBusinessExists),
		errors.Is(err, domain.ErrBatchCodeExists),
		errors.Is(err, domain.ErrBatchMemberExists),
		errors.Is(err, domain.ErrAssignmentExists):
		return http.StatusConflict, capitalizedMessage(err), response.CodeGeneric
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal Server Error", response.CodeServerError
}

func codeForStatus(status int) response.Code {
	switch status {
	case http.StatusBadRequest:
		return response.CodeBadRequest
	case http.StatusUnauthorized:
		return response.CodeUnauthorized
	case http.StatusForbidden:
		return response.CodeForbidden
	case http.StatusNotFound:
		return response.CodeNotFound
	case http.StatusInternalServerError:
		return response.CodeServerError
	default:
		return response.CodeGeneric
	}
}

// capitalizedMessage upper-cases the first letter of a sentinel error's
// text so envelope messages read as sentences.
func capitalizedMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	if msg[0] >= 'a' && msg[0] <= 'z' {
		return string(msg[0]-'a'+'A') + msg[1:]
	}
	return msg
}
