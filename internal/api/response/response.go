// Package response renders the canonical API envelope:
//
//	{"success": bool, "message": "...", "data": {...}, "apiCode": "..."}
//
// Error responses never include data; success responses always carry
// apiCode SUCCESS. Every handler and middleware in the API goes through
// these helpers so clients see one shape everywhere.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Code is the machine-readable API result code.
type Code string

const (
	CodeSuccess      Code = "SUCCESS"
	CodeGeneric      Code = "ERR_GENERIC"
	CodeNotFound     Code = "ERR_NOT_FOUND"
	CodeBadRequest   Code = "ERR_BAD_REQUEST"
	CodeUnauthorized Code = "ERR_UNAUTHORIZED"
	CodeForbidden    Code = "ERR_FORBIDDEN"
	CodeServerError  Code = "ERR_SERVER_ERROR"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	APICode Code        `json:"apiCode"`
}

// OK renders a success envelope with the given status.
func OK(c echo.Context, status int, data interface{}, message string) error {
	return c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
		APICode: CodeSuccess,
	})
}

// Error renders a failure envelope. Data is deliberately absent.
func Error(c echo.Context, status int, message string, code Code) error {
	return c.JSON(status, Envelope{
		Success: false,
		Message: message,
		APICode: code,
	})
}

func BadRequest(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, message, CodeBadRequest)
}

func Unauthorized(c echo.Context, message string) error {
	if message == "" {
		message = "Unauthorized"
	}
	return Error(c, http.StatusUnauthorized, message, CodeUnauthorized)
}

func Forbidden(c echo.Context, message string) error {
	if message == "" {
		message = "Forbidden"
	}
	return Error(c, http.StatusForbidden, message, CodeForbidden)
}

func NotFound(c echo.Context, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Error(c, http.StatusNotFound, message, CodeNotFound)
}

func ServerError(c echo.Context) error {
	return Error(c, http.StatusInternalServerError, "Internal Server Error", CodeServerError)
}
