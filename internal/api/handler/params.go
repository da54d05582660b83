package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/contentkosh/institute-api/internal/core/domain"
)

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name, label string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("Valid " + label + " is required")
	}
	return id, nil
}
